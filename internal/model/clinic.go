package model

import "strings"

// Vet is a veterinarian.
type Vet struct {
	VetID       string `json:"vetId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Active      bool   `json:"active"`
}

// Owner is a pet owner (customer).
type Owner struct {
	OwnerID   string `json:"ownerId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Telephone string `json:"telephone"`
}

// Pet belongs to an owner.
type Pet struct {
	PetID     string `json:"petId"`
	OwnerID   string `json:"ownerId"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
	PetTypeID string `json:"petTypeId"`
	Weight    string `json:"weight,omitempty"`
	IsActive  string `json:"isActive,omitempty"`
}

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillPaid    BillStatus = "PAID"
	BillUnpaid  BillStatus = "UNPAID"
	BillOverdue BillStatus = "OVERDUE"
)

// ParseBillStatus accepts a status in any case. An empty string selects every bill.
func ParseBillStatus(s string) (BillStatus, bool) {
	status := BillStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case "", BillPaid, BillUnpaid, BillOverdue:
		return status, true
	}
	return "", false
}

// Bill is an invoice issued for a visit.
type Bill struct {
	BillID         string     `json:"billId"`
	CustomerID     string     `json:"customerId"`
	OwnerFirstName string     `json:"ownerFirstName"`
	OwnerLastName  string     `json:"ownerLastName"`
	VisitType      string     `json:"visitType"`
	VetID          string     `json:"vetId"`
	Date           string     `json:"date"`
	Amount         float64    `json:"amount"`
	BillStatus     BillStatus `json:"billStatus"`
	DueDate        string     `json:"dueDate"`
}

// CartProduct is a product line in a cart.
type CartProduct struct {
	ProductID        string  `json:"productId"`
	ProductName      string  `json:"productName"`
	ProductSalePrice float64 `json:"productSalePrice"`
	QuantityInCart   int     `json:"quantityInCart"`
}

// Cart is a customer's shopping cart.
type Cart struct {
	CartID     string        `json:"cartId"`
	CustomerID string        `json:"customerId"`
	Products   []CartProduct `json:"products"`
}
