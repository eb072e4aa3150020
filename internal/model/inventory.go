package model

// Inventory represents a supply inventory as returned by the gateway.
type Inventory struct {
	InventoryID          string `json:"inventoryId" db:"inventory_id"`
	InventoryCode        string `json:"inventoryCode" db:"inventory_code"`
	InventoryName        string `json:"inventoryName" db:"inventory_name"`
	InventoryType        string `json:"inventoryType" db:"inventory_type"`
	InventoryDescription string `json:"inventoryDescription" db:"inventory_description"`
	InventoryImage       string `json:"inventoryImage,omitempty" db:"inventory_image"`
	RecentUpdateMessage  string `json:"recentUpdateMessage,omitempty" db:"recent_update_message"`
}

// InventoryType is one of the configurable inventory categories.
type InventoryType struct {
	TypeID string `json:"typeId" db:"type_id"`
	Type   string `json:"type" db:"type"`
}

// InventoryProduct is a product stocked in an inventory.
type InventoryProduct struct {
	ProductID          string  `json:"productId" db:"product_id"`
	InventoryID        string  `json:"inventoryId" db:"inventory_id"`
	ProductName        string  `json:"productName" db:"product_name"`
	ProductDescription string  `json:"productDescription" db:"product_description"`
	ProductPrice       float64 `json:"productPrice" db:"product_price"`
	ProductQuantity    int     `json:"productQuantity" db:"product_quantity"`
	ProductSalePrice   float64 `json:"productSalePrice" db:"product_sale_price"`
}

// InventoryRequest represents the request payload for creating or updating an inventory.
type InventoryRequest struct {
	InventoryName        string `json:"inventoryName" validate:"required,max=255"`
	InventoryType        string `json:"inventoryType" validate:"required,max=100"`
	InventoryDescription string `json:"inventoryDescription" validate:"required"`
	InventoryImage       string `json:"inventoryImage,omitempty" validate:"omitempty,url"`
}

// InventoryQuery holds the search and pagination parameters of the inventory list.
type InventoryQuery struct {
	Page                 int
	Size                 int
	InventoryCode        string
	InventoryName        string
	InventoryType        string
	InventoryDescription string
}

// ProductQuery holds the search parameters of an inventory's product list.
type ProductQuery struct {
	Page            int
	Size            int
	ProductName     string
	ProductQuantity *int
	MinPrice        *float64
	MaxPrice        *float64
	MinSalePrice    *float64
	MaxSalePrice    *float64
}
