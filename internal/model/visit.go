package model

// VisitStatus is the lifecycle state of a visit.
type VisitStatus string

const (
	VisitUpcoming  VisitStatus = "UPCOMING"
	VisitConfirmed VisitStatus = "CONFIRMED"
	VisitCancelled VisitStatus = "CANCELLED"
	VisitCompleted VisitStatus = "COMPLETED"
	VisitArchived  VisitStatus = "ARCHIVED"
)

// VisitStatuses lists the statuses the visit list shows, in display order.
var VisitStatuses = []VisitStatus{VisitUpcoming, VisitConfirmed, VisitCancelled, VisitCompleted}

// Valid reports whether s is a known visit status.
func (s VisitStatus) Valid() bool {
	switch s {
	case VisitUpcoming, VisitConfirmed, VisitCancelled, VisitCompleted, VisitArchived:
		return true
	}
	return false
}

// Next returns the status a confirmation moves the visit to.
// Statuses without a successor are returned unchanged.
func (s VisitStatus) Next() VisitStatus {
	switch s {
	case VisitUpcoming:
		return VisitConfirmed
	case VisitConfirmed:
		return VisitCompleted
	default:
		return s
	}
}

// Visit represents a scheduled visit of a pet to a veterinarian.
type Visit struct {
	VisitID        string      `json:"visitId" db:"visit_id"`
	VisitDate      string      `json:"visitDate" db:"visit_date"`
	Description    string      `json:"description" db:"description"`
	PetID          string      `json:"petId" db:"pet_id"`
	PetName        string      `json:"petName,omitempty" db:"pet_name"`
	OwnerID        string      `json:"ownerId,omitempty" db:"owner_id"`
	PractitionerID string      `json:"practitionerId" db:"practitioner_id"`
	VetFirstName   string      `json:"vetFirstName,omitempty" db:"vet_first_name"`
	VetLastName    string      `json:"vetLastName,omitempty" db:"vet_last_name"`
	Status         VisitStatus `json:"status" db:"status"`
}
