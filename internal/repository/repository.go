package repository

import (
	"context"

	"petclinic-console/internal/model"
)

// InventoryRepository defines the data access operations for inventories and
// inventory types.
type InventoryRepository interface {
	// List returns one page of inventories matching q, ordered by code.
	List(ctx context.Context, q model.InventoryQuery, limit, offset int) ([]model.Inventory, error)

	// GetByID returns nil when the inventory does not exist.
	GetByID(ctx context.Context, id string) (*model.Inventory, error)

	// Create inserts inv and fills in its generated code.
	Create(ctx context.Context, inv *model.Inventory) error

	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// ListTypes returns every inventory type ordered by name.
	ListTypes(ctx context.Context) ([]model.InventoryType, error)
}

// ProductRepository defines the data access operations for inventory products.
type ProductRepository interface {
	// ListByInventory returns the products of one inventory matching q.
	ListByInventory(ctx context.Context, inventoryID string, q model.ProductQuery, limit, offset int) ([]model.InventoryProduct, error)

	// Delete reports whether a row was removed.
	Delete(ctx context.Context, inventoryID, productID string) (bool, error)
}

// VisitFilter narrows the visit list. Empty fields do not filter.
type VisitFilter struct {
	PractitionerID string
	OwnerID        string
}

// VisitRepository defines the data access operations for visits.
type VisitRepository interface {
	// List returns visits matching f ordered by date.
	List(ctx context.Context, f VisitFilter) ([]model.Visit, error)

	// GetByID returns nil when the visit does not exist.
	GetByID(ctx context.Context, id string) (*model.Visit, error)

	// UpdateStatus returns nil when the visit does not exist.
	UpdateStatus(ctx context.Context, id string, status model.VisitStatus) (*model.Visit, error)

	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// VetRepository defines the data access operations for vets.
type VetRepository interface {
	// List returns every vet ordered by id.
	List(ctx context.Context) ([]model.Vet, error)
}

// BillRepository defines the data access operations for bills.
type BillRepository interface {
	// List returns bills with status, or every bill when status is empty,
	// ordered by date.
	List(ctx context.Context, status model.BillStatus) ([]model.Bill, error)
}
