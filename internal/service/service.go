package service

import (
	"context"

	"petclinic-console/internal/model"
)

// InventoryService defines operations for inventory management.
type InventoryService interface {
	// List returns one page of inventories matching q.
	List(ctx context.Context, q model.InventoryQuery) ([]model.Inventory, error)

	// GetByID returns model.ErrInventoryNotFound when the inventory does not exist.
	GetByID(ctx context.Context, id string) (*model.Inventory, error)

	// Create validates req and stores a new inventory.
	Create(ctx context.Context, req *model.InventoryRequest) (*model.Inventory, error)

	// Delete returns model.ErrInventoryNotFound when there is nothing to delete.
	Delete(ctx context.Context, id string) error

	// ListTypes returns every inventory type.
	ListTypes(ctx context.Context) ([]model.InventoryType, error)

	// ListProducts returns the products of an inventory matching q.
	ListProducts(ctx context.Context, inventoryID string, q model.ProductQuery) ([]model.InventoryProduct, error)

	// DeleteProduct returns model.ErrProductNotFound when there is nothing to delete.
	DeleteProduct(ctx context.Context, inventoryID, productID string) error
}

// VisitService defines operations for visit management.
type VisitService interface {
	// List returns the visits selected by the filter.
	List(ctx context.Context, practitionerID, ownerID string) ([]model.Visit, error)

	// UpdateStatus returns model.ErrInvalidStatus for unknown statuses and
	// model.ErrVisitNotFound when the visit does not exist.
	UpdateStatus(ctx context.Context, id string, status model.VisitStatus) (*model.Visit, error)

	// Delete returns model.ErrVisitNotFound when there is nothing to delete.
	Delete(ctx context.Context, id string) error
}

// ClinicService serves the vet list and the bill history.
type ClinicService interface {
	// ListVets returns every vet.
	ListVets(ctx context.Context) ([]model.Vet, error)

	// ListBills returns bills with status, or every bill when status is empty.
	ListBills(ctx context.Context, status model.BillStatus) ([]model.Bill, error)
}
