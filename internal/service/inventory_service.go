package service

import (
	"context"
	"fmt"
	"strings"

	"petclinic-console/internal/model"
	"petclinic-console/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// inventoryService implements InventoryService.
type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		logger:        logger.With().Str("service", "inventory").Logger(),
	}
}

// pagination turns page and size into limit and offset.
func pagination(page, size int) (limit, offset int) {
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	if page < 0 {
		page = 0
	}
	return size, page * size
}

// List returns one page of inventories matching q.
func (s *inventoryService) List(ctx context.Context, q model.InventoryQuery) ([]model.Inventory, error) {
	limit, offset := pagination(q.Page, q.Size)
	q.InventoryCode = strings.ToUpper(strings.TrimSpace(q.InventoryCode))

	inventories, err := s.inventoryRepo.List(ctx, q, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list inventories")
		return nil, fmt.Errorf("failed to get inventories: %w", err)
	}

	s.logger.Debug().
		Int("count", len(inventories)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved inventories")

	return inventories, nil
}

// GetByID returns one inventory.
func (s *inventoryService) GetByID(ctx context.Context, id string) (*model.Inventory, error) {
	if id == "" {
		return nil, model.ErrInventoryNotFound
	}

	inv, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	if inv == nil {
		return nil, model.ErrInventoryNotFound
	}
	return inv, nil
}

// Create validates req and stores a new inventory under a fresh id.
func (s *inventoryService) Create(ctx context.Context, req *model.InventoryRequest) (*model.Inventory, error) {
	if req == nil {
		return nil, fmt.Errorf("inventory request is nil")
	}
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn().Err(err).Msg("invalid inventory request")
		return nil, NewValidationError(err)
	}

	inv := &model.Inventory{
		InventoryID:          uuid.NewString(),
		InventoryName:        strings.TrimSpace(req.InventoryName),
		InventoryType:        strings.TrimSpace(req.InventoryType),
		InventoryDescription: strings.TrimSpace(req.InventoryDescription),
		InventoryImage:       req.InventoryImage,
	}

	if err := s.inventoryRepo.Create(ctx, inv); err != nil {
		s.logger.Error().Err(err).Str("inventory_id", inv.InventoryID).Msg("failed to create inventory")
		return nil, fmt.Errorf("failed to create inventory: %w", err)
	}

	s.logger.Info().
		Str("inventory_id", inv.InventoryID).
		Str("inventory_code", inv.InventoryCode).
		Msg("inventory created successfully")

	return inv, nil
}

// Delete removes an inventory.
func (s *inventoryService) Delete(ctx context.Context, id string) error {
	deleted, err := s.inventoryRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory: %w", err)
	}
	if !deleted {
		return model.ErrInventoryNotFound
	}

	s.logger.Info().Str("inventory_id", id).Msg("inventory deleted")
	return nil
}

// ListTypes returns every inventory type.
func (s *inventoryService) ListTypes(ctx context.Context) ([]model.InventoryType, error) {
	types, err := s.inventoryRepo.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory types: %w", err)
	}
	return types, nil
}

// ListProducts returns the products of an existing inventory.
func (s *inventoryService) ListProducts(ctx context.Context, inventoryID string, q model.ProductQuery) ([]model.InventoryProduct, error) {
	if q.ProductQuantity != nil && *q.ProductQuantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	if _, err := s.GetByID(ctx, inventoryID); err != nil {
		return nil, err
	}

	limit, offset := pagination(q.Page, q.Size)
	if q.Size <= 0 {
		limit = maxPageSize
	}

	products, err := s.productRepo.ListByInventory(ctx, inventoryID, q, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("inventory_id", inventoryID).Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// DeleteProduct removes one product of an inventory.
func (s *inventoryService) DeleteProduct(ctx context.Context, inventoryID, productID string) error {
	deleted, err := s.productRepo.Delete(ctx, inventoryID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return model.ErrProductNotFound
	}

	s.logger.Info().
		Str("inventory_id", inventoryID).
		Str("product_id", productID).
		Msg("product deleted")
	return nil
}
