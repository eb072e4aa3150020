package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petclinic-console/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const inventoryColumns = `inventory_id, inventory_code, inventory_name, inventory_type, inventory_description, inventory_image`

// inventoryRepository implements InventoryRepository using PostgreSQL.
type inventoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInventoryRepository creates a new PostgreSQL-backed inventory repository.
func NewInventoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) InventoryRepository {
	return &inventoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "inventory").Logger(),
	}
}

// List returns one page of inventories. The code matches exactly, name and
// description match case-insensitively by substring, type matches exactly.
func (r *inventoryRepository) List(ctx context.Context, q model.InventoryQuery, limit, offset int) ([]model.Inventory, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if q.InventoryCode != "" {
		add("inventory_code = $%d", strings.ToUpper(q.InventoryCode))
	}
	if q.InventoryName != "" {
		add("inventory_name ILIKE '%%' || $%d::text || '%%'", q.InventoryName)
	}
	if q.InventoryType != "" {
		add("inventory_type = $%d", q.InventoryType)
	}
	if q.InventoryDescription != "" {
		add("inventory_description ILIKE '%%' || $%d::text || '%%'", q.InventoryDescription)
	}

	query := `SELECT ` + inventoryColumns + ` FROM inventories`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY inventory_code LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query inventories")
		return nil, fmt.Errorf("failed to query inventories: %w", err)
	}
	defer rows.Close()

	inventories := []model.Inventory{}
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan inventory row")
			return nil, fmt.Errorf("failed to scan inventory: %w", err)
		}
		inventories = append(inventories, inv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating inventory rows")
		return nil, fmt.Errorf("error iterating inventories: %w", err)
	}

	return inventories, nil
}

// GetByID returns a single inventory.
func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*model.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE inventory_id = $1`

	inv, err := scanInventory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("inventory_id", id).Msg("inventory not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("inventory_id", id).Msg("failed to query inventory")
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}

	return &inv, nil
}

// Create inserts an inventory; the database assigns its code.
func (r *inventoryRepository) Create(ctx context.Context, inv *model.Inventory) error {
	query := `
		INSERT INTO inventories (inventory_id, inventory_name, inventory_type, inventory_description, inventory_image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING inventory_code
	`

	err := r.pool.QueryRow(ctx, query,
		inv.InventoryID,
		inv.InventoryName,
		inv.InventoryType,
		inv.InventoryDescription,
		inv.InventoryImage,
	).Scan(&inv.InventoryCode)
	if err != nil {
		r.logger.Error().Err(err).Str("inventory_id", inv.InventoryID).Msg("failed to insert inventory")
		return fmt.Errorf("failed to insert inventory: %w", err)
	}

	return nil
}

// Delete removes an inventory and, through the foreign key, its products.
func (r *inventoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventories WHERE inventory_id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("inventory_id", id).Msg("failed to delete inventory")
		return false, fmt.Errorf("failed to delete inventory: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListTypes returns every inventory type.
func (r *inventoryRepository) ListTypes(ctx context.Context) ([]model.InventoryType, error) {
	rows, err := r.pool.Query(ctx, `SELECT type_id, type FROM inventory_types ORDER BY type`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query inventory types")
		return nil, fmt.Errorf("failed to query inventory types: %w", err)
	}
	defer rows.Close()

	types := []model.InventoryType{}
	for rows.Next() {
		var t model.InventoryType
		if err := rows.Scan(&t.TypeID, &t.Type); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan inventory type row")
			return nil, fmt.Errorf("failed to scan inventory type: %w", err)
		}
		types = append(types, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory types: %w", err)
	}

	return types, nil
}

func scanInventory(row pgx.Row) (model.Inventory, error) {
	var inv model.Inventory
	err := row.Scan(
		&inv.InventoryID,
		&inv.InventoryCode,
		&inv.InventoryName,
		&inv.InventoryType,
		&inv.InventoryDescription,
		&inv.InventoryImage,
	)
	return inv, err
}
