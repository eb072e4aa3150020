package repository

import (
	"context"
	"fmt"
	"strings"

	"petclinic-console/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements ProductRepository using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// ListByInventory returns the products of one inventory in insertion order.
func (r *productRepository) ListByInventory(ctx context.Context, inventoryID string, q model.ProductQuery, limit, offset int) ([]model.InventoryProduct, error) {
	where := []string{"inventory_id = $1"}
	args := []any{inventoryID}
	add := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if q.ProductName != "" {
		add("product_name ILIKE '%%' || $%d::text || '%%'", q.ProductName)
	}
	if q.ProductQuantity != nil {
		add("product_quantity = $%d", *q.ProductQuantity)
	}
	if q.MinPrice != nil {
		add("product_price >= $%d", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		add("product_price <= $%d", *q.MaxPrice)
	}
	if q.MinSalePrice != nil {
		add("product_sale_price >= $%d", *q.MinSalePrice)
	}
	if q.MaxSalePrice != nil {
		add("product_sale_price <= $%d", *q.MaxSalePrice)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT product_id, inventory_id, product_name, product_description,
		       product_price::float8, product_quantity, product_sale_price::float8
		FROM products
		WHERE %s
		ORDER BY created_at, product_id
		LIMIT $%d OFFSET $%d
	`, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("inventory_id", inventoryID).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.InventoryProduct{}
	for rows.Next() {
		var p model.InventoryProduct
		err := rows.Scan(
			&p.ProductID,
			&p.InventoryID,
			&p.ProductName,
			&p.ProductDescription,
			&p.ProductPrice,
			&p.ProductQuantity,
			&p.ProductSalePrice,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Delete removes one product of an inventory.
func (r *productRepository) Delete(ctx context.Context, inventoryID, productID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM products WHERE inventory_id = $1 AND product_id = $2`,
		inventoryID, productID,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("inventory_id", inventoryID).
			Str("product_id", productID).
			Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
