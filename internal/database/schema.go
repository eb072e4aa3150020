package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema creates the tables the stub gateway serves. Every statement is
// idempotent.
const Schema = `
CREATE SEQUENCE IF NOT EXISTS inventory_code_seq;

CREATE TABLE IF NOT EXISTS inventory_types (
	type_id TEXT PRIMARY KEY,
	type    TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS inventories (
	inventory_id          TEXT PRIMARY KEY,
	inventory_code        TEXT NOT NULL UNIQUE
		DEFAULT 'INV-' || lpad(nextval('inventory_code_seq')::text, 4, '0'),
	inventory_name        TEXT NOT NULL,
	inventory_type        TEXT NOT NULL,
	inventory_description TEXT NOT NULL,
	inventory_image       TEXT NOT NULL DEFAULT '',
	created_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	product_id          TEXT PRIMARY KEY,
	inventory_id        TEXT NOT NULL REFERENCES inventories(inventory_id) ON DELETE CASCADE,
	product_name        TEXT NOT NULL,
	product_description TEXT NOT NULL DEFAULT '',
	product_price       NUMERIC(10, 2) NOT NULL CHECK (product_price >= 0),
	product_quantity    INTEGER NOT NULL CHECK (product_quantity >= 0),
	product_sale_price  NUMERIC(10, 2) NOT NULL CHECK (product_sale_price >= 0),
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_products_inventory_id ON products(inventory_id);

CREATE TABLE IF NOT EXISTS visits (
	visit_id        TEXT PRIMARY KEY,
	visit_date      TIMESTAMP NOT NULL,
	description     TEXT NOT NULL,
	pet_id          TEXT NOT NULL,
	pet_name        TEXT NOT NULL DEFAULT '',
	owner_id        TEXT NOT NULL DEFAULT '',
	practitioner_id TEXT NOT NULL,
	vet_first_name  TEXT NOT NULL DEFAULT '',
	vet_last_name   TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_visits_practitioner_id ON visits(practitioner_id);
CREATE INDEX IF NOT EXISTS idx_visits_owner_id ON visits(owner_id);

CREATE TABLE IF NOT EXISTS vets (
	vet_id       TEXT PRIMARY KEY,
	first_name   TEXT NOT NULL,
	last_name    TEXT NOT NULL,
	email        TEXT NOT NULL DEFAULT '',
	phone_number TEXT NOT NULL DEFAULT '',
	active       BOOLEAN NOT NULL DEFAULT true
);

CREATE TABLE IF NOT EXISTS bills (
	bill_id          TEXT PRIMARY KEY,
	customer_id      TEXT NOT NULL,
	owner_first_name TEXT NOT NULL DEFAULT '',
	owner_last_name  TEXT NOT NULL DEFAULT '',
	visit_type       TEXT NOT NULL,
	vet_id           TEXT NOT NULL,
	bill_date        DATE NOT NULL,
	amount           NUMERIC(10, 2) NOT NULL CHECK (amount >= 0),
	bill_status      TEXT NOT NULL CHECK (bill_status IN ('PAID', 'UNPAID', 'OVERDUE')),
	due_date         DATE NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bills_status ON bills(bill_status);
`

// EnsureSchema applies Schema.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info().Msg("database schema ensured")
	return nil
}
