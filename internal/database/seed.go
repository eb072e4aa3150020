package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// SeedInventoryTypes are the inventory categories of the demo data set.
var SeedInventoryTypes = []struct{ ID, Type string }{
	{"type-medication", "Medication"},
	{"type-equipment", "Equipment"},
	{"type-food", "Food"},
}

// SeedInventories are the demo inventories. Codes are generated on insert in
// this order, so the first one becomes INV-0001 on an empty database.
var SeedInventories = []struct{ ID, Name, Type, Description string }{
	{"inv-medication", "Medications", "Medication", "Prescription and over the counter drugs"},
	{"inv-surgical", "Surgical supplies", "Equipment", "Gauze, sutures and gloves"},
	{"inv-food", "Kibble and treats", "Food", "Dry food for cats and dogs"},
}

// SeedProducts are the demo products.
var SeedProducts = []struct {
	ID, InventoryID, Name, Description string
	Price, SalePrice                   float64
	Quantity                           int
}{
	{"prod-amoxicillin", "inv-medication", "Amoxicillin", "Antibiotic 250mg", 12.50, 18.00, 40},
	{"prod-carprofen", "inv-medication", "Carprofen", "Anti-inflammatory 75mg", 20.00, 29.99, 0},
	{"prod-gauze", "inv-surgical", "Gauze rolls", "Sterile 10cm", 2.00, 3.50, 200},
	{"prod-kibble", "inv-food", "Adult kibble", "15kg bag", 45.00, 59.99, 12},
}

// SeedVisits are the demo visits, spread over every displayed status.
var SeedVisits = []struct {
	ID, Date, Description, PetID, PetName, OwnerID, PractitionerID, VetFirst, VetLast, Status string
}{
	{"visit-1", "2026-11-02 09:00", "Annual checkup", "pet-rex", "Rex", "3f59dca2-903e-495c-90c3-7f4d01f3a2aa", "vet-james", "James", "Carter", "UPCOMING"},
	{"visit-2", "2026-11-03 10:30", "Vaccination", "pet-luna", "Luna", "c6e0e9e8-4d3b-4c83-9b0e-8c4f2b0f5e1d", "vet-helen", "Helen", "Leary", "CONFIRMED"},
	{"visit-3", "2026-10-01 14:00", "Dental cleaning", "pet-rex", "Rex", "3f59dca2-903e-495c-90c3-7f4d01f3a2aa", "vet-helen", "Helen", "Leary", "COMPLETED"},
	{"visit-4", "2026-10-12 16:15", "Limp on front leg", "pet-milo", "Milo", "c6e0e9e8-4d3b-4c83-9b0e-8c4f2b0f5e1d", "vet-james", "James", "Carter", "CANCELLED"},
}

// SeedVets are the demo vets. Their ids match the practitioners of SeedVisits.
var SeedVets = []struct {
	ID, FirstName, LastName, Email, Phone string
	Active                                bool
}{
	{"vet-james", "James", "Carter", "james.carter@petclinic.test", "(514)-634-8276", true},
	{"vet-helen", "Helen", "Leary", "helen.leary@petclinic.test", "(514)-634-8277", true},
}

// SeedBills are the demo bills, at least one per status.
var SeedBills = []struct {
	ID, CustomerID, OwnerFirst, OwnerLast, VisitType, VetID, Date string
	Amount                                                        float64
	Status, DueDate                                               string
}{
	{"bill-1", "3f59dca2-903e-495c-90c3-7f4d01f3a2aa", "George", "Franklin", "Dental cleaning", "vet-helen", "2026-10-01", 120.00, "PAID", "2026-10-31"},
	{"bill-2", "c6e0e9e8-4d3b-4c83-9b0e-8c4f2b0f5e1d", "Betty", "Davis", "Limp on front leg", "vet-james", "2026-10-12", 85.50, "UNPAID", "2026-11-11"},
	{"bill-3", "3f59dca2-903e-495c-90c3-7f4d01f3a2aa", "George", "Franklin", "Vaccination", "vet-james", "2026-08-20", 45.00, "OVERDUE", "2026-09-19"},
	{"bill-4", "c6e0e9e8-4d3b-4c83-9b0e-8c4f2b0f5e1d", "Betty", "Davis", "Annual checkup", "vet-helen", "2026-09-05", 60.00, "PAID", "2026-10-05"},
}

// Seed inserts the demo data set in one transaction. Rows that already exist
// are left untouched.
func Seed(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, t := range SeedInventoryTypes {
		batch.Queue(`INSERT INTO inventory_types (type_id, type) VALUES ($1, $2) ON CONFLICT DO NOTHING`, t.ID, t.Type)
	}
	for _, i := range SeedInventories {
		batch.Queue(`
			INSERT INTO inventories (inventory_id, inventory_name, inventory_type, inventory_description)
			VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
			i.ID, i.Name, i.Type, i.Description)
	}
	for _, p := range SeedProducts {
		batch.Queue(`
			INSERT INTO products (product_id, inventory_id, product_name, product_description, product_price, product_quantity, product_sale_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT DO NOTHING`,
			p.ID, p.InventoryID, p.Name, p.Description, p.Price, p.Quantity, p.SalePrice)
	}
	for _, v := range SeedVisits {
		batch.Queue(`
			INSERT INTO visits (visit_id, visit_date, description, pet_id, pet_name, owner_id, practitioner_id, vet_first_name, vet_last_name, status)
			VALUES ($1, $2::timestamp, $3, $4, $5, $6, $7, $8, $9, $10) ON CONFLICT DO NOTHING`,
			v.ID, v.Date, v.Description, v.PetID, v.PetName, v.OwnerID, v.PractitionerID, v.VetFirst, v.VetLast, v.Status)
	}

	for _, v := range SeedVets {
		batch.Queue(`
			INSERT INTO vets (vet_id, first_name, last_name, email, phone_number, active)
			VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
			v.ID, v.FirstName, v.LastName, v.Email, v.Phone, v.Active)
	}
	for _, b := range SeedBills {
		batch.Queue(`
			INSERT INTO bills (bill_id, customer_id, owner_first_name, owner_last_name, visit_type, vet_id, bill_date, amount, bill_status, due_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8, $9, $10::date) ON CONFLICT DO NOTHING`,
			b.ID, b.CustomerID, b.OwnerFirst, b.OwnerLast, b.VisitType, b.VetID, b.Date, b.Amount, b.Status, b.DueDate)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert seed data: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}

	logger.Info().
		Int("inventory_types", len(SeedInventoryTypes)).
		Int("inventories", len(SeedInventories)).
		Int("products", len(SeedProducts)).
		Int("visits", len(SeedVisits)).
		Int("vets", len(SeedVets)).
		Int("bills", len(SeedBills)).
		Msg("seed data inserted")
	return nil
}
