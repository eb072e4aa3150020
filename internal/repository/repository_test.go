package repository

import (
	"context"
	"testing"
	"time"

	"petclinic-console/internal/database"
	"petclinic-console/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool
// with the schema applied.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping database test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.EnsureSchema(ctx, pool, zerolog.Nop()))
	// applying twice must be harmless
	require.NoError(t, database.EnsureSchema(ctx, pool, zerolog.Nop()))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func seedInventories(t *testing.T, repo InventoryRepository, invs ...model.Inventory) []model.Inventory {
	ctx := context.Background()
	out := make([]model.Inventory, 0, len(invs))
	for _, inv := range invs {
		require.NoError(t, repo.Create(ctx, &inv))
		out = append(out, inv)
	}
	return out
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, p model.InventoryProduct) {
	_, err := pool.Exec(context.Background(), `
		INSERT INTO products (product_id, inventory_id, product_name, product_description, product_price, product_quantity, product_sale_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ProductID, p.InventoryID, p.ProductName, p.ProductDescription, p.ProductPrice, p.ProductQuantity, p.ProductSalePrice)
	require.NoError(t, err)
}

func seedVisit(t *testing.T, pool *pgxpool.Pool, v model.Visit) {
	_, err := pool.Exec(context.Background(), `
		INSERT INTO visits (visit_id, visit_date, description, pet_id, pet_name, owner_id, practitioner_id, status)
		VALUES ($1, $2::timestamp, $3, $4, $5, $6, $7, $8)`,
		v.VisitID, v.VisitDate, v.Description, v.PetID, v.PetName, v.OwnerID, v.PractitionerID, string(v.Status))
	require.NoError(t, err)
}

func TestInventoryRepository(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewInventoryRepository(pool, zerolog.Nop())

	created := seedInventories(t, repo,
		model.Inventory{InventoryID: "i1", InventoryName: "Bandages", InventoryType: "Medical", InventoryDescription: "Sterile rolls"},
		model.Inventory{InventoryID: "i2", InventoryName: "Dog food", InventoryType: "Food", InventoryDescription: "Dry kibble"},
		model.Inventory{InventoryID: "i3", InventoryName: "Gauze", InventoryType: "Medical", InventoryDescription: "Sterile pads"},
	)
	assert.Equal(t, "INV-0001", created[0].InventoryCode)
	assert.Equal(t, "INV-0003", created[2].InventoryCode)

	t.Run("List filters", func(t *testing.T) {
		tests := []struct {
			name     string
			q        model.InventoryQuery
			limit    int
			offset   int
			expected []string
		}{
			{"all", model.InventoryQuery{}, 10, 0, []string{"i1", "i2", "i3"}},
			{"page", model.InventoryQuery{}, 2, 2, []string{"i3"}},
			{"code is upper-cased", model.InventoryQuery{InventoryCode: "inv-0002"}, 10, 0, []string{"i2"}},
			{"type", model.InventoryQuery{InventoryType: "Medical"}, 10, 0, []string{"i1", "i3"}},
			{"name substring", model.InventoryQuery{InventoryName: "gau"}, 10, 0, []string{"i3"}},
			{"description and type", model.InventoryQuery{InventoryType: "Medical", InventoryDescription: "rolls"}, 10, 0, []string{"i1"}},
			{"no match", model.InventoryQuery{InventoryName: "cat"}, 10, 0, []string{}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := repo.List(ctx, tt.q, tt.limit, tt.offset)
				require.NoError(t, err)

				ids := make([]string, 0, len(got))
				for _, inv := range got {
					ids = append(ids, inv.InventoryID)
				}
				assert.Equal(t, tt.expected, ids)
			})
		}
	})

	t.Run("GetByID", func(t *testing.T) {
		inv, err := repo.GetByID(ctx, "i2")
		require.NoError(t, err)
		require.NotNil(t, inv)
		assert.Equal(t, "Dog food", inv.InventoryName)

		missing, err := repo.GetByID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Delete cascades to products", func(t *testing.T) {
		seedProduct(t, pool, model.InventoryProduct{ProductID: "p1", InventoryID: "i3", ProductName: "Pad", ProductPrice: 1, ProductSalePrice: 2})

		deleted, err := repo.Delete(ctx, "i3")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, "i3")
		require.NoError(t, err)
		assert.False(t, deleted)

		var count int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE inventory_id = 'i3'`).Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("ListTypes", func(t *testing.T) {
		_, err := pool.Exec(ctx, `INSERT INTO inventory_types (type_id, type) VALUES ('t2', 'Medical'), ('t1', 'Food')`)
		require.NoError(t, err)

		types, err := repo.ListTypes(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.InventoryType{{TypeID: "t1", Type: "Food"}, {TypeID: "t2", Type: "Medical"}}, types)
	})
}

func TestProductRepository(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	seedInventories(t, NewInventoryRepository(pool, zerolog.Nop()),
		model.Inventory{InventoryID: "i1", InventoryName: "Medical", InventoryType: "Medical", InventoryDescription: "d"},
	)
	for _, p := range []model.InventoryProduct{
		{ProductID: "p1", InventoryID: "i1", ProductName: "Gauze", ProductPrice: 2.5, ProductQuantity: 10, ProductSalePrice: 3},
		{ProductID: "p2", InventoryID: "i1", ProductName: "Syringe", ProductPrice: 1, ProductQuantity: 100, ProductSalePrice: 1.5},
		{ProductID: "p3", InventoryID: "i1", ProductName: "Gauze XL", ProductPrice: 5, ProductQuantity: 10, ProductSalePrice: 7},
	} {
		seedProduct(t, pool, p)
	}

	repo := NewProductRepository(pool, zerolog.Nop())
	ten := 10
	two := 2.0

	tests := []struct {
		name     string
		q        model.ProductQuery
		expected []string
	}{
		{"all", model.ProductQuery{}, []string{"p1", "p2", "p3"}},
		{"name", model.ProductQuery{ProductName: "gauze"}, []string{"p1", "p3"}},
		{"quantity", model.ProductQuery{ProductQuantity: &ten}, []string{"p1", "p3"}},
		{"min price", model.ProductQuery{MinPrice: &two}, []string{"p1", "p3"}},
		{"max sale price", model.ProductQuery{MaxSalePrice: &two}, []string{"p2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListByInventory(ctx, "i1", tt.q, 50, 0)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ProductID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}

	got, err := repo.ListByInventory(ctx, "i1", model.ProductQuery{ProductName: "Syringe"}, 50, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1.5, got[0].ProductSalePrice)
	assert.Equal(t, 100, got[0].ProductQuantity)

	deleted, err := repo.Delete(ctx, "i1", "p2")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "other", "p1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestVisitRepository(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	for _, v := range []model.Visit{
		{VisitID: "v2", VisitDate: "2024-05-02T10:00:00", Description: "Vaccine", PetID: "pet1", OwnerID: "o1", PractitionerID: "vet1", Status: model.VisitUpcoming},
		{VisitID: "v1", VisitDate: "2024-05-01T09:30:00", Description: "Checkup", PetID: "pet2", OwnerID: "o2", PractitionerID: "vet1", Status: model.VisitConfirmed},
		{VisitID: "v3", VisitDate: "2024-05-03T15:00:00", Description: "Dental", PetID: "pet1", OwnerID: "o1", PractitionerID: "vet2", Status: model.VisitCompleted},
	} {
		seedVisit(t, pool, v)
	}

	repo := NewVisitRepository(pool, zerolog.Nop())

	all, err := repo.List(ctx, VisitFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "v1", all[0].VisitID)
	assert.Equal(t, "2024-05-01T09:30:00", all[0].VisitDate)

	byVet, err := repo.List(ctx, VisitFilter{PractitionerID: "vet1"})
	require.NoError(t, err)
	assert.Len(t, byVet, 2)

	byOwner, err := repo.List(ctx, VisitFilter{OwnerID: "o1"})
	require.NoError(t, err)
	assert.Len(t, byOwner, 2)

	updated, err := repo.UpdateStatus(ctx, "v2", model.VisitConfirmed)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, model.VisitConfirmed, updated.Status)

	missing, err := repo.UpdateStatus(ctx, "nope", model.VisitConfirmed)
	require.NoError(t, err)
	assert.Nil(t, missing)

	v, err := repo.GetByID(ctx, "v3")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "Dental", v.Description)

	deleted, err := repo.Delete(ctx, "v3")
	require.NoError(t, err)
	assert.True(t, deleted)

	v, err = repo.GetByID(ctx, "v3")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestClinicRepositories(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	_, err := pool.Exec(ctx, `
		INSERT INTO vets (vet_id, first_name, last_name, active) VALUES
			('vet2', 'Helen', 'Leary', false),
			('vet1', 'James', 'Carter', true);
		INSERT INTO bills (bill_id, customer_id, visit_type, vet_id, bill_date, amount, bill_status, due_date) VALUES
			('b2', 'o1', 'Dental', 'vet1', '2024-05-02', 80.25, 'UNPAID', '2024-06-01'),
			('b1', 'o2', 'Checkup', 'vet2', '2024-05-01', 40, 'PAID', '2024-05-31'),
			('b3', 'o1', 'Vaccine', 'vet1', '2024-03-01', 25, 'OVERDUE', '2024-03-31')`)
	require.NoError(t, err)

	vets, err := NewVetRepository(pool, zerolog.Nop()).List(ctx)
	require.NoError(t, err)
	require.Len(t, vets, 2)
	assert.Equal(t, "vet1", vets[0].VetID)
	assert.True(t, vets[0].Active)
	assert.False(t, vets[1].Active)

	repo := NewBillRepository(pool, zerolog.Nop())

	tests := []struct {
		name     string
		status   model.BillStatus
		expected []string
	}{
		{"all ordered by date", "", []string{"b3", "b1", "b2"}},
		{"paid", model.BillPaid, []string{"b1"}},
		{"unpaid", model.BillUnpaid, []string{"b2"}},
		{"overdue", model.BillOverdue, []string{"b3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.status)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, b := range got {
				ids = append(ids, b.BillID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}

	unpaid, err := repo.List(ctx, model.BillUnpaid)
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.Equal(t, 80.25, unpaid[0].Amount)
	assert.Equal(t, "2024-05-02", unpaid[0].Date)
	assert.Equal(t, "2024-06-01", unpaid[0].DueDate)
	assert.Equal(t, model.BillUnpaid, unpaid[0].BillStatus)
}
