package integration

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"petclinic-console/internal/database"
	"petclinic-console/internal/gateway"
	"petclinic-console/internal/handler"
	"petclinic-console/internal/repository"
	"petclinic-console/internal/router"
	"petclinic-console/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testAPIKey = "test-api-key"

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container with the gateway schema and
// the demo data set.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("petclinic"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	logger := zerolog.Nop()
	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	if err := database.Seed(ctx, pool, logger); err != nil {
		t.Fatalf("failed to seed database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// StartGateway serves the stub gateway over HTTP backed by testDB.
func StartGateway(t *testing.T, testDB *TestDB) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()

	inventoryRepo := repository.NewInventoryRepository(testDB.Pool, logger)
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	visitRepo := repository.NewVisitRepository(testDB.Pool, logger)

	inventoryService := service.NewInventoryService(inventoryRepo, productRepo, logger)
	visitService := service.NewVisitService(visitRepo, logger)
	clinicService := service.NewClinicService(
		repository.NewVetRepository(testDB.Pool, logger),
		repository.NewBillRepository(testDB.Pool, logger),
		logger,
	)

	mux := router.New(
		handler.NewInventoryHandler(inventoryService, logger),
		handler.NewVisitHandler(visitService, logger),
		handler.NewClinicHandler(clinicService, logger),
		testAPIKey,
		logger,
	)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// NewClient returns a gateway client for srv.
func NewClient(t *testing.T, srv *httptest.Server, version gateway.Version) *gateway.Client {
	t.Helper()

	client, err := gateway.New(gateway.Options{
		BaseURL: srv.URL,
		Version: version,
		APIKey:  testAPIKey,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create gateway client: %v", err)
	}
	return client
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), fmt.Sprintf("SELECT count(*) FROM %s", table)).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
