package database

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"petclinic-console/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func closedPort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	require.NoError(t, l.Close())

	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return p
}

func TestNewPool_GivesUpWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	pool, err := NewPool(ctx, config.DatabaseConfig{
		Host:            "127.0.0.1",
		Port:            closedPort(t),
		User:            "postgres",
		Password:        "postgres",
		Database:        "petclinic",
		MaxConnections:  2,
		MinConnections:  0,
		MaxConnLifetime: 60,
	}, zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, pool)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNewPool_InvalidConfig(t *testing.T) {
	_, err := NewPool(context.Background(), config.DatabaseConfig{
		Host:     "localhost",
		Port:     -1,
		User:     "postgres",
		Database: "petclinic",
	}, zerolog.Nop())

	require.Error(t, err)
}

func TestSeed(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("petclinic"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, EnsureSchema(ctx, pool, zerolog.Nop()))
	require.NoError(t, Seed(ctx, pool, zerolog.Nop()))
	// a second run leaves existing rows alone
	require.NoError(t, Seed(ctx, pool, zerolog.Nop()))

	counts := map[string]int{
		"inventory_types": len(SeedInventoryTypes),
		"inventories":     len(SeedInventories),
		"products":        len(SeedProducts),
		"visits":          len(SeedVisits),
		"vets":            len(SeedVets),
		"bills":           len(SeedBills),
	}
	for table, want := range counts {
		var got int
		require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&got))
		assert.Equal(t, want, got, table)
	}

	var code string
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT inventory_code FROM inventories WHERE inventory_id = $1", SeedInventories[0].ID).Scan(&code))
	assert.Equal(t, "INV-0001", code)
}
