//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"petclinic-console/internal/config"
	"petclinic-console/internal/database"
)

// Applies the stub gateway schema and inserts the demo data set into the
// database configured through DB_* variables (or .env).
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Schema failed: %v\n", err)
		os.Exit(1)
	}
	if err := database.Seed(ctx, pool, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
		os.Exit(1)
	}

	var version string
	if err := pool.QueryRow(ctx, "SELECT version()").Scan(&version); err == nil {
		fmt.Printf("Seeded %s on %s\n", cfg.Database.Database, version)
	}
}
