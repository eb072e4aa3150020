package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"petclinic-console/internal/config"
	"petclinic-console/internal/gateway"
	"petclinic-console/internal/model"
	"petclinic-console/internal/render"
	"petclinic-console/internal/snapshot"
	"petclinic-console/internal/stream"

	"github.com/rs/zerolog"
)

const usage = `usage: livelist [flags] <command> [args]

commands:
  inventories                              watch the inventory list
  types                                    watch the inventory types
  products <inventoryId>                   watch the products of one inventory
  visits                                   watch the visits the session may see
  bills [paid|unpaid|overdue]              watch the bill history, optionally one status
  vets                                     watch the vet list
  delete-inventory <inventoryId>           delete an inventory (undo with u + Enter)
  delete-product <inventoryId> <productId> delete a product (undo with u + Enter)
  delete-visit <visitId>                   delete a visit (undo with u + Enter)

flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()

	if err == nil {
		return
	}
	if errors.Is(err, stream.ErrReconnectLimit) {
		fmt.Fprintln(os.Stderr, "Error: the live list could not be loaded, the server kept failing. Please try again later.")
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, errUsage) {
		os.Exit(2)
	}
	os.Exit(1)
}

var errUsage = errors.New("invalid usage")

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("livelist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var (
		q      model.InventoryQuery
		export string
	)
	fs.IntVar(&q.Page, "page", 0, "inventory page")
	fs.IntVar(&q.Size, "size", 0, "inventory page size")
	fs.StringVar(&q.InventoryCode, "code", "", "inventory code filter")
	fs.StringVar(&q.InventoryName, "name", "", "inventory name filter")
	fs.StringVar(&q.InventoryType, "type", "", "inventory type filter")
	fs.StringVar(&q.InventoryDescription, "description", "", "inventory description filter")
	fs.StringVar(&export, "export", "", "save the final list under this snapshot key")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("%w: missing command", errUsage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logs go to stderr so they never interleave with the tables.
	logger := config.NewLogger(cfg.Logger, stderr)

	client, err := gateway.New(gateway.Options{
		BaseURL: cfg.Gateway.BaseURL,
		Version: gateway.Version(cfg.Gateway.APIVersion),
		Timeout: cfg.Gateway.Timeout,
		APIKey:  cfg.Gateway.APIKey,
		Token:   cfg.Gateway.Token,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create gateway client: %w", err)
	}

	a := &app{
		cfg:    cfg,
		client: client,
		view:   render.New(stdout),
		stdin:  stdin,
		logger: logger,
	}

	if export != "" {
		store, err := newSnapshotStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		a.store = store
		a.exportKey = export
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "inventories":
		return a.watchInventories(ctx, q)
	case "types":
		return a.watchTypes(ctx)
	case "products":
		if len(rest) != 1 {
			return fmt.Errorf("%w: products needs <inventoryId>", errUsage)
		}
		return a.watchProducts(ctx, rest[0])
	case "visits":
		return a.watchVisits(ctx)
	case "bills":
		if len(rest) > 1 {
			return fmt.Errorf("%w: bills takes at most one status", errUsage)
		}
		var raw string
		if len(rest) == 1 {
			raw = rest[0]
		}
		status, ok := model.ParseBillStatus(raw)
		if !ok || (len(rest) == 1 && status == "") {
			return fmt.Errorf("%w: unknown bill status %q", errUsage, raw)
		}
		return a.watchBills(ctx, status)
	case "vets":
		return a.watchVets(ctx)
	case "delete-inventory":
		if len(rest) != 1 {
			return fmt.Errorf("%w: delete-inventory needs <inventoryId>", errUsage)
		}
		return a.deleteInventory(ctx, rest[0])
	case "delete-product":
		if len(rest) != 2 {
			return fmt.Errorf("%w: delete-product needs <inventoryId> <productId>", errUsage)
		}
		return a.deleteProduct(ctx, rest[0], rest[1])
	case "delete-visit":
		if len(rest) != 1 {
			return fmt.Errorf("%w: delete-visit needs <visitId>", errUsage)
		}
		return a.deleteVisit(ctx, rest[0])
	default:
		fs.Usage()
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// newSnapshotStore builds the export store: S3 first when enabled, local
// disk otherwise or when S3 is unavailable.
func newSnapshotStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (snapshot.Store, error) {
	local := snapshot.NewFileStore(cfg.Snapshot.Dir, logger)
	if !cfg.S3.Enabled {
		logger.Debug().Str("dir", cfg.Snapshot.Dir).Msg("using local file system for snapshots (S3 disabled)")
		return local, nil
	}

	remote, err := snapshot.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 store, falling back to local file system only")
		return local, nil
	}
	return snapshot.NewFallbackStore(remote, local, cfg.S3.Prefix, true, logger), nil
}
