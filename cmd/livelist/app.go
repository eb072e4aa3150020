package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"petclinic-console/internal/config"
	"petclinic-console/internal/gateway"
	"petclinic-console/internal/livelist"
	"petclinic-console/internal/model"
	"petclinic-console/internal/render"
	"petclinic-console/internal/session"
	"petclinic-console/internal/snapshot"
	"petclinic-console/internal/softdelete"
	"petclinic-console/internal/stream"

	"github.com/rs/zerolog"
)

type app struct {
	cfg       *config.Config
	client    *gateway.Client
	view      *render.Renderer
	stdin     io.Reader
	store     snapshot.Store
	exportKey string
	logger    zerolog.Logger
}

func (a *app) streamOptions() stream.Options {
	return stream.Options{
		IdleTimeout:    a.cfg.Stream.IdleTimeout,
		MaxReconnects:  a.cfg.Stream.MaxReconnects,
		ReconnectDelay: a.cfg.Stream.ReconnectDelay,
		Header:         a.client.Header(),
	}
}

func (a *app) watchInventories(ctx context.Context, q model.InventoryQuery) error {
	list := livelist.NewInventoryList(a.view.Inventories, a.logger)
	return watch(ctx, a, list, "/inventories", gateway.InventoryValues(q))
}

func (a *app) watchTypes(ctx context.Context) error {
	list := livelist.NewInventoryTypeList(a.view.InventoryTypes, a.logger)
	return watch(ctx, a, list, "/inventories/types", nil)
}

func (a *app) watchProducts(ctx context.Context, inventoryID string) error {
	list := livelist.NewProductList(a.view.Products, a.logger)
	return watch(ctx, a, list, "/inventories/"+url.PathEscape(inventoryID)+"/products", nil)
}

func (a *app) watchVisits(ctx context.Context) error {
	hints, err := session.Load(a.cfg.Session.HintsFile)
	if err != nil {
		return err
	}
	path, err := hints.VisitsPath()
	if err != nil {
		return err
	}

	list := livelist.NewVisitList(a.view.Visits, a.logger)
	return watch(ctx, a, list, path, nil)
}

func (a *app) watchBills(ctx context.Context, status model.BillStatus) error {
	list := livelist.NewBillList(a.view.Bills, a.logger)
	return watch(ctx, a, list, gateway.BillsPath(status), nil)
}

func (a *app) watchVets(ctx context.Context) error {
	list := livelist.NewVetList(a.view.Vets, a.logger)
	return watch(ctx, a, list, "/vets", nil)
}

// watch subscribes list to path and blocks until the stream finishes, fails
// or ctx is cancelled. A finished list is exported when an export key is set.
func watch[T any](ctx context.Context, a *app, list *livelist.List[T], path string, query url.Values) error {
	conn := list.Subscribe(ctx, a.client.StreamClient(), a.client.StreamURL(path, query), a.streamOptions())

	err := conn.Wait()
	a.view.Line("%d entries, %d dropped", list.Len(), list.Dropped())
	if err != nil {
		return fmt.Errorf("failed to stream %s: %w", path, err)
	}
	if ctx.Err() != nil {
		return nil
	}

	if a.store == nil {
		return nil
	}
	records, err := snapshot.Encode(list.Items())
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := a.store.Save(ctx, a.exportKey, records); err != nil {
		return fmt.Errorf("failed to export snapshot: %w", err)
	}
	a.view.Line("exported %d entries to %s", len(records), a.exportKey)
	return nil
}

func (a *app) deleteInventory(ctx context.Context, inventoryID string) error {
	return a.softDelete(ctx, "inventory", inventoryID, func(ctx context.Context) error {
		return a.client.DeleteInventory(ctx, inventoryID)
	})
}

func (a *app) deleteProduct(ctx context.Context, inventoryID, productID string) error {
	return a.softDelete(ctx, "product", productID, func(ctx context.Context) error {
		return a.client.DeleteProduct(ctx, inventoryID, productID)
	})
}

func (a *app) deleteVisit(ctx context.Context, visitID string) error {
	return a.softDelete(ctx, "visit", visitID, func(ctx context.Context) error {
		return a.client.DeleteVisit(ctx, visitID)
	})
}

// softDelete schedules del behind the undo window. A line reading "u" on
// stdin before the window elapses undoes it.
func (a *app) softDelete(ctx context.Context, kind, id string, del softdelete.DeleteFunc) error {
	results := make(chan error, 1)
	sched := softdelete.New(a.cfg.SoftDelete.Window, func(_ string, err error) {
		results <- err
	}, a.logger)
	defer sched.Close()

	if err := sched.Schedule(id, del); err != nil {
		return fmt.Errorf("failed to schedule delete: %w", err)
	}
	a.view.Line("%s %s will be deleted in %s, type u + Enter to undo", kind, id, sched.Window())

	undone := make(chan struct{})
	go func() {
		scanner := bufio.NewScanner(a.stdin)
		for scanner.Scan() {
			if !strings.EqualFold(strings.TrimSpace(scanner.Text()), "u") {
				continue
			}
			if sched.Undo(id) {
				close(undone)
			}
			return
		}
	}()

	select {
	case <-undone:
		a.view.Line("delete of %s %s undone", kind, id)
		return nil
	case err := <-results:
		if err != nil {
			return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
		}
		a.view.Line("%s %s deleted", kind, id)
		return nil
	case <-ctx.Done():
		a.view.Line("delete of %s %s cancelled", kind, id)
		return nil
	}
}
