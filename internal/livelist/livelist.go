// Package livelist binds a pushed entity stream to a view: every message is
// merged into an ordered list and the view is re-rendered with the result.
package livelist

import (
	"context"
	"net/http"
	"sync"

	"petclinic-console/internal/model"
	"petclinic-console/internal/reconcile"
	"petclinic-console/internal/sse"
	"petclinic-console/internal/stream"

	"github.com/rs/zerolog"
)

// Renderer draws a snapshot of the list.
type Renderer[T any] func(items []T)

// List owns the reconciled state of one live list. Applying a message and
// rendering its result happen under one lock, so a renderer never observes a
// half-applied update and is never called concurrently with itself.
type List[T any] struct {
	rec    *reconcile.Reconciler[T]
	render Renderer[T]
	base   zerolog.Logger
	logger zerolog.Logger

	mu      sync.Mutex
	dropped int
}

// New creates a list keyed by idOf. render may be nil.
func New[T any](idOf func(T) string, render Renderer[T], logger zerolog.Logger, opts ...reconcile.Option[T]) *List[T] {
	return &List[T]{
		rec:    reconcile.New(idOf, opts...),
		render: render,
		base:   logger,
		logger: logger.With().Str("component", "livelist").Logger(),
	}
}

// Apply merges one raw payload and re-renders. Malformed payloads return an
// error wrapping reconcile.ErrMalformedPayload and do not re-render.
func (l *List[T]) Apply(raw []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	change, err := l.rec.Apply(raw)
	if err != nil {
		l.dropped++
		return err
	}

	l.logger.Debug().
		Int("added", change.Added).
		Int("updated", change.Updated).
		Int("size", l.rec.Len()).
		Msg("list updated")

	l.draw()
	return nil
}

// HandleEvent is a stream.Handler. Only message events feed the list; named
// events are ignored and malformed chunks are dropped silently.
func (l *List[T]) HandleEvent(ev sse.Event) {
	if ev.Type != "" && ev.Type != sse.DefaultEventType {
		l.logger.Debug().Str("event_type", ev.Type).Msg("ignoring named event")
		return
	}
	if err := l.Apply([]byte(ev.Data)); err != nil {
		l.logger.Debug().Err(err).Str("event_id", ev.ID).Msg("dropping malformed chunk")
	}
}

// Remove drops an entity after its deletion was confirmed and re-renders.
func (l *List[T]) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.rec.Remove(id) {
		return false
	}
	l.draw()
	return true
}

// Items returns the current snapshot in first-seen order.
func (l *List[T]) Items() []T {
	return l.rec.Snapshot()
}

// Get returns the entity with the given id.
func (l *List[T]) Get(id string) (T, bool) {
	return l.rec.Get(id)
}

// Len returns the number of entities in the list.
func (l *List[T]) Len() int {
	return l.rec.Len()
}

// Dropped returns how many payloads were rejected as malformed.
func (l *List[T]) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// Subscribe opens a stream connection feeding this list. The returned
// connection is the subscription's disposer.
func (l *List[T]) Subscribe(ctx context.Context, client *http.Client, url string, opts stream.Options) *stream.Connection {
	return stream.Dial(ctx, client, url, l.HandleEvent, opts, l.base)
}

// draw must be called with mu held.
func (l *List[T]) draw() {
	if l.render == nil {
		return
	}
	l.render(l.rec.Snapshot())
}

// NewInventoryList creates a live list of inventories.
func NewInventoryList(render Renderer[model.Inventory], logger zerolog.Logger) *List[model.Inventory] {
	return New(func(i model.Inventory) string { return i.InventoryID }, render, logger)
}

// NewInventoryTypeList creates a live list of inventory types.
func NewInventoryTypeList(render Renderer[model.InventoryType], logger zerolog.Logger) *List[model.InventoryType] {
	return New(func(t model.InventoryType) string { return t.TypeID }, render, logger)
}

// NewProductList creates a live list of the products of one inventory.
func NewProductList(render Renderer[model.InventoryProduct], logger zerolog.Logger) *List[model.InventoryProduct] {
	return New(func(p model.InventoryProduct) string { return p.ProductID }, render, logger)
}

// NewVisitList creates a live list of visits.
func NewVisitList(render Renderer[model.Visit], logger zerolog.Logger) *List[model.Visit] {
	return New(func(v model.Visit) string { return v.VisitID }, render, logger)
}

// NewVetList creates a live list of vets.
func NewVetList(render Renderer[model.Vet], logger zerolog.Logger) *List[model.Vet] {
	return New(func(v model.Vet) string { return v.VetID }, render, logger)
}

// NewBillList creates a live list of bills.
func NewBillList(render Renderer[model.Bill], logger zerolog.Logger) *List[model.Bill] {
	return New(func(b model.Bill) string { return b.BillID }, render, logger)
}
