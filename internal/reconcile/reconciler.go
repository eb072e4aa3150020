// Package reconcile merges successive pushed payloads into an ordered,
// de-duplicated list of entities keyed by id.
package reconcile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrMalformedPayload is returned by Apply when a payload is not valid JSON
// for the reconciled type. The reconciler state is left untouched.
var ErrMalformedPayload = errors.New("malformed payload")

// Change describes the effect of one Apply or Upsert call.
type Change struct {
	Added   int
	Updated int
}

// Empty reports whether nothing was added or updated.
func (c Change) Empty() bool {
	return c.Added == 0 && c.Updated == 0
}

// MergeFunc combines the stored value of an id with an incoming one.
type MergeFunc[T any] func(stored, incoming T) T

// Option configures a Reconciler.
type Option[T any] func(*Reconciler[T])

// WithMerge replaces the default overwrite policy.
func WithMerge[T any](merge MergeFunc[T]) Option[T] {
	return func(r *Reconciler[T]) {
		r.merge = merge
	}
}

// Reconciler keeps entities in first-seen order. The position of an id is
// fixed by its first appearance; later values for the same id are written in
// place and never reorder the list.
type Reconciler[T any] struct {
	idOf  func(T) string
	merge MergeFunc[T]

	mu    sync.RWMutex
	order []string
	byID  map[string]T
}

// New creates a reconciler using idOf to key entities.
func New[T any](idOf func(T) string, opts ...Option[T]) *Reconciler[T] {
	r := &Reconciler[T]{
		idOf: idOf,
		byID: make(map[string]T),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply decodes one pushed payload and merges it. A JSON array upserts every
// entry in order; a JSON object is upserted directly.
func (r *Reconciler[T]) Apply(raw []byte) (Change, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Change{}, fmt.Errorf("%w: empty payload", ErrMalformedPayload)
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Change{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return r.Upsert(items...), nil
	}

	var item T
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return Change{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return r.Upsert(item), nil
}

// Upsert merges items in order. Items with an empty id are skipped.
func (r *Reconciler[T]) Upsert(items ...T) Change {
	r.mu.Lock()
	defer r.mu.Unlock()

	var change Change
	for _, item := range items {
		id := r.idOf(item)
		if id == "" {
			continue
		}

		stored, exists := r.byID[id]
		if !exists {
			r.order = append(r.order, id)
			r.byID[id] = item
			change.Added++
			continue
		}

		if r.merge != nil {
			item = r.merge(stored, item)
		}
		r.byID[id] = item
		change.Updated++
	}

	return change
}

// Get returns the current value of id.
func (r *Reconciler[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	return item, ok
}

// Len returns the number of distinct ids held.
func (r *Reconciler[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// Snapshot returns a copy of the entities in first-seen order.
func (r *Reconciler[T]) Snapshot() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Remove drops id from the list. The relative order of the remaining ids is
// unchanged; a later payload for id appends it at the end again.
func (r *Reconciler[T]) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Reset empties the reconciler.
func (r *Reconciler[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = nil
	r.byID = make(map[string]T)
}
