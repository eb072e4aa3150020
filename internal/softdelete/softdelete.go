// Package softdelete delays delete requests behind an undo window.
package softdelete

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultWindow is the undo window used when none is configured.
const DefaultWindow = 5 * time.Second

var (
	// ErrAlreadyPending is returned when an id already has a pending delete.
	ErrAlreadyPending = errors.New("delete already pending")
	// ErrClosed is returned when scheduling on a closed scheduler.
	ErrClosed = errors.New("scheduler closed")
)

// DeleteFunc sends the actual delete request.
type DeleteFunc func(ctx context.Context) error

// ResultFunc is told the outcome of every delete that was sent.
type ResultFunc func(id string, err error)

type entry struct {
	del   DeleteFunc
	timer *time.Timer
}

// Scheduler marks entities as temporarily deleted and sends the delete
// request only once the undo window elapsed without an Undo.
type Scheduler struct {
	window   time.Duration
	onResult ResultFunc
	logger   zerolog.Logger

	mu      sync.Mutex
	pending map[string]*entry
	closed  bool
	wg      sync.WaitGroup
}

// New creates a scheduler. A non-positive window means DefaultWindow.
func New(window time.Duration, onResult ResultFunc, logger zerolog.Logger) *Scheduler {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Scheduler{
		window:   window,
		onResult: onResult,
		logger:   logger.With().Str("component", "softdelete").Logger(),
		pending:  make(map[string]*entry),
	}
}

// Window returns the undo window.
func (s *Scheduler) Window() time.Duration {
	return s.window
}

// Schedule marks id as pending deletion. del runs once the window elapses
// unless Undo is called first.
func (s *Scheduler) Schedule(id string, del DeleteFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if _, ok := s.pending[id]; ok {
		return ErrAlreadyPending
	}

	e := &entry{del: del}
	e.timer = time.AfterFunc(s.window, func() { s.fire(id, e) })
	s.pending[id] = e

	s.logger.Info().Str("id", id).Dur("window", s.window).Msg("delete scheduled")
	return nil
}

// Undo cancels a pending delete. It reports whether there was one; when it
// returns true no delete request is ever sent for this schedule.
func (s *Scheduler) Undo(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.pending[id]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(s.pending, id)

	s.logger.Info().Str("id", id).Msg("delete undone")
	return true
}

// Pending reports whether id is waiting for its window to elapse.
func (s *Scheduler) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[id]
	return ok
}

// Close cancels every pending delete and waits for in-flight ones.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	for id, e := range s.pending {
		e.timer.Stop()
		delete(s.pending, id)
		s.logger.Debug().Str("id", id).Msg("pending delete cancelled")
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) fire(id string, e *entry) {
	s.mu.Lock()
	// an Undo or Close that won the lock removed the entry
	if s.pending[id] != e {
		s.mu.Unlock()
		return
	}
	delete(s.pending, id)
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()

	err := e.del(context.Background())
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to delete")
	} else {
		s.logger.Info().Str("id", id).Msg("deleted")
	}

	if s.onResult != nil {
		s.onResult(id, err)
	}
}
