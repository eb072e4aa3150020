// Package stream keeps a single subscription to a server push endpoint open,
// closing it when the stream goes idle and giving up after a bounded number of
// consecutive failed (re)connects.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"petclinic-console/internal/sse"

	"github.com/rs/zerolog"
)

// ErrReconnectLimit is the error a connection ends with once it has failed
// more consecutive times than Options.MaxReconnects allows.
var ErrReconnectLimit = errors.New("stream reconnect limit exceeded")

var errIdle = errors.New("stream idle")

// State mirrors the ready states of a browser EventSource.
type State int32

const (
	// Connecting means a connect or reconnect is in progress.
	Connecting State = iota
	// Open means the server accepted the subscription and events may arrive.
	Open
	// Closed is final.
	Closed
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Options controls the lifetime of a connection.
type Options struct {
	// IdleTimeout closes the connection when no event arrives for this long.
	// Zero disables it.
	IdleTimeout time.Duration

	// MaxReconnects is how many consecutive failures are tolerated before the
	// connection gives up with ErrReconnectLimit.
	MaxReconnects int

	// ReconnectDelay is waited between attempts. A "retry" field sent by the
	// server overrides it.
	ReconnectDelay time.Duration

	// Header is added to every request.
	Header http.Header
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		IdleTimeout:    10 * time.Second,
		MaxReconnects:  3,
		ReconnectDelay: time.Second,
	}
}

// Handler receives every dispatched event.
type Handler func(ev sse.Event)

// Connection is one live subscription. It is also its own disposer: Close
// tears it down.
type Connection struct {
	url       string
	client    *http.Client
	opts      Options
	onMessage Handler
	logger    zerolog.Logger

	state     atomic.Int32
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once

	mu          sync.Mutex
	err         error
	lastEventID string
	delay       time.Duration
}

// Dial opens a subscription to url in the background and returns at once.
// onMessage is called from the connection's goroutine, one event at a time.
func Dial(ctx context.Context, client *http.Client, url string, onMessage Handler, opts Options, logger zerolog.Logger) *Connection {
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithCancel(ctx)
	c := &Connection{
		url:       url,
		client:    client,
		opts:      opts,
		onMessage: onMessage,
		logger:    logger.With().Str("component", "stream").Str("url", url).Logger(),
		cancel:    cancel,
		done:      make(chan struct{}),
		delay:     opts.ReconnectDelay,
	}
	c.state.Store(int32(Connecting))

	go c.run(ctx)

	return c
}

// State returns the current ready state.
func (c *Connection) State() State {
	return State(c.state.Load())
}

// Done is closed once the connection is closed.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// Err returns why the connection closed: nil when it finished normally (idle,
// end of stream, Close or context cancellation), an error wrapping
// ErrReconnectLimit when it gave up.
func (c *Connection) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Wait blocks until the connection is closed and returns Err.
func (c *Connection) Wait() error {
	<-c.done
	return c.Err()
}

// Close tears the connection down. It is safe to call more than once and
// from within the message handler.
func (c *Connection) Close() {
	c.finish(nil, "closed by client")
}

func (c *Connection) run(ctx context.Context) {
	failures := 0

	for {
		opened, err := c.attempt(ctx)

		switch {
		case ctx.Err() != nil:
			c.finish(nil, "context done")
			return
		case errors.Is(err, errIdle):
			c.finish(nil, "idle timeout")
			return
		case errors.Is(err, io.EOF):
			c.finish(nil, "end of stream")
			return
		}

		if !c.reconnecting() {
			return
		}
		if opened {
			failures = 0
		}
		failures++

		if failures > c.opts.MaxReconnects {
			c.finish(fmt.Errorf("%w after %d attempts: %v", ErrReconnectLimit, failures, err), "giving up")
			return
		}

		delay := c.reconnectDelay()
		c.logger.Warn().
			Err(err).
			Int("failures", failures).
			Int("max_reconnects", c.opts.MaxReconnects).
			Dur("delay", delay).
			Msg("stream error, reconnecting")

		select {
		case <-ctx.Done():
			c.finish(nil, "context done")
			return
		case <-time.After(delay):
		}
	}
}

// attempt performs one connect and consumes the stream until it ends.
// opened reports whether the connection got as far as Open.
func (c *Connection) attempt(ctx context.Context) (opened bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create stream request: %w", err)
	}

	for k, values := range c.opts.Header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", sse.ContentType)
	req.Header.Set("Cache-Control", "no-cache")
	if id := c.lastID(); id != "" {
		req.Header.Set("Last-Event-ID", id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mediaType != sse.ContentType {
		return false, fmt.Errorf("unexpected content type %q", resp.Header.Get("Content-Type"))
	}

	if !c.state.CompareAndSwap(int32(Connecting), int32(Open)) {
		return false, ctx.Err()
	}
	c.logger.Debug().Msg("stream opened")

	return true, c.consume(ctx, resp.Body)
}

// consume dispatches events until the stream ends, fails, idles or ctx is done.
func (c *Connection) consume(ctx context.Context, body io.Reader) error {
	events := make(chan sse.Event)
	errc := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	dec := sse.NewDecoder(body)
	go func() {
		for {
			ev, err := dec.Next()
			if err != nil {
				errc <- err
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	var (
		timer *time.Timer
		idle  <-chan time.Time
	)
	if c.opts.IdleTimeout > 0 {
		timer = time.NewTimer(c.opts.IdleTimeout)
		defer timer.Stop()
		idle = timer.C
	}

	for {
		select {
		case ev := <-events:
			c.remember(ev)
			if timer != nil {
				timer.Reset(c.opts.IdleTimeout)
			}
			c.dispatch(ev)
		case err := <-errc:
			return err
		case <-idle:
			return errIdle
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// reconnecting moves an open connection back to Connecting. It reports false
// once the connection is Closed, which is final.
func (c *Connection) reconnecting() bool {
	if c.state.CompareAndSwap(int32(Open), int32(Connecting)) {
		return true
	}
	return c.State() == Connecting
}

func (c *Connection) dispatch(ev sse.Event) {
	if c.State() != Open || c.onMessage == nil {
		return
	}
	c.onMessage(ev)
}

func (c *Connection) remember(ev sse.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ev.ID != "" {
		c.lastEventID = ev.ID
	}
	if ev.Retry > 0 {
		c.delay = ev.Retry
	}
}

func (c *Connection) lastID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastEventID
}

func (c *Connection) reconnectDelay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delay
}

func (c *Connection) finish(err error, reason string) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()

		c.state.Store(int32(Closed))
		c.cancel()

		if err != nil {
			c.logger.Error().Err(err).Str("reason", reason).Msg("stream closed")
		} else {
			c.logger.Info().Str("reason", reason).Msg("stream closed")
		}

		close(c.done)
	})
}
