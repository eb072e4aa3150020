// Package gateway is a client for the pet clinic API gateway.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultTimeout bounds every non-streaming request.
	DefaultTimeout = 10 * time.Second

	maxBodySize = 16 << 20
)

// Version selects the gateway API generation.
type Version int

const (
	V1 Version = 1
	V2 Version = 2
)

// Prefix returns the path prefix of the version.
func (v Version) Prefix() string {
	if v == V2 {
		return "/api/v2/gateway"
	}
	return "/api/gateway"
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Version Version
	Timeout time.Duration
	APIKey  string
	Token   string
}

// Client talks to one gateway.
type Client struct {
	http    *http.Client
	baseURL string
	prefix  string
	apiKey  string
	token   string
	maxBody int64
	logger  zerolog.Logger
}

// New creates a client. BaseURL must be an absolute http(s) URL.
func New(opts Options, logger zerolog.Logger) (*Client, error) {
	u, err := url.ParseRequestURI(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url scheme %q", u.Scheme)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(u.String(), "/"),
		prefix:  opts.Version.Prefix(),
		apiKey:  opts.APIKey,
		token:   opts.Token,
		maxBody: maxBodySize,
		logger:  logger.With().Str("component", "gateway").Logger(),
	}, nil
}

// URL returns the absolute URL of a gateway path such as "/inventories".
func (c *Client) URL(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + c.prefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// StreamURL returns the absolute URL of an event stream endpoint.
func (c *Client) StreamURL(path string, query url.Values) string {
	return c.URL(path, query)
}

// Header returns the authentication headers every request carries. Stream
// subscriptions send them too.
func (c *Client) Header() http.Header {
	h := http.Header{}
	if c.apiKey != "" {
		h.Set("X-API-Key", c.apiKey)
	}
	if c.token != "" {
		h.Set("Authorization", "Bearer "+c.token)
	}
	return h
}

// StreamClient returns an HTTP client for long-lived subscriptions. It shares
// the transport but carries no overall timeout.
func (c *Client) StreamClient() *http.Client {
	return &http.Client{Transport: c.http.Transport}
}

// DoJSON sends in as JSON (when not nil) and decodes the response into out
// (when not nil). Non-2xx responses are returned as *APIError.
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	raw, err := c.do(req)
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range c.Header() {
		req.Header[k] = v
	}
	return req, nil
}

// do executes req and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(raw)) > c.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes from %s", ErrResponseTooLarge, c.maxBody, req.URL.Path)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("gateway request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, raw)
	}
	return raw, nil
}
