// Package apiclient is the JSON-over-HTTP caller shared by the marketplace and
// LLM adapters: auth headers, pacing, 429 retries and error classification
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"sellerbot/internal/core/throttle"
	perr "sellerbot/internal/platform/errors"
	"sellerbot/internal/platform/logger"
)

const (
	defaultTimeout = 5 * time.Second
	maxBody        = 32 << 20
	tailSize       = 512
)

// Options configures a Client
type Options struct {
	// Name labels logs and error messages, e.g. "wb" or "llm"
	Name    string
	Timeout time.Duration

	// Auth decorates every request with credentials
	Auth func(h http.Header)

	// RetryHeader carries the server's backoff hint on 429, in seconds
	RetryHeader string

	// ErrorMessage extracts a readable message from an error body; optional
	ErrorMessage func(body []byte) string

	Limiter     throttle.Limiter
	MaxAttempts int
	RetryWait   time.Duration

	HTTP *http.Client
	Log  *logger.Logger
}

// Client issues JSON requests
type Client struct {
	http  *http.Client
	opts  Options
	retry throttle.Retrier
	log   *logger.Logger
	now   func() time.Time
}

// New returns a Client with defaults applied
func New(o Options) *Client {
	if o.Name == "" {
		o.Name = "api"
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RetryHeader == "" {
		o.RetryHeader = "Retry-After"
	}
	hc := o.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	log := o.Log
	if log == nil {
		log = logger.Named(o.Name)
	}
	return &Client{
		http: hc,
		opts: o,
		retry: throttle.Retrier{
			MaxAttempts: o.MaxAttempts,
			Wait:        o.RetryWait,
			Limiter:     o.Limiter,
			Log:         log,
		},
		log: log,
		now: time.Now,
	}
}

// Do sends body (JSON encoded when not nil) and decodes the answer into out
// (skipped when out is nil). Rate limited calls are retried
func (c *Client) Do(ctx context.Context, method, url string, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeJSON, "%s encode request", c.opts.Name)
		}
		payload = b
	}
	return c.retry.Do(ctx, func(ctx context.Context) error {
		return c.once(ctx, method, url, payload, out)
	})
}

// Get is Do without a body
func (c *Client) Get(ctx context.Context, url string, out any) error {
	return c.Do(ctx, http.MethodGet, url, nil, out)
}

// Post is Do with POST
func (c *Client) Post(ctx context.Context, url string, body, out any) error {
	return c.Do(ctx, http.MethodPost, url, body, out)
}

func (c *Client) once(ctx context.Context, method, url string, payload []byte, out any) error {
	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "%s new request failed", c.opts.Name)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.opts.Auth != nil {
		c.opts.Auth(req.Header)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s %s %s failed", c.opts.Name, method, req.URL.Path)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	c.log.Debug().
		Str("method", method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Int("bytes", len(data)).
		Msg("http response")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s read response", c.opts.Name)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(method, req.URL.Path, resp.StatusCode, resp.Header, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "%s decode %s", c.opts.Name, req.URL.Path)
	}
	return nil
}

func (c *Client) statusError(method, path string, status int, h http.Header, body []byte) error {
	msg := ""
	if c.opts.ErrorMessage != nil {
		msg = c.opts.ErrorMessage(body)
	}
	if msg == "" {
		msg = tail(body)
	}
	err := perr.Newf(perr.FromHTTPStatus(status), "%s %s %s: status %d: %s", c.opts.Name, method, path, status, msg)
	if status == http.StatusTooManyRequests {
		if d, ok := throttle.ParseRetryAfter(h.Get(c.opts.RetryHeader)); ok {
			err = perr.WithRetryAfter(err, d)
		}
	}
	return err
}

func tail(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > tailSize {
		s = s[:tailSize]
	}
	return s
}
