// Package reachability performs the single outbound check of the hosted
// page: an unauthenticated GET that must answer 200 OK with a known marker in
// the body. It sits outside the submission path.
package reachability

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultURL is the hosted copy of the contact page.
	DefaultURL = "https://cac-tat.s3.eu-central-1.amazonaws.com/index.html"
	// DefaultMarker must appear in the page body.
	DefaultMarker = "CAC TAT"
	// DefaultTimeout bounds a single check.
	DefaultTimeout = 10 * time.Second
	// maxBody caps how much of the response is inspected.
	maxBody = 4 << 20
)

// ErrURLRequired is returned when neither the call nor the checker has a URL.
var ErrURLRequired = errors.New("reachability: url is required")

// Result describes the response of a check. A non-200 answer is a Result,
// not an error.
type Result struct {
	URL            string        `json:"url"`
	Status         int           `json:"status"`
	StatusText     string        `json:"statusText"`
	Marker         string        `json:"marker"`
	ContainsMarker bool          `json:"containsMarker"`
	Duration       time.Duration `json:"duration"`
}

// OK reports whether the page answered 200 and contains the marker.
func (r Result) OK() bool {
	return r.Status == http.StatusOK && r.ContainsMarker
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		if client != nil {
			c.client = client
		}
	}
}

// WithURL overrides the default URL.
func WithURL(url string) Option {
	return func(c *Checker) {
		if u := strings.TrimSpace(url); u != "" {
			c.url = u
		}
	}
}

// WithMarker overrides the expected body marker.
func WithMarker(marker string) Option {
	return func(c *Checker) {
		if marker != "" {
			c.marker = marker
		}
	}
}

// WithTimeout bounds each request. Zero disables the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Checker issues reachability checks.
type Checker struct {
	client  *http.Client
	url     string
	marker  string
	timeout time.Duration
	logger  *zap.Logger
}

// New constructs a Checker with defaults applied.
func New(opts ...Option) *Checker {
	c := &Checker{
		client:  http.DefaultClient,
		url:     DefaultURL,
		marker:  DefaultMarker,
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Check fetches url, or the configured URL when url is empty.
func (c *Checker) Check(ctx context.Context, url string) (Result, error) {
	target := strings.TrimSpace(url)
	if target == "" {
		target = c.url
	}
	if target == "" {
		return Result{}, ErrURLRequired
	}

	reqCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return Result{}, fmt.Errorf("reachability: build request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("reachability request failed", zap.String("url", target), zap.Error(err))
		return Result{}, fmt.Errorf("reachability: get %s: %w", target, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Result{}, fmt.Errorf("reachability: read body: %w", err)
	}

	result := Result{
		URL:            target,
		Status:         resp.StatusCode,
		StatusText:     http.StatusText(resp.StatusCode),
		Marker:         c.marker,
		ContainsMarker: bytes.Contains(body, []byte(c.marker)),
		Duration:       time.Since(start),
	}
	c.logger.Info("reachability checked",
		zap.String("url", target),
		zap.Int("status", result.Status),
		zap.Bool("containsMarker", result.ContainsMarker),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}
