// Package reviewclient fetches the review collection from the review backend.
package reviewclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nfrund/reviewboard/internal/domain"
)

// ReviewsPath is the backend route serving the review collection.
const ReviewsPath = "/api/reviews"

var errTrailingData = errors.New("unexpected data after review collection")

// maxBodyBytes bounds how much of a response body is decoded.
const maxBodyBytes = 8 << 20

// Client issues review collection requests against a fixed backend origin.
type Client struct {
	endpoint string
	http     *http.Client
}

type options struct {
	transport  http.RoundTripper
	timeout    time.Duration
	middleware []MiddlewareFunc
}

// Option configures a Client.
type Option func(*options)

// WithTransport replaces the pooled base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithTimeout sets the overall request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithMiddleware appends middleware to the request chain. Middleware runs in
// the order given.
func WithMiddleware(mw ...MiddlewareFunc) Option {
	return func(o *options) { o.middleware = append(o.middleware, mw...) }
}

// New creates a Client for the given backend origin, e.g. "http://localhost:8000".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidOrigin, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q must be an http(s) origin", domain.ErrInvalidOrigin, baseURL)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.transport == nil {
		o.transport = DefaultPooledTransport()
	}

	return &Client{
		endpoint: strings.TrimRight(u.String(), "/") + ReviewsPath,
		http: &http.Client{
			Transport: &chain{base: o.transport, middleware: o.middleware},
			Timeout:   o.timeout,
		},
	}, nil
}

// Endpoint returns the full URL of the review collection.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchReviews performs a single GET of the review collection. Every failure
// is reported as a *domain.FetchError.
func (c *Client) FetchReviews(ctx context.Context) ([]domain.Review, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, &domain.FetchError{Op: "request", URL: c.endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Op: "request", URL: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &domain.FetchError{Op: "status", URL: c.endpoint, Status: resp.StatusCode}
	}

	var reviews []domain.Review
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	if err := dec.Decode(&reviews); err != nil {
		return nil, &domain.FetchError{Op: "decode", URL: c.endpoint, Err: err}
	}
	// The body must hold exactly one JSON value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return nil, &domain.FetchError{Op: "decode", URL: c.endpoint, Err: err}
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}
