// Package directus is a typed client for the Directus REST API: authentication,
// item CRUD and the schema endpoints used by the setup tooling.
package directus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/raynzz/eventdesk/pkg/observability/attr"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 1 << 20
)

// Metrics observes CMS round trips.
type Metrics interface {
	ObserveRequest(method, resource, status string, d time.Duration)
}

// Client talks to one Directus instance. Calls are made one at a time by the
// caller and are never retried.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  oauth2.TokenSource
	metrics Metrics
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets the bearer token used when the request context carries none.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithStaticToken is WithTokenSource for a fixed token such as an admin static token.
func WithStaticToken(token string) Option {
	return func(c *Client) {
		c.tokens = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMetrics records request counts and latency.
func WithMetrics(m Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the Directus instance at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("directus: base url is required")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("directus: invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("directus: unsupported scheme %q", u.Scheme)
	}

	c := &Client{
		baseURL: u,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// BaseURL returns the instance URL the client talks to.
func (c *Client) BaseURL() string { return c.baseURL.String() }

type tokenCtxKey struct{}

// WithAccessToken returns a context whose requests authenticate as the given
// user token instead of the client's token source.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

// AccessTokenFromContext returns the user token set by WithAccessToken.
func AccessTokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenCtxKey{}).(string)
	return tok, ok && tok != ""
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// anonymous requests never send a bearer token (login, refresh).
	anonymous bool
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// do performs one request and decodes the "data" member into out when out is non-nil.
func (c *Client) do(ctx context.Context, req request, out any) error {
	u := *c.baseURL
	u.Path = u.Path + req.path
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("directus: encode %s body: %w", req.path, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("directus: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if id := attr.CorrelationID(ctx); id != "" {
		httpReq.Header.Set("X-Request-Id", id)
	}

	if !req.anonymous {
		if err := c.authorize(ctx, httpReq); err != nil {
			return err
		}
	}

	resource := resourceOf(req.path)
	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.observe(req.method, resource, "error", start)
		return fmt.Errorf("directus: %s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()
	c.observe(req.method, resource, strconv.Itoa(resp.StatusCode), start)

	c.logger.DebugContext(ctx, "Directus request completed",
		attr.ExtractCorrelationID(ctx),
		attr.String("method", req.method),
		attr.String("path", req.path),
		attr.Int("status", resp.StatusCode),
		attr.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp, req)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("directus: decode %s response: %w", req.path, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("directus: decode %s data: %w", req.path, err)
	}
	return nil
}

func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if tok, ok := AccessTokenFromContext(ctx); ok {
		(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"}).SetAuthHeader(req)
		return nil
	}
	if c.tokens == nil {
		return ErrNoToken
	}
	tok, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoToken, err)
	}
	tok.SetAuthHeader(req)
	return nil
}

func (c *Client) observe(method, resource, status string, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(method, resource, status, time.Since(start))
	}
}

func decodeError(resp *http.Response, req request) error {
	e := &Error{Status: resp.StatusCode, Method: req.method, Path: req.path}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Errors []ErrorDetail `json:"errors"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && len(payload.Errors) > 0 {
		e.Errors = payload.Errors
		return e
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		e.Errors = []ErrorDetail{{Message: msg}}
	}
	return e
}

// resourceOf reduces a request path to a low-cardinality metrics label.
func resourceOf(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(parts) == 0 || parts[0] == "":
		return "/"
	case parts[0] == "items" && len(parts) > 2:
		return "/items/{collection}/{id}"
	case parts[0] == "items":
		return "/items/{collection}"
	case parts[0] == "fields" && len(parts) > 1:
		return "/fields/{collection}"
	case parts[0] == "auth" || parts[0] == "users":
		return "/" + strings.Join(parts, "/")
	}
	return "/" + parts[0]
}

func itemsPath(collection string) string {
	return "/items/" + url.PathEscape(collection)
}

func itemPath(collection string, id ID) string {
	return itemsPath(collection) + "/" + url.PathEscape(id.String())
}
