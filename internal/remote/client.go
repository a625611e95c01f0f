// Package remote is the HTTP client for the external blog service.
//
// The service exposes three endpoints:
//
//	GET  /blogs      list all posts
//	GET  /blogs/{id} fetch one post
//	POST /blogs      create a post
//
// Failures are classified into ErrNotFound, *NetworkError and *StatusError
// so presentation code can tell "Blog not found" apart from a generic failure.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoanghai1803/inkwell/internal/models"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "inkwell/1.0 (+https://github.com/hoanghai1803/inkwell)"

	// maxErrorBody caps how much of an error response is read for its message.
	maxErrorBody = 64 << 10
)

// Config controls how the client reaches the blog service.
type Config struct {
	// BaseURL is the service root, e.g. "http://localhost:3001".
	BaseURL string

	// Timeout bounds each request. Zero means 10 seconds.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests. Zero disables throttling.
	RequestsPerSecond float64

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Transport overrides the base RoundTripper (tests).
	Transport http.RoundTripper
}

// Client performs list/get/create calls against the blog service.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a Client for the service at cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	baseURL, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", cfg.BaseURL, err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must be http or https", cfg.BaseURL)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &headerTransport{
				base:      base,
				userAgent: cfg.UserAgent,
			},
		},
		limiter: limiter,
	}, nil
}

// headerTransport injects the headers every blog service call carries.
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/json")

	id := RequestIDFrom(req.Context())
	if id == "" {
		id = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", id)
	return t.base.RoundTrip(req)
}

// ListBlogs fetches every post.
func (c *Client) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := c.do(ctx, http.MethodGet, "/blogs", nil, &blogs); err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	if blogs == nil {
		blogs = []models.Blog{}
	}
	return blogs, nil
}

// GetBlog fetches a single post by id.
func (c *Client) GetBlog(ctx context.Context, id models.ID) (models.Blog, error) {
	if strings.TrimSpace(id.String()) == "" {
		return models.Blog{}, fmt.Errorf("blog id cannot be empty")
	}

	var blog models.Blog
	if err := c.do(ctx, http.MethodGet, "/blogs/"+url.PathEscape(id.String()), nil, &blog); err != nil {
		return models.Blog{}, fmt.Errorf("getting blog %s: %w", id, err)
	}
	return blog, nil
}

// CreateBlog posts a new blog and returns it as the service stored it.
// Services may answer with the full record or only its id; whatever the
// response leaves out is filled in from the payload.
func (c *Client) CreateBlog(ctx context.Context, payload models.NewBlog) (models.Blog, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/blogs", payload, &raw); err != nil {
		return models.Blog{}, fmt.Errorf("creating blog: %w", err)
	}

	created, err := decodeCreated(raw, payload)
	if err != nil {
		return models.Blog{}, fmt.Errorf("creating blog: %w", err)
	}
	return created, nil
}

// decodeCreated interprets a create response body: a Blog object, a bare id
// (string or number), or an empty body.
func decodeCreated(raw json.RawMessage, payload models.NewBlog) (models.Blog, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return models.Blog{}, fmt.Errorf("empty create response")
	}

	if raw[0] != '{' {
		var id models.ID
		if err := json.Unmarshal(raw, &id); err != nil {
			return models.Blog{}, fmt.Errorf("decoding created id: %w", err)
		}
		if id == "" {
			return models.Blog{}, fmt.Errorf("create response carried no id")
		}
		return payload.WithID(id), nil
	}

	var got models.Blog
	if err := json.Unmarshal(raw, &got); err != nil {
		return models.Blog{}, fmt.Errorf("decoding created blog: %w", err)
	}
	if got.ID == "" {
		return models.Blog{}, fmt.Errorf("create response carried no id")
	}

	full := payload.WithID(got.ID)
	if got.Title != "" {
		full.Title = got.Title
	}
	if got.Description != "" {
		full.Description = got.Description
	}
	if got.Content != "" {
		full.Content = got.Content
	}
	if got.CoverImage != "" {
		full.CoverImage = got.CoverImage
	}
	if len(got.Category) > 0 {
		full.Category = got.Category
	}
	if got.Date != "" {
		full.Date = got.Date
	}
	return full, nil
}

// do sends a JSON request and decodes a 2xx JSON response into target.
func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	endpoint := c.baseURL.String() + path

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &NetworkError{Op: method, URL: endpoint, Err: err}
		}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("building request %s %s: %w", method, endpoint, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("blog service request failed", "method", method, "url", endpoint, "error", err)
		return &NetworkError{Op: method, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		slog.Warn("blog service returned not found", "method", method, "url", endpoint)
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := readErrorMessage(resp.Body)
		slog.Warn("blog service returned non-2xx status",
			"method", method,
			"url", endpoint,
			"status", resp.StatusCode,
			"message", msg,
		)
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil && err != io.EOF {
			return fmt.Errorf("decoding response from %s %s: %w", method, endpoint, err)
		}
	}

	slog.Debug("blog service request",
		"method", method,
		"url", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
	)
	return nil
}

// readErrorMessage extracts a human-readable message from an error body. It
// understands {"error": "..."} and {"message": "..."} and falls back to the
// raw text.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(string(data))
}
