package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
)

const (
	// DefaultTimeout bounds every backend request.
	DefaultTimeout = 10 * time.Second
	// DefaultRevalidate is how long a successful response is served from cache.
	DefaultRevalidate = 60 * time.Second

	maxBodySize  = 32 << 20 // 32MB
	maxErrorBody = 512
)

// ClientConfig configures a Client. Only BaseURL is required.
type ClientConfig struct {
	BaseURL string
	// Timeout bounds each request (default 10s).
	Timeout time.Duration
	// Revalidate is the cache window for successful responses (default 60s,
	// negative disables caching).
	Revalidate time.Duration
	Cache      ResponseCache
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client is the single low-level call helper for the backend API. It never
// retries; network failures come back as an empty envelope, everything else
// as an error.
type Client struct {
	baseURL    string
	timeout    time.Duration
	revalidate time.Duration
	cache      ResponseCache
	http       *http.Client
	log        *log.Logger
}

// NewClient creates a Client from cfg, filling in defaults.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		revalidate: cfg.Revalidate,
		cache:      cfg.Cache,
		http:       cfg.HTTPClient,
		log:        cfg.Logger,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.revalidate == 0 {
		c.revalidate = DefaultRevalidate
	}
	if c.revalidate < 0 {
		c.cache = noCache{}
	}
	if c.cache == nil {
		c.cache = NewMemoryCache()
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.log == nil {
		c.log = log.New("cms")
	}
	return c
}

// BaseURL returns the API root the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Invalidate drops every cached response so the next read goes to the backend.
func (c *Client) Invalidate(ctx context.Context) {
	c.cache.Invalidate(ctx)
}

// Fetch performs req against the backend. Responses carrying records are
// served from cache within the revalidation window. Benign network failures are logged and
// reported as an empty Envelope with a nil error.
func (c *Client) Fetch(ctx context.Context, req Request) (Envelope, error) {
	endpoint, err := req.Path()
	if err != nil {
		return Envelope{}, err
	}

	if body, ok := c.cache.Get(ctx, endpoint); ok {
		var env Envelope
		if err := json.Unmarshal(body, &env); err == nil {
			return env, nil
		}
		c.log.Warnf("discarding unreadable cached response for %s", endpoint)
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		if IsBenign(err) {
			c.log.Warnf("fetch %s failed, serving empty result: %v", endpoint, err)
			return Envelope{}, nil
		}
		c.log.Errorf("fetch %s failed: %v", endpoint, err)
		return Envelope{}, err
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.log.Errorf("decode %s failed: %v", endpoint, err)
		return Envelope{}, fmt.Errorf("cms: decode %s: %w", endpoint, err)
	}
	if !env.Empty() {
		c.cache.Set(ctx, endpoint, body, c.revalidate)
	}
	return env, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cms: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(b)),
		}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}
