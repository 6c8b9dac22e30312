// Package lcd is a small JSON client for Cosmos LCD (REST) endpoints, shared by the
// Osmosis pool manager and ICA oracle collaborators.
package lcd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cosmossdk.io/log"
	"golang.org/x/time/rate"
)

// maxResponseSize bounds how much of a response body is read
const maxResponseSize = 4 << 20

// Config holds the LCD endpoint and client limits
type Config struct {
	// BaseURL is the LCD root, e.g. https://lcd.osmosis.zone
	BaseURL string
	// Timeout bounds each request
	Timeout time.Duration
	// RequestsPerSecond throttles outbound requests; zero disables throttling
	RequestsPerSecond float64
	// Burst is the limiter bucket size
	Burst int
}

// DefaultConfig returns the default LCD client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:           "http://localhost:1317",
		Timeout:           10 * time.Second,
		RequestsPerSecond: 10,
		Burst:             20,
	}
}

// Validate checks the configuration is usable
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("LCD base URL is required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("LCD base URL must be http(s), got %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("LCD timeout must be positive")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("LCD requests per second cannot be negative")
	}
	return nil
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("lcd %s returned status %d: %s", e.Path, e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the LCD
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// Client performs throttled GET requests against an LCD
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  log.Logger
}

// NewClient creates an LCD client from cfg
func NewClient(cfg Config, logger log.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		logger:  logger.With("module", "lcd"),
	}, nil
}

// BaseURL returns the LCD root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON fetches path and decodes the JSON body into out
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("lcd rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("lcd %s unreachable: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read lcd %s response: %w", path, err)
	}

	c.logger.Debug("lcd request", "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Path: path, Body: strings.TrimSpace(string(body))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode lcd %s response: %w", path, err)
	}
	return nil
}
