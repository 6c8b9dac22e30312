// Package health provides liveness and readiness checks for stscalingd.
//
// The checker reports on two components:
// - store: the local multistore is readable and the contract is instantiated
// - lcd: the Osmosis LCD the collaborators query is reachable
//
// Endpoints:
// - /health - Basic liveness check
// - /health/ready - Readiness check for load balancers
// - /health/detailed - Component status with metrics, never cached
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/mux"
)

// NodeInfoPath is the LCD endpoint probed by the lcd component
const NodeInfoPath = "/cosmos/base/tendermint/v1beta1/node_info"

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// ComponentHealth represents the health status of a single component
type ComponentHealth struct {
	Status    Status         `json:"status"`
	Message   string         `json:"message,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Metrics   map[string]any `json:"metrics,omitempty"`
}

// HealthCheck represents the overall health check response
type HealthCheck struct {
	Status     Status                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// StoreProbe is the part of the app the store check needs
type StoreProbe interface {
	LastHeight() int64
	Instantiated(ctx context.Context) (bool, error)
}

// LCDProbe is the part of the LCD client the lcd check needs
type LCDProbe interface {
	GetJSON(ctx context.Context, path string, out any) error
	BaseURL() string
}

// Config holds configuration for the health checker
type Config struct {
	// MaxResponseTime is the maximum acceptable LCD response time
	MaxResponseTime time.Duration

	// CacheDuration is how long to cache readiness results
	CacheDuration time.Duration
}

// DefaultConfig returns the default health check configuration
func DefaultConfig() Config {
	return Config{
		MaxResponseTime: 5 * time.Second,
		CacheDuration:   5 * time.Second,
	}
}

// Checker performs health checks on the store and the LCD
type Checker struct {
	logger log.Logger
	store  StoreProbe
	lcd    LCDProbe

	maxResponseTime time.Duration

	mu            sync.RWMutex
	lastCheck     time.Time
	cachedHealth  *HealthCheck
	cacheDuration time.Duration
}

// NewChecker creates a new health checker. lcd may be nil when no LCD is configured.
func NewChecker(logger log.Logger, cfg Config, store StoreProbe, lcd LCDProbe) (*Checker, error) {
	if store == nil {
		return nil, fmt.Errorf("store probe is required")
	}
	if cfg.MaxResponseTime <= 0 {
		return nil, fmt.Errorf("max response time must be positive")
	}

	return &Checker{
		logger:          logger,
		store:           store,
		lcd:             lcd,
		maxResponseTime: cfg.MaxResponseTime,
		cacheDuration:   cfg.CacheDuration,
	}, nil
}

// Check performs the health checks. Non-detailed checks may be served from cache.
func (c *Checker) Check(ctx context.Context, detailed bool) *HealthCheck {
	if !detailed {
		if cached := c.cached(); cached != nil {
			return cached
		}
	}

	health := &HealthCheck{
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
	}

	checks := map[string]func(context.Context) ComponentHealth{
		"store": c.checkStore,
	}
	if c.lcd != nil {
		checks["lcd"] = c.checkLCD
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for name, fn := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := fn(ctx)
			mu.Lock()
			health.Components[name] = result
			mu.Unlock()
		}()
	}
	wg.Wait()

	health.Status = calculateOverallStatus(health.Components)

	c.mu.Lock()
	c.lastCheck = time.Now()
	c.cachedHealth = health
	c.mu.Unlock()

	return health
}

// checkStore verifies the store is readable and the contract is instantiated
func (c *Checker) checkStore(ctx context.Context) ComponentHealth {
	instantiated, err := c.store.Instantiated(ctx)
	if err != nil {
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   fmt.Sprintf("Store read failed: %v", err),
			Timestamp: time.Now(),
		}
	}

	metrics := map[string]any{
		"last_height":  c.store.LastHeight(),
		"instantiated": instantiated,
	}

	if !instantiated {
		return ComponentHealth{
			Status:    StatusDegraded,
			Message:   "Contract is not instantiated",
			Timestamp: time.Now(),
			Metrics:   metrics,
		}
	}

	return ComponentHealth{
		Status:    StatusHealthy,
		Message:   "Store is readable",
		Timestamp: time.Now(),
		Metrics:   metrics,
	}
}

// checkLCD verifies the LCD is reachable and responsive
func (c *Checker) checkLCD(ctx context.Context) ComponentHealth {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.maxResponseTime)
	defer cancel()

	var nodeInfo struct {
		DefaultNodeInfo struct {
			Network string `json:"network"`
			Moniker string `json:"moniker"`
		} `json:"default_node_info"`
	}

	start := time.Now()
	err := c.lcd.GetJSON(timeoutCtx, NodeInfoPath, &nodeInfo)
	duration := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   fmt.Sprintf("LCD connection failed: %v", err),
			Timestamp: time.Now(),
			Metrics:   map[string]any{"endpoint": c.lcd.BaseURL()},
		}
	}

	metrics := map[string]any{
		"endpoint":         c.lcd.BaseURL(),
		"response_time_ms": duration.Milliseconds(),
		"network":          nodeInfo.DefaultNodeInfo.Network,
	}

	componentStatus := StatusHealthy
	message := "LCD endpoint is responsive"
	if duration > c.maxResponseTime/2 {
		componentStatus = StatusDegraded
		message = "LCD endpoint response time is degraded"
	}

	return ComponentHealth{
		Status:    componentStatus,
		Message:   message,
		Timestamp: time.Now(),
		Metrics:   metrics,
	}
}

// calculateOverallStatus determines the overall health status based on component statuses
func calculateOverallStatus(components map[string]ComponentHealth) Status {
	hasDegraded := false
	for _, component := range components {
		switch component.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			hasDegraded = true
		}
	}
	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

func (c *Checker) cached() *HealthCheck {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cachedHealth == nil || time.Since(c.lastCheck) >= c.cacheDuration {
		return nil
	}
	return c.cachedHealth
}

// RegisterRoutes registers health check endpoints on router
func (c *Checker) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", c.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", c.handleHealthReady).Methods(http.MethodGet)
	router.HandleFunc("/health/detailed", c.handleHealthDetailed).Methods(http.MethodGet)
}

func (c *Checker) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (c *Checker) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	health := c.Check(r.Context(), false)

	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		c.logger.Error("readiness check failed", "components", health.Components)
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, health)
}

func (c *Checker) handleHealthDetailed(w http.ResponseWriter, r *http.Request) {
	health := c.Check(r.Context(), true)

	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, health)
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
