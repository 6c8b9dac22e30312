package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type fakeStore struct {
	height       int64
	instantiated bool
	err          error
}

func (f fakeStore) LastHeight() int64 { return f.height }

func (f fakeStore) Instantiated(context.Context) (bool, error) { return f.instantiated, f.err }

type fakeLCD struct {
	network string
	delay   time.Duration
	err     error
}

func (f fakeLCD) BaseURL() string { return "http://lcd.test" }

func (f fakeLCD) GetJSON(_ context.Context, path string, out any) error {
	time.Sleep(f.delay)
	if f.err != nil {
		return f.err
	}
	if path != NodeInfoPath {
		return errors.New("unexpected path")
	}
	return json.Unmarshal([]byte(`{"default_node_info":{"network":"`+f.network+`"}}`), out)
}

type HealthCheckTestSuite struct {
	suite.Suite
	logger log.Logger
}

func TestHealthCheckTestSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckTestSuite))
}

func (suite *HealthCheckTestSuite) SetupTest() {
	suite.logger = log.NewNopLogger()
}

func (suite *HealthCheckTestSuite) newChecker(store StoreProbe, lcd LCDProbe) *Checker {
	checker, err := NewChecker(suite.logger, DefaultConfig(), store, lcd)
	suite.Require().NoError(err)
	return checker
}

func (suite *HealthCheckTestSuite) TestHealthy() {
	checker := suite.newChecker(fakeStore{height: 12, instantiated: true}, fakeLCD{network: "osmosis-1"})

	health := checker.Check(context.Background(), true)
	suite.Require().Equal(StatusHealthy, health.Status)
	suite.Require().Len(health.Components, 2)
	suite.Require().Equal(int64(12), health.Components["store"].Metrics["last_height"])
	suite.Require().Equal("osmosis-1", health.Components["lcd"].Metrics["network"])
}

func (suite *HealthCheckTestSuite) TestNotInstantiatedIsDegraded() {
	checker := suite.newChecker(fakeStore{}, nil)

	health := checker.Check(context.Background(), true)
	suite.Require().Equal(StatusDegraded, health.Status)
	suite.Require().NotContains(health.Components, "lcd")
}

func (suite *HealthCheckTestSuite) TestUnhealthy() {
	tests := []struct {
		name  string
		store fakeStore
		lcd   fakeLCD
	}{
		{name: "store error", store: fakeStore{err: errors.New("db closed")}, lcd: fakeLCD{}},
		{name: "lcd unreachable", store: fakeStore{instantiated: true}, lcd: fakeLCD{err: errors.New("connection refused")}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			health := suite.newChecker(tt.store, tt.lcd).Check(context.Background(), true)
			suite.Require().Equal(StatusUnhealthy, health.Status)
		})
	}
}

func (suite *HealthCheckTestSuite) TestReadyIsCached() {
	checker := suite.newChecker(fakeStore{instantiated: true}, nil)

	first := checker.Check(context.Background(), false)
	second := checker.Check(context.Background(), false)
	suite.Require().Same(first, second)

	detailed := checker.Check(context.Background(), true)
	suite.Require().NotSame(first, detailed)
}

func (suite *HealthCheckTestSuite) TestRoutes() {
	checker := suite.newChecker(fakeStore{err: errors.New("db closed")}, nil)
	router := mux.NewRouter()
	checker.RegisterRoutes(router)

	tests := []struct {
		path string
		code int
	}{
		{path: "/health", code: http.StatusOK},
		{path: "/health/ready", code: http.StatusServiceUnavailable},
		{path: "/health/detailed", code: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		suite.Run(tt.path, func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			suite.Require().Equal(tt.code, rec.Code)
			suite.Require().Equal("application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestNewChecker(t *testing.T) {
	_, err := NewChecker(log.NewNopLogger(), DefaultConfig(), nil, nil)
	require.ErrorContains(t, err, "store probe is required")

	_, err = NewChecker(log.NewNopLogger(), Config{}, fakeStore{}, nil)
	require.ErrorContains(t, err, "max response time must be positive")
}

func TestCalculateOverallStatus(t *testing.T) {
	require.Equal(t, StatusHealthy, calculateOverallStatus(map[string]ComponentHealth{}))
	require.Equal(t, StatusDegraded, calculateOverallStatus(map[string]ComponentHealth{
		"a": {Status: StatusHealthy}, "b": {Status: StatusDegraded},
	}))
	require.Equal(t, StatusUnhealthy, calculateOverallStatus(map[string]ComponentHealth{
		"a": {Status: StatusDegraded}, "b": {Status: StatusUnhealthy},
	}))
}
