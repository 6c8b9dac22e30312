package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ScalingFactorMetrics holds all Prometheus metrics for the stscaling module
type ScalingFactorMetrics struct {
	// Refresh metrics
	ScalingFactorUpdates *prometheus.CounterVec
	RedemptionRate       *prometheus.GaugeVec
	ScalingFactor        *prometheus.GaugeVec
	LastUpdated          *prometheus.GaugeVec
	OracleQueryFailures  *prometheus.CounterVec

	// Admin metrics
	PoolRegistrations *prometheus.CounterVec
	SudoAdjustments   *prometheus.CounterVec

	// Failures by action and error code
	ExecuteFailures *prometheus.CounterVec
}

var (
	scalingFactorMetricsOnce sync.Once
	scalingFactorMetrics     *ScalingFactorMetrics
)

// NewScalingFactorMetrics creates and registers stscaling metrics (singleton pattern)
func NewScalingFactorMetrics() *ScalingFactorMetrics {
	scalingFactorMetricsOnce.Do(func() {
		scalingFactorMetrics = &ScalingFactorMetrics{
			ScalingFactorUpdates: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "stride",
					Subsystem: "stscaling",
					Name:      "scaling_factor_updates_total",
					Help:      "Successful permissionless scaling factor refreshes by pool",
				},
				[]string{"pool_id"},
			),
			RedemptionRate: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "stride",
					Subsystem: "stscaling",
					Name:      "redemption_rate",
					Help:      "Last redemption rate read from the oracle by stToken denom",
				},
				[]string{"denom"},
			),
			ScalingFactor: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "stride",
					Subsystem: "stscaling",
					Name:      "scaling_factor",
					Help:      "Last scaling factor emitted by pool and asset position",
				},
				[]string{"pool_id", "position"},
			),
			LastUpdated: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "stride",
					Subsystem: "stscaling",
					Name:      "last_updated_seconds",
					Help:      "Block time of the last refresh by pool",
				},
				[]string{"pool_id"},
			),
			OracleQueryFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "stride",
					Subsystem: "stscaling",
					Name:      "oracle_query_failures_total",
					Help:      "Failed redemption rate queries by stToken denom",
				},
				[]string{"denom"},
			),
			PoolRegistrations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "stride",
					Subsystem: "stscaling",
					Name:      "pool_registrations_total",
					Help:      "Pool registry changes by action (add_pool, remove_pool)",
				},
				[]string{"action"},
			),
			SudoAdjustments: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "stride",
					Subsystem: "stscaling",
					Name:      "sudo_adjustments_total",
					Help:      "Admin scaling factor adjustments that bypassed the oracle, by pool",
				},
				[]string{"pool_id"},
			),
			ExecuteFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "stride",
					Subsystem: "stscaling",
					Name:      "execute_failures_total",
					Help:      "Rejected execute calls by action and error code",
				},
				[]string{"action", "code"},
			),
		}
	})
	return scalingFactorMetrics
}
