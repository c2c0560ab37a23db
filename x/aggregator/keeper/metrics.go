package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AggregatorMetrics holds all Prometheus metrics for the Aggregator module
type AggregatorMetrics struct {
	// Resolution metrics
	Resolutions     *prometheus.CounterVec
	OracleReads     *prometheus.CounterVec
	ReadsPerResolve prometheus.Histogram
	ResolvedPrice   *prometheus.GaugeVec
	PriceAge        *prometheus.GaugeVec

	// Registry metrics
	AdminOperations *prometheus.CounterVec
	OraclesTracked  prometheus.Gauge
	AssetsTracked   prometheus.Gauge
	PeggedTracked   prometheus.Gauge
}

var (
	aggregatorMetricsOnce sync.Once
	aggregatorMetrics     *AggregatorMetrics
)

// NewAggregatorMetrics creates and registers Aggregator metrics (singleton pattern)
func NewAggregatorMetrics() *AggregatorMetrics {
	aggregatorMetricsOnce.Do(func() {
		aggregatorMetrics = &AggregatorMetrics{
			Resolutions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "aggregator",
					Name:      "resolutions_total",
					Help:      "Price resolutions by outcome",
				},
				[]string{"asset", "outcome"},
			),
			OracleReads: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "aggregator",
					Name:      "oracle_reads_total",
					Help:      "Calls made to upstream oracles",
				},
				[]string{"oracle", "call"},
			),
			ReadsPerResolve: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "paw",
					Subsystem: "aggregator",
					Name:      "reads_per_resolution",
					Help:      "Oracle price reads needed by one resolution",
					Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
				},
			),
			ResolvedPrice: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "aggregator",
					Name:      "resolved_price",
					Help:      "Last resolved price in reporting decimals",
				},
				[]string{"asset"},
			),
			PriceAge: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "aggregator",
					Name:      "price_age_seconds",
					Help:      "Age of the last resolved price",
				},
				[]string{"asset"},
			),
			AdminOperations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "aggregator",
					Name:      "admin_operations_total",
					Help:      "Registry mutations by type and result",
				},
				[]string{"operation", "result"},
			),
			OraclesTracked: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "aggregator",
					Name:      "oracles_tracked",
					Help:      "Registered oracles",
				},
			),
			AssetsTracked: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "aggregator",
					Name:      "assets_tracked",
					Help:      "Configured assets",
				},
			),
			PeggedTracked: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "aggregator",
					Name:      "pegged_assets_tracked",
					Help:      "Pegged assets",
				},
			),
		}
	})
	return aggregatorMetrics
}

// GetAggregatorMetrics returns the singleton Aggregator metrics instance
func GetAggregatorMetrics() *AggregatorMetrics {
	if aggregatorMetrics == nil {
		return NewAggregatorMetrics()
	}
	return aggregatorMetrics
}
