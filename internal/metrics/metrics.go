// Package metrics provides the centralized Prometheus metrics registry for
// the fight-odds service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fight_odds",
		Name:      "predictions_total",
		Help:      "Total number of matchups scored",
	})
	BootstrapRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fight_odds",
		Name:      "bootstrap_runs_total",
		Help:      "Total number of bootstrap resampling runs",
	})
	CalibrationRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fight_odds",
		Name:      "calibration_runs_total",
		Help:      "Total number of completed calibration runs",
	})
	CalibrationFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fight_odds",
		Name:      "calibration_failures_total",
		Help:      "Total number of failed calibration runs",
	})
	DatasetFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fight_odds",
		Name:      "dataset_fetches_total",
		Help:      "Total number of calibration dataset fetches by outcome",
	}, []string{"status"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fight_odds",
		Name:      "prediction_cache_hits_total",
		Help:      "Total number of prediction cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fight_odds",
		Name:      "prediction_cache_misses_total",
		Help:      "Total number of prediction cache misses",
	})
)

// Gauge and histogram metrics
var (
	CalibrationSamples = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fight_odds",
		Name:      "calibration_samples",
		Help:      "Number of labeled matchups used in the last calibration",
	})
	PredictionProbability = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fight_odds",
		Name:      "prediction_probability",
		Help:      "Distribution of scored win probabilities",
		Buckets:   prometheus.LinearBuckets(0.05, 0.05, 19),
	})
	BootstrapIntervalWidth = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fight_odds",
		Name:      "bootstrap_interval_width",
		Help:      "Width of the empirical probability interval",
		Buckets:   prometheus.LinearBuckets(0.01, 0.02, 15),
	})
)

// Registry returns the process-wide registry, registering all metrics on
// first use.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			PredictionsTotal,
			BootstrapRunsTotal,
			CalibrationRunsTotal,
			CalibrationFailuresTotal,
			DatasetFetchesTotal,
			CacheHitsTotal,
			CacheMissesTotal,
			CalibrationSamples,
			PredictionProbability,
			BootstrapIntervalWidth,
		)
	})
	return registry
}

// Handler returns an HTTP handler exposing the registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}
