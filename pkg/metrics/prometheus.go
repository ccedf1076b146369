package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for an analytics run
type Metrics struct {
	registry *prometheus.Registry

	RowsLoaded        *prometheus.CounterVec
	RowsRejected      *prometheus.CounterVec
	IntegrityErrors   prometheus.Counter
	AnalyticsDuration *prometheus.HistogramVec
	AnalyticsResults  *prometheus.GaugeVec
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates metrics registered on a fresh registry
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RowsLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_loaded_total",
			Help:      "The total number of rows that passed validation",
		}, []string{"dataset"}),
		RowsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_rejected_total",
			Help:      "The total number of rows dropped by validation",
		}, []string{"dataset"}),
		IntegrityErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "integrity_errors_total",
			Help:      "Flight groups referencing an unknown passenger",
		}),
		AnalyticsDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analytics_duration_seconds",
			Help:      "Time taken by each analytics computation",
			Buckets:   prometheus.DefBuckets,
		}, []string{"analytic"}),
		AnalyticsResults: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "analytics_results",
			Help:      "Number of result rows produced by each analytics computation",
		}, []string{"analytic"}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format to path,
// for pickup by the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
