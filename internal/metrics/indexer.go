package metrics

import "github.com/prometheus/client_golang/prometheus"

// Indexing Prometheus metrics.
var (
	WireOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wire_ops_total",
			Help:      "Indexing write operations by outcome",
		},
		[]string{"op", "status"},
	)

	IndexBatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "index_batch_duration_seconds",
			Help:      "Time to dispatch and complete one indexing batch",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	SchemaCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schema_created_total",
			Help:      "Index creations issued by the schema ensurer",
		},
		[]string{"index", "status"},
	)
)

// RegisterIndexerMetrics registers indexing metrics with the default registry.
// Call once from main.
func RegisterIndexerMetrics() {
	prometheus.MustRegister(WireOpsTotal, IndexBatchDuration, SchemaCreatedTotal)
}
