package ftfacade

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// sdkMetrics holds prometheus metrics registered for the client.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	writes     *prometheus.CounterVec
	hits       prometheus.Histogram
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ftfacade",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Client calls by operation and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ftfacade",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "Client call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ftfacade",
			Subsystem: "sdk",
			Name:      "index_writes_total",
			Help:      "Engine writes issued by Index, by outcome.",
		}, []string{"outcome"}),
		hits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ftfacade",
			Subsystem: "sdk",
			Name:      "search_hits",
			Help:      "Hits returned per successful search.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.writes); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.hits); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("ftfacade: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("ftfacade: register metric: %w", err)
	}
	return nil
}

// observer logs and counts client calls. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

// observe records a call that has no domain result worth counting (ping, suggest, health).
func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := o.record(op, start, err)
	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("call failed", "op", op, "duration", dur, "error", err)
		return
	}
	o.logger.Debug("call completed", "op", op, "duration", dur)
}

// observeSearch records a search and, when it succeeded, how many hits it returned.
func (o *observer) observeSearch(query string, start time.Time, hits int, err error) {
	if o == nil {
		return
	}
	dur := o.record("search", start, err)
	if err == nil && o.metrics != nil {
		o.metrics.hits.Observe(float64(hits))
	}
	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("search failed", "query", query, "duration", dur, "error", err)
		return
	}
	o.logger.Debug("search completed", "query", query, "hits", hits, "duration", dur)
}

// observeIndex records an indexing run. Write failures inside a run do not fail the call,
// so they are counted and logged from the report.
func (o *observer) observeIndex(start time.Time, report IndexReport, err error) {
	if o == nil {
		return
	}
	dur := o.record("index", start, err)
	if o.metrics != nil {
		o.metrics.writes.WithLabelValues("ok").Add(float64(report.Succeeded))
		o.metrics.writes.WithLabelValues("failed").Add(float64(report.Failed))
	}
	if o.logger == nil {
		return
	}
	switch {
	case err != nil:
		o.logger.Warn("index run skipped", "duration", dur, "error", err)
	case report.Failed > 0:
		o.logger.Warn("index run had failed writes",
			"documents", report.Documents, "succeeded", report.Succeeded, "failed", report.Failed, "duration", dur)
	default:
		o.logger.Info("index run completed", "documents", report.Documents, "duration", dur)
	}
}

func (o *observer) record(op string, start time.Time, err error) time.Duration {
	dur := time.Since(start)
	if o.metrics == nil {
		return dur
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	o.metrics.operations.WithLabelValues(op, status).Inc()
	o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	return dur
}
