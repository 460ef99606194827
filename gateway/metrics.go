package gateway

import (
	"errors"

	"github.com/poiesic/readmore/core"
	"github.com/prometheus/client_golang/prometheus"
)

// Source label values.
const (
	sourceCurated = "curated"
	sourceSearch  = "search"
	sourceNone    = "none"
)

// PrometheusMonitor is a Monitor that exports request counts per source,
// query failures and result sizes. It is safe to share between gateways.
type PrometheusMonitor struct {
	requests *prometheus.CounterVec
	failures prometheus.Counter
	empty    prometheus.Counter
	pages    prometheus.Histogram
}

var _ Monitor = (*PrometheusMonitor)(nil)

// NewPrometheusMonitor creates the gateway metrics and registers them with reg.
// Metrics already registered by an earlier monitor are reused.
func NewPrometheusMonitor(reg prometheus.Registerer) (*PrometheusMonitor, error) {
	if reg == nil {
		return nil, ErrRegistererRequired
	}

	m := &PrometheusMonitor{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "readmore",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Related pages requests by source",
		}, []string{"source"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "readmore",
			Subsystem: "gateway",
			Name:      "query_failures_total",
			Help:      "Related pages queries that failed at the transport layer",
		}),
		empty: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "readmore",
			Subsystem: "gateway",
			Name:      "empty_results_total",
			Help:      "Related pages requests that resolved to no pages",
		}),
		pages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "readmore",
			Subsystem: "gateway",
			Name:      "pages_returned",
			Help:      "Number of related pages returned per request",
			Buckets:   prometheus.LinearBuckets(0, 1, 6),
		}),
	}

	var err error
	if m.requests, err = register(reg, m.requests); err != nil {
		return nil, err
	}
	if m.failures, err = register(reg, m.failures); err != nil {
		return nil, err
	}
	if m.empty, err = register(reg, m.empty); err != nil {
		return nil, err
	}
	if m.pages, err = register(reg, m.pages); err != nil {
		return nil, err
	}
	return m, nil
}

// register registers c, returning the existing collector if an identical
// one is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *PrometheusMonitor) Start(_ int) {}

func (m *PrometheusMonitor) CuratedQuery(_ []string) {
	m.requests.WithLabelValues(sourceCurated).Inc()
}

func (m *PrometheusMonitor) SearchQuery(_ string) {
	m.requests.WithLabelValues(sourceSearch).Inc()
}

func (m *PrometheusMonitor) NoSource() {
	m.requests.WithLabelValues(sourceNone).Inc()
}

func (m *PrometheusMonitor) QueryFailed(_ error) {
	m.failures.Inc()
}

func (m *PrometheusMonitor) Finish(pages []core.PageSummary) {
	if len(pages) == 0 {
		m.empty.Inc()
	}
	m.pages.Observe(float64(len(pages)))
}
