// Package metrics exposes LocalEats counters to Prometheus: lifecycle
// transitions, lost claim races, open feed subscriptions and HTTP request
// timings. Each Metrics value owns its registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "localeats"

var _ ports.TransitionRecorder = (*Metrics)(nil)

type Metrics struct {
	registry *prometheus.Registry

	transitions    *prometheus.CounterVec
	claimConflicts prometheus.Counter
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	inFlight       prometheus.Gauge
}

// New registers the LocalEats collectors together with the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Accepted order status transitions.",
		}, []string{"from", "to", "role"}),
		claimConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_claim_conflicts_total",
			Help:      "Driver claims that lost the race for an order.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.transitions,
		m.claimConflicts,
		m.requests,
		m.duration,
		m.inFlight,
	)
	return m
}

// WatchSubscriptions publishes the number of open feed subscriptions.
func (m *Metrics) WatchSubscriptions(count func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "feed_subscriptions",
		Help:      "Open order feed subscriptions.",
	}, func() float64 { return float64(count()) }))
}

func (m *Metrics) RecordTransition(from, to order.Status, role user.Role) {
	m.transitions.WithLabelValues(from.String(), to.String(), role.String()).Inc()
}

func (m *Metrics) RecordClaimConflict() {
	m.claimConflicts.Inc()
}

// StartRequest marks a request in flight and returns the function that
// records its outcome.
func (m *Metrics) StartRequest(method, path string) func(status int) {
	start := time.Now()
	m.inFlight.Inc()
	return func(status int) {
		m.inFlight.Dec()
		m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
