// metrics — Prometheus-коллекторы сервиса. Все методы безопасны для nil *Metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shorts"

// Cache outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

type Metrics struct {
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	inFlight         prometheus.Gauge
	cacheLookups     *prometheus.CounterVec
	cacheInvalidated *prometheus.CounterVec
	commentsWritten  *prometheus.CounterVec
	reconcileFixes   *prometheus.CounterVec
	reconcileRuns    prometheus.Counter
}

// New создаёт и регистрирует коллекторы в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by view and outcome (hit, miss, error).",
		}, []string{"view", "outcome"}),
		cacheInvalidated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidated_keys_total",
			Help:      "Cache keys purged by invalidation, by view.",
		}, []string{"view"}),
		commentsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comment_writes_total",
			Help:      "Comment mutations by kind.",
		}, []string{"kind"}),
		reconcileFixes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_fixes_total",
			Help:      "Counters corrected by reconciliation, by counter.",
		}, []string{"counter"}),
		reconcileRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_runs_total",
			Help:      "Background reconciler passes.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.requests,
			m.requestDuration,
			m.inFlight,
			m.cacheLookups,
			m.cacheInvalidated,
			m.commentsWritten,
			m.reconcileFixes,
			m.reconcileRuns,
		)
	}

	return m
}

// ObserveRequest фиксирует завершённый HTTP-запрос.
func (m *Metrics) ObserveRequest(route, method string, status int, dur time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(dur.Seconds())
}

func (m *Metrics) InFlight(delta float64) {
	if m == nil {
		return
	}

	m.inFlight.Add(delta)
}

func (m *Metrics) CacheLookup(view, outcome string) {
	if m == nil {
		return
	}

	m.cacheLookups.WithLabelValues(view, outcome).Inc()
}

func (m *Metrics) CacheInvalidated(view string, n int64) {
	if m == nil || n <= 0 {
		return
	}

	m.cacheInvalidated.WithLabelValues(view).Add(float64(n))
}

func (m *Metrics) CommentWrite(kind string) {
	if m == nil {
		return
	}

	m.commentsWritten.WithLabelValues(kind).Inc()
}

func (m *Metrics) ReconcileFixed(counter string, n int64) {
	if m == nil || n <= 0 {
		return
	}

	m.reconcileFixes.WithLabelValues(counter).Add(float64(n))
}

func (m *Metrics) ReconcileRun() {
	if m == nil {
		return
	}

	m.reconcileRuns.Inc()
}
