package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	require.NotPanics(t, func() {
		m.ObserveRequest("/x", "GET", 200, time.Millisecond)
		m.InFlight(1)
		m.CacheLookup("list", CacheHit)
		m.CacheInvalidated("list", 3)
		m.CommentWrite("create")
		m.ReconcileFixed("comments_count", 1)
		m.ReconcileRun()
	})
}

func TestCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.CacheLookup("thread", CacheMiss)
	m.CacheLookup("thread", CacheMiss)
	m.CacheInvalidated("list", 4)
	m.CacheInvalidated("list", 0)
	m.ObserveRequest("/comments/{id}", "GET", 404, 5*time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("thread", CacheMiss)))
	require.Equal(t, 4.0, testutil.ToFloat64(m.cacheInvalidated.WithLabelValues("list")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/comments/{id}", "GET", "404")))

	n, err := testutil.GatherAndCount(reg, "shorts_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
