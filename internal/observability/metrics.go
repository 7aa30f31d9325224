package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce           sync.Once
	pageRequestsTotal      *prometheus.CounterVec
	pageLatencySeconds     *prometheus.HistogramVec
	upstreamRequestsTotal  *prometheus.CounterVec
	upstreamLatencySeconds *prometheus.HistogramVec
	cacheLookupsTotal      *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the dashboard.
func RegisterMetrics() {
	registerOnce.Do(func() {
		pageRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_requests_total",
			Help: "Total number of dashboard requests served.",
		}, []string{"method", "route", "status"})

		pageLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_latency_seconds",
			Help:    "Latency distribution for dashboard requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		upstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of requests issued to the REST backend.",
		}, []string{"method", "endpoint", "status"})

		upstreamLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "backend_latency_seconds",
			Help:    "Latency distribution for REST backend requests.",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "endpoint"})

		cacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_cache_lookups_total",
			Help: "Cache lookups by cache name and result.",
		}, []string{"cache", "result"})

		prometheus.MustRegister(pageRequestsTotal, pageLatencySeconds, upstreamRequestsTotal, upstreamLatencySeconds, cacheLookupsTotal)
	})
}

// PageRequests exposes the counter for dashboard requests.
func PageRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return pageRequestsTotal
}

// PageLatency exposes the latency histogram for dashboard requests.
func PageLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return pageLatencySeconds
}

// UpstreamRequests exposes the counter for backend requests.
func UpstreamRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return upstreamRequestsTotal
}

// UpstreamLatency exposes the latency histogram for backend requests.
func UpstreamLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return upstreamLatencySeconds
}

// CacheLookups exposes the cache hit/miss counter.
func CacheLookups() *prometheus.CounterVec {
	RegisterMetrics()
	return cacheLookupsTotal
}

// MetricsHandler exposes the Prometheus scrape endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.Handler())
}
