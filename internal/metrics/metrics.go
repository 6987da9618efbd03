package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes application metrics that are safe to scrape via Prometheus.
type Metrics struct {
	registry       *prometheus.Registry
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	searchesTotal  *prometheus.CounterVec
	searchDuration prometheus.Histogram
	searchRows     prometheus.Histogram
}

// New creates a fresh Metrics registry with HTTP and search metrics registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nethunter",
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests processed by core-go",
	}, []string{"method", "path", "status"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nethunter",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests served by core-go",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	searchesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nethunter",
		Name:      "searches_total",
		Help:      "Total number of searches run, by outcome",
	}, []string{"outcome"})

	searchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "nethunter",
		Name:      "search_duration_seconds",
		Help:      "Duration of a search from query to packaged rows",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	searchRows := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "nethunter",
		Name:      "search_rows",
		Help:      "Rows returned per search after filtering",
		Buckets:   []float64{0, 1, 5, 10, 20, 50, 100, 250, 500},
	})

	registry.MustRegister(
		httpRequests,
		httpDuration,
		searchesTotal,
		searchDuration,
		searchRows,
	)

	return &Metrics{
		registry:       registry,
		httpRequests:   httpRequests,
		httpDuration:   httpDuration,
		searchesTotal:  searchesTotal,
		searchDuration: searchDuration,
		searchRows:     searchRows,
	}
}

// ObserveHTTPRequest records a single HTTP request/response cycle.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.httpRequests.With(labels).Inc()
	m.httpDuration.With(labels).Observe(duration.Seconds())
}

// ObserveSearch records one finished search with its outcome, row count
// and duration.
func (m *Metrics) ObserveSearch(outcome string, rows int, duration time.Duration) {
	if m == nil {
		return
	}
	m.searchesTotal.With(prometheus.Labels{"outcome": outcome}).Inc()
	m.searchDuration.Observe(duration.Seconds())
	m.searchRows.Observe(float64(rows))
}

// Handler exposes the Prometheus registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("metrics unavailable"))
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
