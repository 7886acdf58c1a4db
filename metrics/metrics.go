// Package metrics provides Prometheus metrics for the Udmurt corpus wrapper.
// It tracks tool calls, corpus API latencies, cache performance, and error rates.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "udmcorpus"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// CacheHits counts dictionary cache hits
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_hits_total",
		Help:      "Total cache hit count",
	})

	// CacheMisses counts dictionary cache misses
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_misses_total",
		Help:      "Total cache miss count",
	})

	// CacheSize tracks current cache entry count
	CacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "cache_entries",
		Help:      "Current number of cache entries",
	})

	// CacheEvictions counts cache evictions
	CacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_evictions_total",
		Help:      "Total cache eviction count",
	})

	// CorpusAPILatency measures corpus API call latency by endpoint
	CorpusAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "corpus_api_latency_seconds",
		Help:      "Corpus API call latency by endpoint",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	// CorpusAPIRequestsTotal counts corpus API requests
	CorpusAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "corpus_api_requests_total",
		Help:      "Total corpus API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	// CorpusAPIErrors counts corpus API errors by error code
	CorpusAPIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "corpus_api_errors_total",
		Help:      "Corpus API errors by endpoint and error code",
	}, []string{"endpoint", "error_code"})

	// CorpusAPIRetries counts API request retries
	CorpusAPIRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "corpus_api_retries_total",
		Help:      "Corpus API retry count by endpoint",
	}, []string{"endpoint"})

	// PagesFetched measures how many result pages a single search aggregates
	PagesFetched = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "search_pages_fetched",
		Help:      "Number of result pages fetched per search",
		Buckets:   []float64{1, 2, 3, 5, 10, 25, 50, 100},
	})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})
)

// RecordRequest records a completed request with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a corpus API call
func RecordAPICall(endpoint string, duration float64, success bool, errorCode string) {
	status := "success"
	if !success {
		status = "error"
	}
	CorpusAPIRequestsTotal.WithLabelValues(endpoint, status).Inc()
	CorpusAPILatency.WithLabelValues(endpoint).Observe(duration)
	if errorCode != "" {
		CorpusAPIErrors.WithLabelValues(endpoint, errorCode).Inc()
	}
}

// RecordCacheAccess records a cache hit or miss
func RecordCacheAccess(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// SetCacheSize updates the current cache size gauge
func SetCacheSize(size int64) {
	CacheSize.Set(float64(size))
}

// ObservePagesFetched records the page count of a completed search aggregation
func ObservePagesFetched(n int) {
	PagesFetched.Observe(float64(n))
}
