// Package metrics exposes Prometheus instrumentation for the analysis
// pipeline and the API in front of it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal counts completed analyses by direction.
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headerlens_analyses_total",
			Help: "Total number of header analyses performed",
		},
		[]string{"direction"},
	)

	// AnalysisDuration tracks how long a full parse-and-decode pass takes.
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "headerlens_analysis_duration_seconds",
			Help:    "Duration of a full parse-and-decode pass",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	// WarningsTotal counts validation warnings emitted by analyses.
	WarningsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "headerlens_warnings_total",
			Help: "Total number of validation warnings produced",
		},
	)

	// FragmentsDecoded counts which security header fragments were present.
	FragmentsDecoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headerlens_security_fragments_decoded_total",
			Help: "Security report fragments decoded, by fragment",
		},
		[]string{"fragment"},
	)

	// CacheRequests counts result cache lookups by outcome.
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headerlens_cache_requests_total",
			Help: "Result cache lookups, by outcome (hit or miss)",
		},
		[]string{"outcome"},
	)

	// HTTPRequests counts API requests by route and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headerlens_http_requests_total",
			Help: "API requests, by route and status code",
		},
		[]string{"route", "status"},
	)
)
