// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_api_requests_total",
			Help: "Total number of requests sent to the portfolio API",
		},
		[]string{"method", "resource", "code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_api_request_duration_seconds",
			Help:    "Duration of portfolio API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "resource"},
	)

	SessionUnauthorized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_session_unauthorized_total",
			Help: "Number of 401 responses that forced a logout",
		},
	)

	ListDegraded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_list_degraded_total",
			Help: "List fetches that failed and were served as an empty result",
		},
		[]string{"resource"},
	)
)
