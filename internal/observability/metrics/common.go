package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Path labels are normalized by httpmetrics.NormalizePath before use.
var (
	RateLimitBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profiles_rate_limit_blocked_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
		[]string{"path"},
	)

	DomainErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profiles_domain_errors_total",
			Help: "Domain errors surfaced to clients by category and code",
		},
		[]string{"category", "code"},
	)

	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profiles_http_errors_total",
			Help: "Error responses by status and path",
		},
		[]string{"status", "path"},
	)
)
