package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProfilesRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profiles_requests_total",
			Help: "Total number of profiles requests",
		},
		[]string{"method", "path"},
	)

	ProfilesRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "profiles_requests_in_flight",
			Help: "Number of profiles requests currently being processed",
		},
	)

	ProfilesRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profiles_request_duration_seconds",
			Help:    "Duration of profiles requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	UpstreamFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profiles_upstream_fetch_total",
			Help: "Total number of user list fetches by outcome",
		},
		[]string{"outcome"},
	)

	UpstreamFetchDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profiles_upstream_fetch_duration_seconds",
			Help:    "Duration of the user list fetch in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"outcome"},
	)

	FetchState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "profiles_fetch_state",
			Help: "Fetch lifecycle state (0=pending, 1=loaded, 2=failed)",
		},
	)

	UsersLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "profiles_users_loaded",
			Help: "Number of user records held by the loaded state",
		},
	)

	CardsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profiles_cards_rendered_total",
			Help: "Total number of profile cards rendered by surface",
		},
		[]string{"surface"},
	)

	WebSocketConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "profiles_websocket_connections_active",
			Help: "Number of active state websocket connections",
		},
	)

	WebSocketErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profiles_websocket_errors_total",
			Help: "Total number of state websocket errors by type",
		},
		[]string{"error_type"},
	)
)
