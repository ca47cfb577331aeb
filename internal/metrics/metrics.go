package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry / fan-out metrics
var (
	// RegistryActiveTeams tracks the number of teams with at least one live channel
	RegistryActiveTeams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registry_active_teams",
			Help: "Number of teams with at least one registered channel",
		},
	)

	// RegistryChannels tracks registered channels by class
	RegistryChannels = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "registry_channels",
			Help: "Currently registered channels by class",
		},
		[]string{"class"},
	)

	// BroadcastsTotal tracks broadcast calls by event kind
	BroadcastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcasts_total",
			Help: "Total broadcast calls by event kind",
		},
		[]string{"event"},
	)

	// BroadcastDeliveries tracks successful per-channel deliveries by recipient class
	BroadcastDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_deliveries_total",
			Help: "Successful per-channel deliveries by recipient class",
		},
		[]string{"class"},
	)

	// BroadcastDeliveryFailures tracks failed deliveries (channel deregistered)
	BroadcastDeliveryFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_delivery_failures_total",
			Help: "Failed per-channel deliveries resulting in deregistration",
		},
	)
)

// WebSocket connection metrics
var (
	// WebSocketConnections tracks currently open WebSocket connections
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Currently open WebSocket connections",
		},
	)

	// WebSocketEnrollments tracks accepted connections by class
	WebSocketEnrollments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_enrollments_total",
			Help: "Accepted WebSocket connections by class",
		},
		[]string{"class"},
	)

	// WebSocketRejections tracks rejected connection attempts by reason
	WebSocketRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_rejections_total",
			Help: "Rejected WebSocket connection attempts by reason",
		},
		[]string{"reason"},
	)

	// WebSocketSendDuration tracks message write latency in seconds
	WebSocketSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "websocket_send_duration_seconds",
			Help:    "WebSocket message write duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	// WebSocketPingFailures tracks keepalive ping write failures
	WebSocketPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_ping_failures_total",
			Help: "Total WebSocket keepalive ping failures",
		},
	)
)

// Identity resolver cache metrics
var (
	// IdentityCacheHits tracks token resolutions served from cache
	IdentityCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identity_cache_hits_total",
			Help: "Token resolutions served from the identity cache",
		},
	)

	// IdentityCacheMisses tracks resolutions that required verification + lookup
	IdentityCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identity_cache_misses_total",
			Help: "Token resolutions that missed the identity cache",
		},
	)

	// IdentityCacheSize tracks current identity cache entries
	IdentityCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "identity_cache_size",
			Help: "Current number of identity cache entries",
		},
	)
)

// Auth metrics
var (
	// LoginAttemptsLimited tracks logins rejected by the rate limiter
	LoginAttemptsLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "login_attempts_limited_total",
			Help: "Login attempts rejected by the rate limiter",
		},
	)
)
