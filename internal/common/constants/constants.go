package constants

import "time"

const (
	DefaultMaxRequestSize   = 1 << 20
	DefaultMaxResponseBytes = 1 << 20

	DefaultProfilesHTTPPort       = "8080"
	DefaultUsersEndpoint          = "https://jsonplaceholder.typicode.com/users"
	DefaultAvatarBaseURL          = "https://api.dicebear.com/7.x"
	DefaultAvatarStyle            = "adventurer"
	DefaultFetchTimeout           = 0 * time.Second
	DefaultProfilesRequestTimeout = 5 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultRateLimitRequestsPerSecond = 20
	DefaultRateLimitBurst             = 40
	RateLimitCleanupInterval          = 5 * time.Minute

	WebSocketReadBufferSize  = 1024
	WebSocketWriteBufferSize = 1024
	WebSocketWriteWait       = 10 * time.Second
	WebSocketPongWait        = 60 * time.Second
	WebSocketPingPeriod      = (WebSocketPongWait * 9) / 10

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
