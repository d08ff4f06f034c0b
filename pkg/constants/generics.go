package constants

import "time"

// RFC3339DateTimeFormat is used for every timestamp the API returns.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// Router-wide defaults, overridable through RATE_LIMIT_* and REQUEST_TIMEOUT.
const (
	DefaultRateLimitRequests      = 100
	DefaultRateLimitWindowMinutes = 1
	DefaultRequestTimeout         = 30 * time.Second
)

// Per-route budgets that are not configurable.
const (
	MonitoringRequestsPerMinute = 10
	FeedbackRequestsPerMinute   = 120
)

func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}
