package constants

import "time"

const (
	// AuthTokenDuration is the only expiry a signed token carries. There is
	// no server-side revocation, so keep this bounded.
	AuthTokenDuration = 7 * 24 * time.Hour
)

const (
	RateLimitKeyAuth = "fsapi:ratelimit:auth:%s" // %s -> client IP
	RateLimitWindow  = 1 * time.Minute
	RateLimitMax     = 10
)
