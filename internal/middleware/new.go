package middleware

import (
	"ai-receptionist/pkg/log"
)

type Middleware struct {
	l           log.Logger
	internalKey string
	limiter     *rateLimiter
}

// New builds the shared middleware. An empty internalKey disables the key check and
// a non-positive rateLimitPerMin disables rate limiting.
func New(l log.Logger, internalKey string, rateLimitPerMin int) Middleware {
	var limiter *rateLimiter
	if rateLimitPerMin > 0 {
		limiter = newRateLimiter(rateLimitPerMin)
	}
	return Middleware{
		l:           l,
		internalKey: internalKey,
		limiter:     limiter,
	}
}
