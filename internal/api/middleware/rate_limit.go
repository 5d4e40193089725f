package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Limiter is the minimal counting contract the middleware needs; it is
// implemented by the Redis-backed fixed-window limiter.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit caps requests per client IP per minute. A limiter outage fails
// open: blocking all registrations because Redis is down would turn a cache
// incident into an availability incident.
func RateLimit(limiter Limiter, perMinute int, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if perMinute <= 0 {
				return next(c)
			}

			key := "ratelimit:register:" + c.RealIP()
			allowed, err := limiter.Allow(c.Request().Context(), key, perMinute, time.Minute)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, failing open")
				return next(c)
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many registration attempts")
			}

			return next(c)
		}
	}
}
