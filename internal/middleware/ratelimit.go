package middleware

import (
	"fmt"
	"net/http"
	"time"

	"rentflow/internal/caching"

	"github.com/labstack/echo/v4"
)

// RateLimit rejects clients that exceed limit requests within the window,
// counted per client IP and route. Applied to the credential endpoints.
func RateLimit(cacheSvc caching.CacheService, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("%s:%s", c.Path(), c.RealIP())

			limited, err := cacheSvc.IsRateLimited(c.Request().Context(), key, limit, window)
			if err != nil {
				// Fail open on cache errors.
				return next(c)
			}
			if limited {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
			}

			return next(c)
		}
	}
}
