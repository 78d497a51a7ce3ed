package middlewares

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/constants"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit throttles a route group with a fixed window per client IP,
// counted in redis so the limit holds across replicas. Counter errors fail
// open: a broken redis must not lock everyone out of login.
func RateLimit(rdb redis.Cmdable, l *zap.Logger, max int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil {
				return next(c)
			}

			rctx := c.Request().Context()
			key := fmt.Sprintf(constants.RateLimitKeyAuth, c.RealIP())

			count, err := rdb.Incr(rctx, key).Result()
			if err != nil {
				l.Error("rate limit counter unavailable", zap.Error(err))
				return next(c)
			}
			if count == 1 {
				// A counter that never expires would throttle the IP forever,
				// so drop it and fail open when the TTL cannot be set.
				if err := rdb.Expire(rctx, key, window).Err(); err != nil {
					l.Error("rate limit window not set", zap.Error(err))
					rdb.Del(rctx, key)
					return next(c)
				}
			}

			if count > int64(max) {
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"message": http.StatusText(http.StatusTooManyRequests),
				})
			}

			return next(c)
		}
	}
}
