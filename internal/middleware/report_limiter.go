package middleware

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/aaditya996/City-Issue-Tracker/internal/dto"
	"github.com/aaditya996/City-Issue-Tracker/internal/identity"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Counter is the subset of redis commands the limiter needs.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

const reportLimitPrefix = "issues:report-limit:"

// ReportRateLimiter caps how many issues one reporter may file per window.
// It must run after ResolveActor. Counter errors fail open.
func ReportRateLimiter(counter Counter, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := identity.GetActor(c)
		if !actor.Authenticated() || limit <= 0 {
			return c.Next()
		}

		ctx := c.UserContext()
		key := reportLimitPrefix + actor.UserID.String()

		count, err := counter.Incr(ctx, key).Result()
		if err != nil {
			slog.Error("report limiter incr failed", "error", err, "user_id", actor.UserID.String())
			return c.Next()
		}
		if count == 1 {
			if err := counter.Expire(ctx, key, window).Err(); err != nil {
				slog.Error("report limiter expire failed", "error", err, "user_id", actor.UserID.String())
			}
		}

		if count > int64(limit) {
			retryAfter, _ := counter.TTL(ctx, key).Result()
			if retryAfter > 0 {
				c.Set(fiber.HeaderRetryAfter, formatSeconds(retryAfter))
			}
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: true, Message: "Daily report limit reached, try again later",
			})
		}

		return c.Next()
	}
}

func formatSeconds(d time.Duration) string {
	return strconv.Itoa(int(math.Ceil(d.Seconds())))
}
