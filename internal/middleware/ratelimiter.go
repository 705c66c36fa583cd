package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/recipebox/backend-go/internal/config"
)

// RateLimiter bounds the number of write operations a user may perform
// per day, backed by Redis.
type RateLimiter interface {
	// CheckDailyLimit reports whether the user is under today's write
	// limit. Returns: allowed bool, used int64, limit int64, error.
	CheckDailyLimit(ctx context.Context, userID uint) (bool, int64, int64, error)

	// IncrementDailyCount increments the daily write count for a user.
	IncrementDailyCount(ctx context.Context, userID uint) error

	// Close closes the underlying connection.
	Close() error
}

type redisRateLimiter struct {
	client *redis.Client
	limit  int64
	logger *slog.Logger
}

// NewRateLimiter creates a new Redis-based rate limiter
func NewRateLimiter(client *redis.Client, cfg *config.Config, logger *slog.Logger) RateLimiter {
	return &redisRateLimiter{
		client: client,
		limit:  cfg.DailyWriteLimit,
		logger: logger,
	}
}

// dailyKey generates the Redis key for the daily write count
// Format: rate:daily:{userID}:{YYYY-MM-DD}
func dailyKey(userID uint) string {
	today := time.Now().UTC().Format("2006-01-02")
	return fmt.Sprintf("rate:daily:%d:%s", userID, today)
}

func (r *redisRateLimiter) CheckDailyLimit(ctx context.Context, userID uint) (bool, int64, int64, error) {
	// A limit of 0 or less means unlimited.
	if r.limit <= 0 {
		return true, 0, 0, nil
	}

	count, err := r.client.Get(ctx, dailyKey(userID)).Int64()
	if err == redis.Nil {
		return true, 0, r.limit, nil
	}
	if err != nil {
		// Fail open. The failure is logged here, so callers get a clean
		// allow instead of an error they would have to ignore.
		r.logger.Error("❌ [RateLimiter] Failed to get daily count", "error", err, "user_id", userID)
		return true, 0, r.limit, nil
	}

	return count < r.limit, count, r.limit, nil
}

func (r *redisRateLimiter) IncrementDailyCount(ctx context.Context, userID uint) error {
	if r.limit <= 0 {
		return nil
	}

	key := dailyKey(userID)
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 48*time.Hour)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisRateLimiter) Close() error {
	return r.client.Close()
}

// noopRateLimiter allows everything. Used when Redis is unreachable.
type noopRateLimiter struct {
	logger *slog.Logger
}

// NewNoOpRateLimiter creates a rate limiter that never blocks
func NewNoOpRateLimiter(logger *slog.Logger) RateLimiter {
	logger.Warn("⚠️ [RateLimiter] Using no-op rate limiter, writes are unlimited")
	return &noopRateLimiter{logger: logger}
}

func (n *noopRateLimiter) CheckDailyLimit(ctx context.Context, userID uint) (bool, int64, int64, error) {
	return true, 0, 0, nil
}

func (n *noopRateLimiter) IncrementDailyCount(ctx context.Context, userID uint) error {
	return nil
}

func (n *noopRateLimiter) Close() error {
	return nil
}

// WriteQuota enforces the daily write limit on mutating requests. Reads
// pass through untouched.
func WriteQuota(limiter RateLimiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			c.Next()
			return
		}

		allowed, used, limit, err := limiter.CheckDailyLimit(c.Request.Context(), user.ID)
		if err != nil {
			// Fail open on a broken limiter backend.
			logger.Error("❌ [RateLimiter] Quota check failed", "user_id", user.ID, "error", err)
		} else if !allowed {
			logger.Warn("⚠️ [RateLimiter] Daily write limit reached", "user_id", user.ID, "used", used, "limit", limit)
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Daily write limit reached"})
			c.Abort()
			return
		}

		c.Next()

		if c.Writer.Status() < http.StatusBadRequest {
			if err := limiter.IncrementDailyCount(c.Request.Context(), user.ID); err != nil {
				logger.Error("❌ [RateLimiter] Failed to increment daily count", "user_id", user.ID, "error", err)
			}
		}
	}
}
