package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"ledgerdash/internal/api"
	"ledgerdash/internal/auth"
	"ledgerdash/internal/logger"
	"ledgerdash/internal/metrics"
)

const msgInFlight = "A request is already in progress"

func inFlightKey(userID int, path string) string {
	return fmt.Sprintf("inflight:%d:%s", userID, path)
}

// InFlightGuard answers 409 while the same user still has a request to the
// same route outstanding. The lock lives in Redis so every replica sees it;
// it expires after ttl if a replica dies mid-request. When Redis is
// unreachable requests go through unguarded.
func InFlightGuard(rdb redis.Cmdable, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, ok := auth.CurrentIdentity(c)
		if rdb == nil || !ok {
			c.Next()
			return
		}

		key := inFlightKey(who.UserID, c.FullPath())
		acquired, err := rdb.SetNX(c.Request.Context(), key, "1", ttl).Result()
		if err != nil {
			logger.WithError(err).Warn("in-flight lock unavailable", "key", key)
			c.Next()
			return
		}
		if !acquired {
			metrics.RecordInFlightRejection(c.FullPath())
			c.Abort()
			api.Fail(c, api.NewError(http.StatusConflict, msgInFlight))
			return
		}

		defer func() {
			// The request context may already be cancelled here.
			if err := rdb.Del(context.Background(), key).Err(); err != nil {
				logger.WithError(err).Warn("failed to release in-flight lock", "key", key)
			}
		}()
		c.Next()
	}
}
