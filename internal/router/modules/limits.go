package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-profile-service/internal/interface/middleware"
)

func limitByIPAndPath(rdb *redis.Client, max int, window time.Duration) gin.HandlerFunc {
	return middleware.RateLimit(rdb, max, window, middleware.KeyByIPAndPath(), nil)
}

// limitByUser must run after middleware.Auth.
func limitByUser(rdb *redis.Client, max int, window time.Duration) gin.HandlerFunc {
	return middleware.RateLimit(rdb, max, window, middleware.KeyByUserID(), nil)
}
