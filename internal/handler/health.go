package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports liveness of the service and its two backing stores.
// Degraded dependencies answer 503 so the load balancer can rotate the pod out.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		checks := gin.H{
			"postgres": pingPostgres(ctx, db),
			"redis":    pingRedis(ctx, rdb),
		}

		healthy := true
		for _, v := range checks {
			if v != "ok" {
				healthy = false
			}
		}

		code := http.StatusOK
		estado := "ok"
		if !healthy {
			code = http.StatusServiceUnavailable
			estado = "degraded"
		}
		c.JSON(code, gin.H{
			"service": "alquilapp",
			"status":  estado,
			"checks":  checks,
		})
	}
}

func pingPostgres(ctx context.Context, db *gorm.DB) string {
	sqlDB, err := db.DB()
	if err != nil {
		return "unreachable"
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "unreachable"
	}
	return "ok"
}

func pingRedis(ctx context.Context, rdb *redis.Client) string {
	if err := rdb.Ping(ctx).Err(); err != nil {
		return "unreachable"
	}
	return "ok"
}
