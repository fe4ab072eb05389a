package middlewares

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/Jenaru0/SIGIM/config"
	"github.com/Jenaru0/SIGIM/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const cooldownKeyPrefix = "sigim:cooldown:"

// ReportCooldown rejects submissions from clients still inside the fixed
// 3-minute window. The timestamp is stamped only after a successful
// submission (RecordSubmission), so failed attempts do not burn the window.
func ReportCooldown() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, err := config.RedisClient.Get(config.Ctx, cooldownKeyPrefix+c.ClientIP()).Result()
		if err == redis.Nil {
			c.Next()
			return
		}
		if err != nil {
			// The gate is advisory; losing Redis must not block reporting.
			logrus.WithError(err).Warn("cooldown check failed, letting request through")
			c.Next()
			return
		}

		lastMillis, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			c.Next()
			return
		}

		remaining := utils.CooldownRemaining(time.UnixMilli(lastMillis), time.Now())
		if remaining > 0 {
			minutes := int(math.Ceil(remaining.Minutes()))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Espera %d minuto(s) antes de enviar otro reporte.", minutes),
				"retry_after": int(remaining.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RecordSubmission stamps the client's last successful submission. The key
// expires with the window, so stale clients cost nothing.
func RecordSubmission(clientIP string) {
	key := cooldownKeyPrefix + clientIP
	err := config.RedisClient.Set(config.Ctx, key, time.Now().UnixMilli(), utils.ReportCooldown).Err()
	if err != nil {
		logrus.WithError(err).Warn("failed to record submission cooldown")
	}
}
