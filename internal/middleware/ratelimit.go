package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/picineiros/pool-manager/internal/cache"
)

// RateLimit conta requisições por (escopo, IP) numa janela fixa no redis.
// Sem cliente configurado o limite fica desligado; se o redis falhar a
// requisição passa — throttle é mitigação, não controle de acesso.
func RateLimit(client cache.Client, scope string, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		key := "throttle:" + scope + ":" + c.ClientIP()

		count, err := client.Incr(c.Request.Context(), key, window)
		if err != nil {
			log.Warn("rate limit backend unavailable", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": "Request was throttled.",
			})
			return
		}

		c.Next()
	}
}
