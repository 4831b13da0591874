package middleware

import (
	"net/http"
	"strconv"

	"beautymatch_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// GatewayAuthMiddleware - доверенный бот-шлюз представляется общим
// токеном и передает ID пользователя мессенджера в заголовке.
// Пользовательские маршруты доступны только через шлюз.
func GatewayAuthMiddleware(gatewayToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Gateway-Token") != gatewayToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid gateway token"})
			return
		}

		userIDStr := c.GetHeader("X-User-ID")
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid X-User-ID header"})
			return
		}

		c.Set("userID", userID)
		ctx := logger.WithUserID(c.Request.Context(), userIDStr)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
