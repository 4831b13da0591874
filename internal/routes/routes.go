package routes

import (
	"beautymatch_backend/internal/handlers"
	"beautymatch_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	gatewayToken string,
) {
	// Пользовательские маршруты доступны только бот-шлюзу
	api := ginRouter.Group("/api/v1")
	api.Use(middleware.GatewayAuthMiddleware(gatewayToken))
	{
		appHandlers.Users.RegisterRoutes(api)
		appHandlers.Listings.RegisterRoutes(api)
		appHandlers.Responses.RegisterRoutes(api)
		appHandlers.Subscriptions.RegisterRoutes(api)
		appHandlers.Forms.RegisterRoutes(api)
	}

	// Админка: логин открыт, остальное под JWT
	admin := ginRouter.Group("/api/v1/admin")
	{
		appHandlers.Admin.RegisterPublicRoutes(admin)

		protected := admin.Group("")
		protected.Use(middleware.AdminAuthMiddleware())
		appHandlers.Admin.RegisterRoutes(protected)
	}

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
