package routes

import (
	"net/http"

	"careerbridge_backend/internal/handlers"
	"careerbridge_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers, // <-- Принимаем ГОТОВЫЕ хэндлеры
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(api)
		appHandlers.User.RegisterRoutes(api)
		appHandlers.Consultation.RegisterRoutes(api)
		appHandlers.Payment.RegisterRoutes(api)
		appHandlers.Registration.RegisterRoutes(api)
		appHandlers.Onboarding.RegisterRoutes(api)
		appHandlers.Application.RegisterRoutes(api)
		appHandlers.Notification.RegisterRoutes(api)
	}

	logger.Info("HTTP routes registered")
}
