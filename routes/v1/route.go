package route

import (
	"TravelMate/controllers"
	"TravelMate/handlers"
	"TravelMate/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes initializes all routes
func RegisterRoutes(router *gin.Engine, vacationController *controllers.VacationController, verifier middleware.TokenVerifier, planLimiter *middleware.RateLimiter) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1Routes := router.Group("/v1")
	{
		handlers.RegisterVacationRoutes(v1Routes, vacationController, middleware.AuthMiddleware(verifier), planLimiter.Limit())
	}
}
