package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all driver-related routes (including Auth).
func RegisterRoutes(g *gin.RouterGroup, h *DriverHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	// Public Routes
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", authMiddleware, h.Logout)
	}

	// Authenticated Routes
	g.GET("/me", authMiddleware, h.Me)
	g.PATCH("/me", authMiddleware, h.UpdateMe)

	// Admin Routes
	driversGroup := g.Group("/drivers")
	driversGroup.Use(authMiddleware, adminMiddleware)
	{
		driversGroup.GET("", h.List)
		driversGroup.GET("/:user_id/id", h.LookupID)
	}
}
