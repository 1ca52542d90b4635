package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	slots := g.Group("/slots")

	// === Public Routes ===
	slots.GET("/:id", h.Get)

	// === Authenticated Routes ===
	authSlots := slots.Group("/:id")
	authSlots.Use(authMiddleware)
	{
		authSlots.POST("/book/:user_id", h.Book)
		authSlots.POST("/cancel", h.Cancel)
		authSlots.POST("/exit/:user_id", h.Exit)
	}

	g.GET("/drivers/:user_id/slot", authMiddleware, h.GetByDriver)
}
