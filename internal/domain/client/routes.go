package client

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	clients := protected.Group("/clients")
	{
		clients.GET("", h.List)
		clients.GET("/:id", h.Get)
		clients.POST("", h.Create)
		clients.PATCH("/:id", h.Update)
		clients.DELETE("/:id", h.Delete)
	}
}
