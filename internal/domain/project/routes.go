package project

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	projects := protected.Group("/projects")
	{
		projects.GET("", h.List)
		projects.GET("/:id", h.Get)
		projects.POST("", h.Create)
		projects.PATCH("/:id", h.Update)
		projects.DELETE("/:id", h.Delete)
	}
}
