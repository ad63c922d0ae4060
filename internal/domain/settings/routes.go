package settings

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/settings", h.Get)
	protected.PATCH("/settings", h.Update)
}
