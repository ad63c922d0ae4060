package deletion

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	requests := protected.Group("/deletion-requests")
	{
		requests.GET("", h.List)
		requests.GET("/:id", h.Get)
		requests.POST("", h.Create)
		requests.PUT("/:id", h.Review)
		requests.DELETE("/:id", h.Delete)
	}
}
