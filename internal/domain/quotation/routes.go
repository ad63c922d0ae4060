package quotation

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	quotations := protected.Group("/quotations")
	{
		quotations.GET("", h.List)
		quotations.GET("/next-number", h.NextNumber)
		quotations.GET("/:id", h.Get)
		quotations.POST("", h.Create)
		quotations.PATCH("/:id", h.Update)
		quotations.DELETE("/:id", h.Delete)
	}
}
