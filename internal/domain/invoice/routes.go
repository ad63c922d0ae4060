package invoice

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.List)
		invoices.GET("/next-number", h.NextNumber)
		invoices.GET("/:id", h.Get)
		invoices.POST("", h.Create)
		invoices.PATCH("/:id", h.Update)
		invoices.POST("/:id/payments", h.RecordPayment)
		invoices.POST("/:id/adjustments/:adjustmentId/approve", h.ApproveAdjustment)
		invoices.DELETE("/:id", h.Delete)
	}
}
