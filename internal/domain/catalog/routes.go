package catalog

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/materials", h.GetMaterials)
	protected.GET("/materials/:id", h.GetMaterial)
	protected.GET("/labor/:id", h.GetLabor)
	protected.GET("/rooms", h.GetRoomTemplates)
	protected.GET("/trades", h.GetTrades)
	protected.GET("/additional-costs", h.GetAdditionalCosts)
}
