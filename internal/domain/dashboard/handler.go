package dashboard

import (
	"net/http"

	"buildledger/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Stats handles GET /api/v1/dashboard
func (h *Handler) Stats(c *gin.Context) {
	st, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/dashboard", h.Stats)
}
