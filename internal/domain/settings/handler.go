package settings

import (
	"errors"
	"net/http"

	"buildledger/internal/domain/auth"
	"buildledger/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /api/v1/settings
func (h *Handler) Get(c *gin.Context) {
	cs, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cs)
}

// Update handles PATCH /api/v1/settings
func (h *Handler) Update(c *gin.Context) {
	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	cs, err := h.service.Update(c.Request.Context(), auth.CurrentActor(c), patch)
	if err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Only admins may change company settings")
			return
		}
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cs)
}
