package deletion

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

// List handles GET /api/v1/deletion-requests
func (h *Handler) List(c *gin.Context) {
	requests, err := h.service.List(c.Request.Context(), auth.CurrentActor(c), Status(c.Query("status")))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, requests)
}

// Get handles GET /api/v1/deletion-requests/:id
func (h *Handler) Get(c *gin.Context) {
	req, err := h.service.GetByID(c.Request.Context(), auth.CurrentActor(c), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, req)
}

// Create handles POST /api/v1/deletion-requests
func (h *Handler) Create(c *gin.Context) {
	var in CreateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	req, err := h.service.RequestDeletion(c.Request.Context(), auth.CurrentActor(c), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, req)
}

// Review handles PUT /api/v1/deletion-requests/:id
func (h *Handler) Review(c *gin.Context) {
	var in ReviewRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	req, err := h.service.Review(c.Request.Context(), auth.CurrentActor(c), c.Param("id"), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, req)
}

// Delete handles DELETE /api/v1/deletion-requests/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), auth.CurrentActor(c), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAlreadyReviewed):
		response.CustomError(c, http.StatusConflict, "ALREADY_REVIEWED", err)
	case errors.Is(err, ErrDuplicatePending):
		response.CustomError(c, http.StatusConflict, "DUPLICATE_REQUEST", err)
	case errors.Is(err, auth.ErrForbidden):
		response.CustomError(c, http.StatusForbidden, "FORBIDDEN", err)
	default:
		response.HandleError(c, err)
	}
}
