package quotation

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

// List handles GET /api/v1/quotations
func (h *Handler) List(c *gin.Context) {
	quotations, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := make([]QuotationDetails, 0, len(quotations))
		for _, q := range quotations {
			if string(q.Status) == status {
				filtered = append(filtered, q)
			}
		}
		quotations = filtered
	}
	response.Success(c, http.StatusOK, quotations)
}

// Get handles GET /api/v1/quotations/:id
func (h *Handler) Get(c *gin.Context) {
	q, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, q)
}

// NextNumber handles GET /api/v1/quotations/next-number
func (h *Handler) NextNumber(c *gin.Context) {
	n, err := h.service.NextNumber(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NextNumberResponse{Number: n})
}

// Create handles POST /api/v1/quotations
func (h *Handler) Create(c *gin.Context) {
	var req CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	q, err := h.service.Create(c.Request.Context(), auth.CurrentActor(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, q)
}

// Update handles PATCH /api/v1/quotations/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	q, err := h.service.Update(c.Request.Context(), auth.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, q)
}

// Delete handles DELETE /api/v1/quotations/:id
func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), auth.CurrentActor(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrDeletionRequestRequired) {
			response.ErrorWithDetails(c, http.StatusForbidden, "DELETION_REQUEST_REQUIRED",
				"Only admins can delete quotations directly; submit a deletion request instead",
				gin.H{"endpoint": "POST /api/v1/deletion-requests", "type": "quotation", "itemId": c.Param("id")})
			return
		}
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
