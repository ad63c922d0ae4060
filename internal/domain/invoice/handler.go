package invoice

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

// List handles GET /api/v1/invoices
func (h *Handler) List(c *gin.Context) {
	invoices, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if status := c.Query("paymentStatus"); status != "" {
		filtered := make([]InvoiceDetails, 0, len(invoices))
		for _, inv := range invoices {
			if string(inv.PaymentStatus) == status {
				filtered = append(filtered, inv)
			}
		}
		invoices = filtered
	}
	response.Success(c, http.StatusOK, invoices)
}

// Get handles GET /api/v1/invoices/:id
func (h *Handler) Get(c *gin.Context) {
	inv, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, inv)
}

// NextNumber handles GET /api/v1/invoices/next-number
func (h *Handler) NextNumber(c *gin.Context) {
	n, err := h.service.NextNumber(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NextNumberResponse{Number: n})
}

// Create handles POST /api/v1/invoices
func (h *Handler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	inv, err := h.service.Create(c.Request.Context(), auth.CurrentActor(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, inv)
}

// Update handles PATCH /api/v1/invoices/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	inv, err := h.service.Update(c.Request.Context(), auth.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, inv)
}

// RecordPayment handles POST /api/v1/invoices/:id/payments
func (h *Handler) RecordPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	inv, err := h.service.RecordPayment(c.Request.Context(), auth.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, ErrOverpayment) {
			response.CustomError(c, http.StatusUnprocessableEntity, "OVERPAYMENT", err)
			return
		}
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, inv)
}

// ApproveAdjustment handles POST /api/v1/invoices/:id/adjustments/:adjustmentId/approve
func (h *Handler) ApproveAdjustment(c *gin.Context) {
	var req ApproveAdjustmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
			return
		}
	}

	inv, err := h.service.ApproveAdjustment(c.Request.Context(), auth.CurrentActor(c), c.Param("id"), c.Param("adjustmentId"), req)
	if err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
			return
		}
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, inv)
}

// Delete handles DELETE /api/v1/invoices/:id
func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), auth.CurrentActor(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrDeletionRequestRequired) {
			response.ErrorWithDetails(c, http.StatusForbidden, "DELETION_REQUEST_REQUIRED",
				"Only admins can delete invoices directly; submit a deletion request instead",
				gin.H{"endpoint": "POST /api/v1/deletion-requests", "type": "invoice", "itemId": c.Param("id")})
			return
		}
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
