package auth

import (
	"errors"
	"net/http"

	"buildledger/internal/pkg/response"
	"buildledger/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login handles POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", errs)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetMe handles GET /api/v1/auth/me
func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), CurrentActor(c))
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account no longer exists")
			return
		}
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
