package project

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

// List handles GET /api/v1/projects
func (h *Handler) List(c *gin.Context) {
	projects, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := make([]ProjectDetails, 0, len(projects))
		for _, p := range projects {
			if string(p.Status) == status {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}
	response.Success(c, http.StatusOK, projects)
}

// Get handles GET /api/v1/projects/:id
func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Create handles POST /api/v1/projects
func (h *Handler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// Update handles PATCH /api/v1/projects/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Delete handles DELETE /api/v1/projects/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
