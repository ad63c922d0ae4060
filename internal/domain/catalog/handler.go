package catalog

import (
	"net/http"
	"strings"

	"buildledger/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// MaterialsResponse mirrors GET /materials: both catalogs in one payload.
type MaterialsResponse struct {
	Materials []Material `json:"materials"`
	Labor     []Labor    `json:"labor"`
}

// GetMaterials handles GET /api/v1/materials
// Optional ?roomType= narrows materials to those applicable to a room type.
func (h *Handler) GetMaterials(c *gin.Context) {
	ctx := c.Request.Context()

	materials, err := h.repo.ListMaterials(ctx)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	labor, err := h.repo.ListLabor(ctx)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if roomType := strings.TrimSpace(c.Query("roomType")); roomType != "" {
		materials = filterByRoomType(materials, roomType)
	}

	response.Success(c, http.StatusOK, MaterialsResponse{Materials: materials, Labor: labor})
}

// GetMaterial handles GET /api/v1/materials/:id
func (h *Handler) GetMaterial(c *gin.Context) {
	m, err := h.repo.GetMaterial(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// GetLabor handles GET /api/v1/labor/:id
func (h *Handler) GetLabor(c *gin.Context) {
	l, err := h.repo.GetLabor(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

// GetRoomTemplates handles GET /api/v1/rooms
func (h *Handler) GetRoomTemplates(c *gin.Context) {
	rooms, err := h.repo.ListRoomTemplates(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

// GetTrades handles GET /api/v1/trades
func (h *Handler) GetTrades(c *gin.Context) {
	trades, err := h.repo.ListTrades(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, trades)
}

// GetAdditionalCosts handles GET /api/v1/additional-costs
func (h *Handler) GetAdditionalCosts(c *gin.Context) {
	costs, err := h.repo.ListAdditionalCosts(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, costs)
}

// Materials without roomTypes apply everywhere.
func filterByRoomType(materials []Material, roomType string) []Material {
	out := make([]Material, 0, len(materials))
	for _, m := range materials {
		if len(m.RoomTypes) == 0 {
			out = append(out, m)
			continue
		}
		for _, rt := range m.RoomTypes {
			if rt == roomType {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
