package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"buildledger/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	repo := NewRepository(store.New(backend))

	r := gin.New()
	NewHandler(repo).RegisterRoutes(r.Group("/api/v1"))
	return r, repo
}

func TestGetMaterials_MissingCollectionFailsLoudly(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/materials", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMaterials_FilterByRoomType(t *testing.T) {
	r, repo := newTestRouter(t)
	require.NoError(t, repo.Seed(context.Background(),
		[]Material{
			{ID: "m1", Name: "Tile", RoomTypes: []string{"bathroom", "kitchen"}},
			{ID: "m2", Name: "Drywall"},
			{ID: "m3", Name: "Carpet", RoomTypes: []string{"bedroom"}},
		},
		[]Labor{{ID: "l1", Name: "Tiling", HourlyRate: 55}},
		nil, nil, nil,
	))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/materials?roomType=bathroom", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data MaterialsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	ids := []string{}
	for _, m := range body.Data.Materials {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"m1", "m2"}, ids)
	assert.Len(t, body.Data.Labor, 1)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/materials/m3", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/labor/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/trades", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}
