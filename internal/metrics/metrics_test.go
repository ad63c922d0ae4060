package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"buildledger/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metrics
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func TestObserveStoreOp_Results(t *testing.T) {
	m := New()

	m.ObserveStoreOp("clients", "load", nil)
	m.ObserveStoreOp("clients", "load", nil)
	m.ObserveStoreOp("deletion-requests", "load", &store.StorageError{Op: "load", Collection: "deletion-requests", Err: store.ErrNotFound})
	m.ObserveStoreOp("clients", "save", errors.New("disk full"))

	assert.Equal(t, 2.0, counterValue(t, m, "buildledger_store_operations_total",
		map[string]string{"collection": "clients", "op": "load", "result": "ok"}))
	assert.Equal(t, 1.0, counterValue(t, m, "buildledger_store_operations_total",
		map[string]string{"collection": "deletion-requests", "result": "not_found"}))
	assert.Equal(t, 1.0, counterValue(t, m, "buildledger_store_operations_total",
		map[string]string{"collection": "clients", "op": "save", "result": "error"}))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveStoreOp("clients", "load", nil)
		m.NumberIssued("quotation")
		m.DeletionReviewed("approved")
		m.SetDeletionPending(3)
	})
	assert.Nil(t, m.Registry())
}

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/clients/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"a", "b", "c"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clients/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 3.0, counterValue(t, m, "buildledger_http_requests_total",
		map[string]string{"route": "/clients/:id", "status": "200"}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "buildledger_http_requests_total")
}
