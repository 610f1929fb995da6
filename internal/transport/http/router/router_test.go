package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"person-registry/internal/core/config"
)

type stubModule struct {
	name     string
	priority int
	order    *[]string
}

func (m stubModule) Priority() int { return m.priority }

func (m stubModule) MountAPI(g *gin.RouterGroup) {
	*m.order = append(*m.order, m.name)
	g.GET("/"+m.name, func(c *gin.Context) { c.String(http.StatusOK, m.name) })
}

type adminOnly struct{}

func (adminOnly) MountAdmin(g *gin.RouterGroup) {
	g.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestMountOrderAndEngines(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reset()
	t.Cleanup(reset)

	var order []string
	Register(stubModule{name: "late", priority: 50, order: &order})
	Register(stubModule{name: "early", priority: 1, order: &order})
	Register(adminOnly{})

	api := NewAPIEngine(zap.NewNop(), config.Limits{RPS: 100, Burst: 100, Concurrency: 4, MaxBodyBytes: 1024, TimeoutSec: 5})
	require.Equal(t, []string{"early", "late"}, order)

	w := get(api, "/api/v1/early")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, http.StatusOK, get(api, "/health").Code)
	assert.Equal(t, http.StatusNotFound, get(api, "/api/v1/ping").Code)

	admin := NewAdminEngine(zap.NewNop(), map[string]StatusFunc{"notify": func() string { return "half-open" }})
	assert.Equal(t, "pong", get(admin, "/admin/v1/ping").Body.String())
	assert.Equal(t, http.StatusNotFound, get(admin, "/admin/v1/early").Code)

	health := get(admin, "/health")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.JSONEq(t, `{"ok":1,"notify":"half-open"}`, health.Body.String())

	metrics := get(admin, "/metrics")
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "http_requests_total")
}

func TestRegisterRejectsUnmountable(t *testing.T) {
	reset()
	t.Cleanup(reset)
	assert.Panics(t, func() { Register(struct{}{}) })
}
