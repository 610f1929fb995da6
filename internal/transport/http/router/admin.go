package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"person-registry/internal/core/server"
	mdw "person-registry/internal/transport/http/middleware"
)

// StatusFunc reports the state of one dependency for /health.
type StatusFunc func() string

// NewAdminEngine serves operator lookups under /admin/v1 plus /metrics.
// It binds to loopback by default and carries no rate limits. /health
// lists every entry of deps next to the liveness flag.
func NewAdminEngine(l *zap.Logger, deps map[string]StatusFunc) *gin.Engine {
	r := server.NewRouter(l, server.Options{AccessLog: true, SkipPaths: []string{"/health", "/metrics"}})
	r.Use(
		mdw.RequestID(),
		mdw.Recovery(l),
	)

	r.GET("/health", func(c *gin.Context) {
		body := gin.H{"ok": 1}
		for name, status := range deps {
			body[name] = status()
		}
		c.JSON(http.StatusOK, body)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	MountAllAdmin(r.Group("/admin/v1"))
	return r
}
