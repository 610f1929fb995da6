package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"person-registry/internal/core/config"
	"person-registry/internal/core/server"
	mdw "person-registry/internal/transport/http/middleware"
)

// NewAPIEngine builds the public engine and mounts every registered API
// module under /api/v1.
func NewAPIEngine(l *zap.Logger, lim config.Limits) *gin.Engine {
	r := server.NewRouter(l, server.Options{})

	limiter := mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst)
	if lim.PerIP {
		limiter = mdw.RateLimitPerIP(rate.Limit(lim.RPS), lim.Burst)
	}
	r.Use(
		mdw.RequestID(),
		mdw.AccessLog(l),
		mdw.Metrics(),
		mdw.Recovery(l),
		limiter,
		mdw.ConcurrencyLimit(lim.Concurrency),
		mdw.MaxBodyBytes(lim.MaxBodyBytes),
		mdw.Timeout(time.Duration(lim.TimeoutSec)*time.Second),
	)

	r.GET("/health", health)

	MountAllAPI(r.Group("/api/v1"))
	return r
}

func health(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) }
