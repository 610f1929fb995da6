package middleware

import (
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type respWriter struct {
	gin.ResponseWriter
	status int
	size   int
}

func (w *respWriter) WriteHeader(code int) { w.status = code; w.ResponseWriter.WriteHeader(code) }
func (w *respWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = 200
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

var defaultMasked = []string{"password", "token", "authorization", "secret", "access_token"}

// AccessLog writes one summary line per request. Query values whose key is
// in maskKeys (case-insensitive, plus a few credential names) are masked.
func AccessLog(l *zap.Logger, maskKeys ...string) gin.HandlerFunc {
	masked := make(map[string]struct{}, len(defaultMasked)+len(maskKeys))
	for _, k := range append(defaultMasked, maskKeys...) {
		masked[strings.ToLower(k)] = struct{}{}
	}
	mask := func(q url.Values) map[string][]string {
		out := make(map[string][]string, len(q))
		for k, v := range q {
			if _, ok := masked[strings.ToLower(k)]; ok {
				out[k] = []string{"****"}
			} else {
				out[k] = v
			}
		}
		return out
	}

	return func(c *gin.Context) {
		start := time.Now()
		w := &respWriter{ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := w.status
		if status == 0 {
			status = c.Writer.Status()
		}
		l.Info("HTTP",
			zap.String("rid", c.GetString(KeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("ua", c.Request.UserAgent()),
			zap.Any("query", mask(c.Request.URL.Query())),
			zap.Int("size", w.size),
		)
	}
}
