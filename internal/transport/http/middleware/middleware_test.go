package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"

	resp "person-registry/internal/transport/http/response"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func serve(r http.Handler, req *http.Request) (*httptest.ResponseRecorder, resp.Resp) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body resp.Resp
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(rate.Every(time.Hour), 1))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, resp.CodeTooManyRequests, body.Code)
}

func TestRateLimitPerIP(t *testing.T) {
	r := newEngine(RateLimitPerIP(rate.Every(time.Hour), 1))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	from := func(ip string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = ip + ":1234"
		return req
	}
	w, _ := serve(r, from("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = serve(r, from("10.0.0.2"))
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = serve(r, from("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := newEngine(RequestID(), Recovery(zap.New(core)))
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "UNEXPECTED_ERROR", body.Type)
	assert.Equal(t, "Unexpected Error", body.Msg)
	assert.Equal(t, 1, logs.FilterMessage("handler panicked").Len())
}

func TestTimeout(t *testing.T) {
	r := newEngine(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) { <-c.Request.Context().Done() })

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, resp.CodeTimeout, body.Code)
}

func TestConcurrencyLimitRejectsWhenContextEnds(t *testing.T) {
	r := newEngine(Timeout(20*time.Millisecond), ConcurrencyLimit(1))
	release := make(chan struct{})
	entered := make(chan struct{})
	r.GET("/hold", func(c *gin.Context) {
		close(entered)
		<-release
		c.String(http.StatusOK, "done")
	})
	r.GET("/other", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	done := make(chan int)
	go func() {
		w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/hold", nil))
		done <- w.Code
	}()
	<-entered

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/other", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, resp.CodeUnavailable, body.Code)

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestMaxBodyBytes(t *testing.T) {
	r := newEngine(MaxBodyBytes(4))
	r.POST("/x", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		var tooLarge *http.MaxBytesError
		if assert.ErrorAs(t, err, &tooLarge) {
			c.Status(http.StatusRequestEntityTooLarge)
		}
	})

	w, _ := serve(r, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	generated := w.Header().Get(KeyRequestID)
	require.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(KeyRequestID, "abc-123")
	w, _ = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(KeyRequestID))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(KeyRequestID, strings.Repeat("x", 200))
	w, _ = serve(r, req)
	assert.NotEqual(t, strings.Repeat("x", 200), w.Header().Get(KeyRequestID))
	assert.NotEmpty(t, w.Header().Get(KeyRequestID))
}

func TestAccessLogMasksCredentials(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newEngine(RequestID(), AccessLog(zap.New(core), "taxId"))
	r.GET("/persons", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	serve(r, httptest.NewRequest(http.MethodGet, "/persons?taxId=52998224725&token=t&fullName=ana", nil))

	entries := logs.FilterMessage("HTTP").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/persons", fields["path"])
	assert.EqualValues(t, http.StatusNoContent, fields["status"])
	query := fields["query"].(map[string][]string)
	assert.Equal(t, []string{"****"}, query["taxId"])
	assert.Equal(t, []string{"****"}, query["token"])
	assert.Equal(t, []string{"ana"}, query["fullName"])
}
