package ez

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"person-registry/internal/domain"
	resp "person-registry/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// Binder says where an action's input comes from.
type Binder string

const (
	// BindJSON decodes the body. An empty or "null" body leaves the input nil.
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	// BindNone leaves the handler to read c.Param itself.
	BindNone Binder = "none"
)

// Action declares one endpoint: I is the input, O the data of the success envelope.
type Action[I any, O any] struct {
	Method string
	Path   string
	Binder Binder
	// Status of a successful response; 200 when zero.
	Status  int
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction mounts a on e. Binding failures become INVALID_PAYLOAD and
// handler errors are rendered with response.FromError.
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		in, err := bind[I](c, a.Binder)
		if err != nil {
			Fail(c, err)
			return
		}
		out, err := a.Handler(c, in)
		if err != nil {
			Fail(c, err)
			return
		}
		c.JSON(status, resp.OK(out))
	}
	e.g.Handle(strings.ToUpper(a.Method), a.Path, h)
}

// Fail writes err as an error envelope and stops the chain.
func Fail(c *gin.Context, err error) {
	code, body := resp.FromError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, body)
}

func bind[I any](c *gin.Context, b Binder) (*I, error) {
	in := new(I)
	switch b {
	case BindJSON:
		raw, err := c.GetRawData()
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, domain.InvalidPayload("request body too large")
			}
			return nil, domain.InvalidPayload(err)
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			return nil, nil
		}
		if err := binding.JSON.BindBody(raw, in); err != nil {
			return nil, domain.InvalidPayload(err)
		}
	case BindQuery:
		if err := c.ShouldBindQuery(in); err != nil {
			return nil, domain.InvalidPayload(err)
		}
	}
	return in, nil
}
