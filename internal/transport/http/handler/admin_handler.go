package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"person-registry/internal/domain"
	httpez "person-registry/internal/transport/http/ez"
)

// Inspector looks persons up including soft-deleted ones.
type Inspector interface {
	InspectByID(ctx context.Context, id string) (*domain.Person, error)
	InspectByTaxID(ctx context.Context, taxID string) (*domain.Person, error)
}

type AdminHandler struct {
	svc Inspector
}

func NewAdminHandler(svc Inspector) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// MountAdmin registers the operator lookups under g (normally /admin/v1).
func (h *AdminHandler) MountAdmin(g *gin.RouterGroup) {
	ez := httpez.New(g.Group("/persons"))

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Person]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Person, error) {
			return h.svc.InspectByID(c.Request.Context(), c.Param("id"))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Person]{
		Method: http.MethodGet,
		Path:   "/tax-id/:taxId",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Person, error) {
			return h.svc.InspectByTaxID(c.Request.Context(), c.Param("taxId"))
		},
	})
}
