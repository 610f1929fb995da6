package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"person-registry/internal/domain"
	httpez "person-registry/internal/transport/http/ez"
)

// PersonService is what the public API needs from the domain service.
type PersonService interface {
	Search(ctx context.Context, f domain.SearchFilter) (*domain.Page, error)
	Create(ctx context.Context, req *domain.CreateRequest) (*domain.Person, string, error)
	RetrieveByID(ctx context.Context, id string) (*domain.Person, error)
	RetrieveByTaxID(ctx context.Context, taxID string) (*domain.Person, error)
	PartialUpdate(ctx context.Context, id string, req *domain.PartialUpdateRequest) (*domain.Person, error)
	Update(ctx context.Context, id string, req *domain.UpdateRequest) (*domain.Person, error)
	Delete(ctx context.Context, id string) (*domain.Person, error)
}

type PersonHandler struct {
	svc PersonService
}

func NewPersonHandler(svc PersonService) *PersonHandler {
	return &PersonHandler{svc: svc}
}

func (h *PersonHandler) Priority() int { return 10 }

// searchQuery is the raw query string; sort and direction are checked
// against the domain enums before the service sees them.
type searchQuery struct {
	TaxID     *string `form:"taxId"`
	FullName  *string `form:"fullName"`
	Page      *int    `form:"page"`
	Size      *int    `form:"size"`
	Sort      *string `form:"sort"`
	Direction *string `form:"direction"`
}

func (q *searchQuery) filter() (domain.SearchFilter, error) {
	f := domain.SearchFilter{TaxID: q.TaxID, FullName: q.FullName, Page: q.Page, Size: q.Size}
	if q.Sort != nil && strings.TrimSpace(*q.Sort) != "" {
		s, err := domain.ParseSortField(*q.Sort)
		if err != nil {
			return f, domain.InvalidPayload(err)
		}
		f.Sort = &s
	}
	if q.Direction != nil && strings.TrimSpace(*q.Direction) != "" {
		d, err := domain.ParseDirection(*q.Direction)
		if err != nil {
			return f, domain.InvalidPayload(err)
		}
		f.Direction = &d
	}
	return f, nil
}

// MountAPI registers the person routes under g (normally /api/v1).
func (h *PersonHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g.Group("/persons"))

	httpez.RegisterAction(ez, httpez.Action[searchQuery, *domain.Page]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *searchQuery) (*domain.Page, error) {
			f, err := in.filter()
			if err != nil {
				return nil, err
			}
			return h.svc.Search(c.Request.Context(), f)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[domain.CreateRequest, *domain.Person]{
		Method: http.MethodPost,
		Path:   "",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *domain.CreateRequest) (*domain.Person, error) {
			p, location, err := h.svc.Create(c.Request.Context(), in)
			if err != nil {
				return nil, err
			}
			c.Header("Location", location)
			return p, nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Person]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Person, error) {
			return h.svc.RetrieveByID(c.Request.Context(), c.Param("id"))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Person]{
		Method: http.MethodGet,
		Path:   "/tax-id/:taxId",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Person, error) {
			return h.svc.RetrieveByTaxID(c.Request.Context(), c.Param("taxId"))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[domain.PartialUpdateRequest, *domain.Person]{
		Method: http.MethodPatch,
		Path:   "/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *domain.PartialUpdateRequest) (*domain.Person, error) {
			return h.svc.PartialUpdate(c.Request.Context(), c.Param("id"), in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[domain.UpdateRequest, *domain.Person]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *domain.UpdateRequest) (*domain.Person, error) {
			return h.svc.Update(c.Request.Context(), c.Param("id"), in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Person]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Person, error) {
			return h.svc.Delete(c.Request.Context(), c.Param("id"))
		},
	})
}
