package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"go.uber.org/zap"

	"person-registry/internal/domain"
)

const DefaultBasePath = "/api/v1/persons"

type Options struct {
	// BasePath prefixes the Location of created persons.
	BasePath string
	// Now overrides the clock; tests pin it.
	Now func() time.Time
}

// PersonService owns the person lifecycle. It is stateless: every call reads
// from and writes to the repository, so it is safe for concurrent use.
type PersonService struct {
	repo     domain.PersonRepository
	notifier domain.Notifier
	log      *zap.Logger
	basePath string
	now      func() time.Time
}

func NewPersonService(repo domain.PersonRepository, notifier domain.Notifier, log *zap.Logger, opts Options) *PersonService {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.BasePath == "" {
		opts.BasePath = DefaultBasePath
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &PersonService{
		repo:     repo,
		notifier: notifier,
		log:      log.Named("person"),
		basePath: opts.BasePath,
		now:      opts.Now,
	}
}

// Search returns one page of active persons matching the filter. An empty
// page is reported as NotFound, never as an empty success.
func (s *PersonService) Search(ctx context.Context, f domain.SearchFilter) (page *domain.Page, err error) {
	const method = "searchPersons"
	defer s.finish(method, &err)

	req := domain.NormalizePage(f)
	query := domain.SelectQuery(f)
	s.log.Info(method,
		zap.Stringp("taxId", f.TaxID),
		zap.Stringp("fullName", f.FullName),
		zap.Int("page", req.Page),
		zap.Int("size", req.Size),
		zap.String("sortedBy", req.SortedBy()),
		zap.Stringer("query", query),
	)
	if verr := req.Validate(); verr != nil {
		return nil, domain.InvalidPayload(verr)
	}

	items, total, err := domain.RunQuery(ctx, s.repo, f, req)
	if err != nil {
		return nil, err
	}
	s.log.Info(method, zap.Int64("totalElements", total), zap.Int("pageElements", len(items)))
	if len(items) == 0 {
		return nil, domain.NotFound(f.Terms()...)
	}
	return domain.NewPage(req, items, total), nil
}

// Create registers a new person and announces it. The announcement is fire
// and forget; its failure never fails or rolls back the creation.
func (s *PersonService) Create(ctx context.Context, req *domain.CreateRequest) (created *domain.Person, location string, err error) {
	const method = "createPerson"
	defer s.finish(method, &err)

	if req == nil {
		return nil, "", domain.NullPayload()
	}
	s.log.Info(method, zap.String("taxId", req.TaxID), zap.String("fullName", req.FullName))
	if verr := req.Validate(); verr != nil {
		return nil, "", verr
	}
	taxID, ok := domain.NormalizeTaxID(req.TaxID)
	if !ok {
		return nil, "", domain.InvalidTaxID(req.TaxID)
	}

	// Fast path only: the store's unique index is the real guard and is
	// translated below when two creates race past this check.
	existing, err := s.repo.FindActiveByTaxID(ctx, taxID)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", domain.DuplicateTaxID(taxID)
	}

	saved, err := s.repo.Save(ctx, req.NewPerson(taxID, s.now()))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateTaxID) {
			return nil, "", domain.DuplicateTaxID(taxID)
		}
		return nil, "", err
	}

	s.notifier.NotifyCreated(ctx, saved.ID)
	return saved, path.Join(s.basePath, saved.ID), nil
}

func (s *PersonService) RetrieveByID(ctx context.Context, id string) (p *domain.Person, err error) {
	const method = "retrievePerson"
	defer s.finish(method, &err)

	s.log.Info(method, zap.String("id", id))
	return s.loadActive(ctx, id)
}

func (s *PersonService) RetrieveByTaxID(ctx context.Context, taxID string) (p *domain.Person, err error) {
	const method = "retrievePersonByTaxId"
	defer s.finish(method, &err)

	s.log.Info(method, zap.String("taxId", taxID))
	normalized, ok := domain.NormalizeTaxID(taxID)
	if !ok {
		return nil, domain.InvalidTaxID(taxID)
	}
	p, err = s.repo.FindActiveByTaxID(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound(domain.T("taxId", normalized))
	}
	return p, nil
}

// PartialUpdate merges a sparse request into the active person.
func (s *PersonService) PartialUpdate(ctx context.Context, id string, req *domain.PartialUpdateRequest) (p *domain.Person, err error) {
	const method = "partiallyUpdatePerson"
	defer s.finish(method, &err)

	if req == nil {
		return nil, domain.NullPayload()
	}
	s.log.Info(method,
		zap.String("id", id),
		zap.Stringp("fullName", req.FullName),
		zap.Stringp("phone", req.Phone),
		zap.Stringp("email", req.Email),
	)
	current, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, domain.MergePartial(current, req, s.now()))
}

// Update replaces every mutable field of the active person.
func (s *PersonService) Update(ctx context.Context, id string, req *domain.UpdateRequest) (p *domain.Person, err error) {
	const method = "updatePerson"
	defer s.finish(method, &err)

	if req == nil {
		return nil, domain.NullPayload()
	}
	s.log.Info(method,
		zap.String("id", id),
		zap.String("fullName", req.FullName),
		zap.Stringp("phone", req.Phone),
		zap.Stringp("email", req.Email),
	)
	if verr := req.Validate(); verr != nil {
		return nil, verr
	}
	current, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, domain.MergeFull(current, req, s.now()))
}

// Delete soft deletes the active person and returns it as it was before deletion.
func (s *PersonService) Delete(ctx context.Context, id string) (p *domain.Person, err error) {
	const method = "deletePerson"
	defer s.finish(method, &err)

	s.log.Info(method, zap.String("id", id))
	current, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.update(ctx, current.AsDeleted(s.now())); err != nil {
		return nil, err
	}
	return current, nil
}

// InspectByID finds a person by id whether or not it was deleted.
func (s *PersonService) InspectByID(ctx context.Context, id string) (p *domain.Person, err error) {
	const method = "inspectPerson"
	defer s.finish(method, &err)

	s.log.Info(method, zap.String("id", id))
	p, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound(domain.T("id", id))
	}
	return p, nil
}

// InspectByTaxID finds the most recent person holding taxID, deleted or not.
func (s *PersonService) InspectByTaxID(ctx context.Context, taxID string) (p *domain.Person, err error) {
	const method = "inspectPersonByTaxId"
	defer s.finish(method, &err)

	s.log.Info(method, zap.String("taxId", taxID))
	normalized, ok := domain.NormalizeTaxID(taxID)
	if !ok {
		return nil, domain.InvalidTaxID(taxID)
	}
	p, err = s.repo.FindByTaxID(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound(domain.T("taxId", normalized))
	}
	return p, nil
}

func (s *PersonService) loadActive(ctx context.Context, id string) (*domain.Person, error) {
	p, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound(domain.T("id", id))
	}
	return p, nil
}

// update saves a modified copy of a loaded person. The copy may come from a
// cache and be older than the store; a store that finds the row deleted in
// the meantime refuses the write and the person is reported missing.
func (s *PersonService) update(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	saved, err := s.repo.Save(ctx, p)
	if errors.Is(err, domain.ErrStaleRecord) {
		return nil, domain.NotFound(domain.T("id", p.ID))
	}
	return saved, err
}

// finish is deferred by every operation. It turns panics and foreign errors
// into Unexpected so callers only ever see *domain.Error.
func (s *PersonService) finish(method string, err *error) {
	if r := recover(); r != nil {
		s.log.Error("operation panicked",
			zap.String("method", method),
			zap.Any("panic", r),
			zap.Stack("stack"),
		)
		*err = domain.Unexpected(fmt.Errorf("panic: %v", r))
		return
	}
	if *err == nil {
		return
	}
	var de *domain.Error
	if errors.As(*err, &de) {
		if de.Kind == domain.KindUnexpected {
			s.log.Error("operation failed", zap.String("method", method), zap.Error(de.Err))
		} else {
			s.log.Info("operation rejected", zap.String("method", method), zap.String("kind", string(de.Kind)), zap.String("msg", de.Msg))
		}
		*err = de
		return
	}
	s.log.Error("operation failed", zap.String("method", method), zap.Error(*err))
	*err = domain.Unexpected(*err)
}
