package repo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"person-registry/internal/domain"
	"person-registry/pkg/utils"
)

// MemoryPersonRepo keeps persons in process. It enforces the same active
// tax id uniqueness as the SQL index and is used by the "memory" driver and tests.
type MemoryPersonRepo struct {
	mu   sync.RWMutex
	rows map[string]*domain.Person
}

func NewMemoryPersonRepo() *MemoryPersonRepo {
	return &MemoryPersonRepo{rows: make(map[string]*domain.Person)}
}

var _ domain.PersonRepository = (*MemoryPersonRepo)(nil)

func (r *MemoryPersonRepo) FindByID(_ context.Context, id string) (*domain.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.rows[id]; ok {
		return p.Clone(), nil
	}
	return nil, nil
}

func (r *MemoryPersonRepo) FindByTaxID(_ context.Context, taxID string) (*domain.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var newest *domain.Person
	for _, p := range r.rows {
		if p.TaxID != taxID {
			continue
		}
		if newest == nil || p.CreatedAt.After(newest.CreatedAt) {
			newest = p
		}
	}
	if newest == nil {
		return nil, nil
	}
	return newest.Clone(), nil
}

func (r *MemoryPersonRepo) FindActiveByID(_ context.Context, id string) (*domain.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.rows[id]; ok && p.Active() {
		return p.Clone(), nil
	}
	return nil, nil
}

func (r *MemoryPersonRepo) FindActiveByTaxID(_ context.Context, taxID string) (*domain.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p := r.activeByTaxID(taxID); p != nil {
		return p.Clone(), nil
	}
	return nil, nil
}

func (r *MemoryPersonRepo) ListActive(_ context.Context, page domain.PageRequest) ([]domain.Person, int64, error) {
	return r.list(page, func(*domain.Person) bool { return true })
}

func (r *MemoryPersonRepo) ListActiveByTaxID(_ context.Context, taxID string, page domain.PageRequest) ([]domain.Person, int64, error) {
	return r.list(page, func(p *domain.Person) bool { return p.TaxID == taxID })
}

func (r *MemoryPersonRepo) ListActiveByName(_ context.Context, name string, page domain.PageRequest) ([]domain.Person, int64, error) {
	return r.list(page, nameContains(name))
}

func (r *MemoryPersonRepo) ListActiveByTaxIDAndName(_ context.Context, taxID, name string, page domain.PageRequest) ([]domain.Person, int64, error) {
	byName := nameContains(name)
	return r.list(page, func(p *domain.Person) bool { return p.TaxID == taxID && byName(p) })
}

func (r *MemoryPersonRepo) Save(_ context.Context, p *domain.Person) (*domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := p.Clone()
	if row.ID == "" {
		row.ID = utils.NewID()
	} else if current, ok := r.rows[row.ID]; !ok || !current.Active() {
		return nil, domain.ErrStaleRecord
	}
	if row.Active() {
		if holder := r.activeByTaxID(row.TaxID); holder != nil && holder.ID != row.ID {
			return nil, domain.ErrDuplicateTaxID
		}
	}
	r.rows[row.ID] = row
	return row.Clone(), nil
}

// Len counts stored rows, deleted included.
func (r *MemoryPersonRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}

func (r *MemoryPersonRepo) activeByTaxID(taxID string) *domain.Person {
	for _, p := range r.rows {
		if p.Active() && p.TaxID == taxID {
			return p
		}
	}
	return nil
}

func (r *MemoryPersonRepo) list(page domain.PageRequest, match func(*domain.Person) bool) ([]domain.Person, int64, error) {
	r.mu.RLock()
	matched := make([]domain.Person, 0)
	for _, p := range r.rows {
		if p.Active() && match(p) {
			matched = append(matched, *p.Clone())
		}
	}
	r.mu.RUnlock()

	less := lessBy(page.Sort)
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := &matched[i], &matched[j]
		if page.Descending() {
			a, b = b, a
		}
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	start := page.Offset()
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func nameContains(name string) func(*domain.Person) bool {
	needle := strings.ToLower(name)
	return func(p *domain.Person) bool {
		return strings.Contains(strings.ToLower(p.FullName), needle)
	}
}

func lessBy(f domain.SortField) func(a, b *domain.Person) bool {
	switch f {
	case domain.SortByID:
		return func(a, b *domain.Person) bool { return a.ID < b.ID }
	case domain.SortByTaxID:
		return func(a, b *domain.Person) bool { return a.TaxID < b.TaxID }
	case domain.SortByBirthDate:
		return func(a, b *domain.Person) bool { return a.BirthDate.Before(b.BirthDate.Time) }
	case domain.SortByPhone:
		return func(a, b *domain.Person) bool { return lessOptional(a.Phone, b.Phone) }
	case domain.SortByEmail:
		return func(a, b *domain.Person) bool { return lessOptional(a.Email, b.Email) }
	case domain.SortByCreatedAt:
		return func(a, b *domain.Person) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case domain.SortByUpdatedAt:
		return func(a, b *domain.Person) bool {
			switch {
			case a.UpdatedAt == nil:
				return b.UpdatedAt != nil
			case b.UpdatedAt == nil:
				return false
			}
			return a.UpdatedAt.Before(*b.UpdatedAt)
		}
	default:
		return func(a, b *domain.Person) bool { return a.FullName < b.FullName }
	}
}

// lessOptional orders nil before any value.
func lessOptional(a, b *string) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	}
	return *a < *b
}
