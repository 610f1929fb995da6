package domain

//go:generate mockgen -source=person.go -destination=mocks/mocks.go -package=mocks PersonRepository,Notifier

import (
	"context"
	"time"
)

// Person is a registry record keyed by its tax id (CPF).
type Person struct {
	ID        string     `json:"id"`
	TaxID     string     `json:"taxId"`
	FullName  string     `json:"fullName"`
	BirthDate Date       `json:"birthDate"`
	Phone     *string    `json:"phone"`
	Email     *string    `json:"email"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Active reports whether the record has not been soft deleted.
func (p *Person) Active() bool { return p.DeletedAt == nil }

// Clone returns a deep copy so merges never alias the stored record.
func (p *Person) Clone() *Person {
	out := *p
	out.Phone = cloneString(p.Phone)
	out.Email = cloneString(p.Email)
	out.UpdatedAt = cloneTime(p.UpdatedAt)
	out.DeletedAt = cloneTime(p.DeletedAt)
	return &out
}

// AsDeleted returns a copy marked as deleted at now. The receiver is untouched.
func (p *Person) AsDeleted(now time.Time) *Person {
	out := p.Clone()
	ts := clampAfter(now, p.CreatedAt)
	out.DeletedAt = &ts
	return out
}

// CreateRequest carries the fields of a new person.
type CreateRequest struct {
	TaxID     string  `json:"taxId"`
	FullName  string  `json:"fullName"`
	BirthDate *Date   `json:"birthDate"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

// NewPerson builds an unsaved record from the request. TaxID must already be normalized.
func (r *CreateRequest) NewPerson(taxID string, now time.Time) *Person {
	return &Person{
		TaxID:     taxID,
		FullName:  r.FullName,
		BirthDate: *r.BirthDate,
		Phone:     cloneString(r.Phone),
		Email:     cloneString(r.Email),
		CreatedAt: now,
	}
}

// PartialUpdateRequest is a sparse update: nil or blank fields keep the stored value.
type PartialUpdateRequest struct {
	FullName  *string `json:"fullName"`
	BirthDate *Date   `json:"birthDate"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

// UpdateRequest is a dense update: every field replaces the stored value as given.
type UpdateRequest struct {
	FullName  string  `json:"fullName"`
	BirthDate *Date   `json:"birthDate"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

// PersonRepository is the record store. Finders return (nil, nil) when nothing matches.
type PersonRepository interface {
	// FindByID and FindByTaxID include soft-deleted records.
	FindByID(ctx context.Context, id string) (*Person, error)
	FindByTaxID(ctx context.Context, taxID string) (*Person, error)

	FindActiveByID(ctx context.Context, id string) (*Person, error)
	FindActiveByTaxID(ctx context.Context, taxID string) (*Person, error)

	ListActive(ctx context.Context, page PageRequest) ([]Person, int64, error)
	ListActiveByTaxID(ctx context.Context, taxID string, page PageRequest) ([]Person, int64, error)
	ListActiveByName(ctx context.Context, name string, page PageRequest) ([]Person, int64, error)
	ListActiveByTaxIDAndName(ctx context.Context, taxID, name string, page PageRequest) ([]Person, int64, error)

	// Save inserts when ID is empty (assigning one) and updates otherwise.
	// An update only applies to a row that is still active; anything else
	// fails with ErrStaleRecord.
	Save(ctx context.Context, p *Person) (*Person, error)
}

// Notifier announces newly created persons. Delivery is best effort and
// the caller never learns the outcome.
type Notifier interface {
	NotifyCreated(ctx context.Context, id string)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// clampAfter keeps lifecycle timestamps from going before createdAt under clock skew.
func clampAfter(now, floor time.Time) time.Time {
	if now.Before(floor) {
		return floor
	}
	return now
}
