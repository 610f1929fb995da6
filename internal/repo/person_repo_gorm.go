package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"person-registry/internal/domain"
	"person-registry/internal/feature/person"
	"person-registry/pkg/utils"
)

type PersonRepo struct{ db *gorm.DB }

func NewPersonRepo(db *gorm.DB) *PersonRepo { return &PersonRepo{db: db} }

var _ domain.PersonRepository = (*PersonRepo)(nil)

func (r *PersonRepo) FindByID(ctx context.Context, id string) (*domain.Person, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByTaxID returns the newest row holding taxID, deleted or not.
func (r *PersonRepo) FindByTaxID(ctx context.Context, taxID string) (*domain.Person, error) {
	return r.first(r.db.WithContext(ctx).Where("tax_id = ?", taxID).Order("created_at DESC"))
}

func (r *PersonRepo) FindActiveByID(ctx context.Context, id string) (*domain.Person, error) {
	return r.first(r.active(ctx).Where("id = ?", id))
}

func (r *PersonRepo) FindActiveByTaxID(ctx context.Context, taxID string) (*domain.Person, error) {
	return r.first(r.active(ctx).Where("tax_id = ?", taxID))
}

func (r *PersonRepo) ListActive(ctx context.Context, page domain.PageRequest) ([]domain.Person, int64, error) {
	return r.list(page, r.active(ctx))
}

func (r *PersonRepo) ListActiveByTaxID(ctx context.Context, taxID string, page domain.PageRequest) ([]domain.Person, int64, error) {
	return r.list(page, r.active(ctx).Where("tax_id = ?", taxID))
}

func (r *PersonRepo) ListActiveByName(ctx context.Context, name string, page domain.PageRequest) ([]domain.Person, int64, error) {
	return r.list(page, r.active(ctx).Where("LOWER(full_name) LIKE ?", containsPattern(name)))
}

func (r *PersonRepo) ListActiveByTaxIDAndName(ctx context.Context, taxID, name string, page domain.PageRequest) ([]domain.Person, int64, error) {
	q := r.active(ctx).
		Where("tax_id = ?", taxID).
		Where("LOWER(full_name) LIKE ?", containsPattern(name))
	return r.list(page, q)
}

// Save inserts when p.ID is empty and otherwise rewrites the row only while
// it is still active. A violation of the active tax id index is reported as
// domain.ErrDuplicateTaxID, an update of a missing or deleted row as
// domain.ErrStaleRecord.
func (r *PersonRepo) Save(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	m := person.FromDomain(p)

	var err error
	if m.ID == "" {
		m.ID = utils.NewID()
		err = r.db.WithContext(ctx).Create(m).Error
	} else {
		err = r.update(ctx, m)
	}
	if err != nil {
		if errors.Is(err, domain.ErrStaleRecord) {
			return nil, fmt.Errorf("save person %s: %w", m.ID, err)
		}
		if isDupKey(err) {
			return nil, fmt.Errorf("save person %s: %w", m.TaxID, domain.ErrDuplicateTaxID)
		}
		return nil, fmt.Errorf("save person: %w", err)
	}
	return m.ToDomain(), nil
}

func (r *PersonRepo) update(ctx context.Context, m *person.PersonModel) error {
	res := r.active(ctx).Where("id = ?", m.ID).Select("*").Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// mysql counts only changed rows, so an identical rewrite reports zero
	var n int64
	if err := r.active(ctx).Where("id = ?", m.ID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrStaleRecord
	}
	return nil
}

func (r *PersonRepo) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&person.PersonModel{}).Where("deleted_at IS NULL")
}

func (r *PersonRepo) first(q *gorm.DB) (*domain.Person, error) {
	var m person.PersonModel
	err := q.First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find person: %w", err)
	}
	return m.ToDomain(), nil
}

func (r *PersonRepo) list(page domain.PageRequest, q *gorm.DB) ([]domain.Person, int64, error) {
	// a session keeps Count from leaking into the Find below
	q = q.Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count persons: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	var rows []person.PersonModel
	err := q.
		Order(clause.OrderByColumn{Column: clause.Column{Name: page.Sort.Column()}, Desc: page.Descending()}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list persons: %w", err)
	}

	out := make([]domain.Person, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers without TranslateError support still carry the message
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
