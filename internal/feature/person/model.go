package person

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"person-registry/internal/domain"
)

const activeTaxIDIndex = "ux_persons_active_tax_id"

// PersonModel is the persons table. CreatedAt/UpdatedAt are managed by the
// service, not by gorm: updated_at stays NULL until the first update.
type PersonModel struct {
	ID        string     `gorm:"primaryKey;type:varchar(36)"`
	TaxID     string     `gorm:"size:11;not null;index"`
	FullName  string     `gorm:"size:255;not null"`
	BirthDate time.Time  `gorm:"type:date;not null"`
	Phone     *string    `gorm:"size:32"`
	Email     *string    `gorm:"size:255"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
	DeletedAt *time.Time `gorm:"index"`
}

func (PersonModel) TableName() string { return "persons" }

func FromDomain(p *domain.Person) *PersonModel {
	return &PersonModel{
		ID:        p.ID,
		TaxID:     p.TaxID,
		FullName:  p.FullName,
		BirthDate: p.BirthDate.Time,
		Phone:     p.Phone,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		DeletedAt: p.DeletedAt,
	}
}

func (m *PersonModel) ToDomain() *domain.Person {
	return &domain.Person{
		ID:        m.ID,
		TaxID:     m.TaxID,
		FullName:  m.FullName,
		BirthDate: domain.DateOf(m.BirthDate),
		Phone:     m.Phone,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
	}
}

// Migrate creates the persons table and the unique index over the tax ids
// of active rows. Deleted rows are outside the index so a tax id can be
// registered again after its holder was deleted.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&PersonModel{}); err != nil {
		return fmt.Errorf("automigrate persons: %w", err)
	}
	m := db.Migrator()
	switch db.Dialector.Name() {
	case "postgres":
		return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ` + activeTaxIDIndex +
			` ON persons (tax_id) WHERE deleted_at IS NULL`).Error
	case "mysql":
		// no partial indexes: index a generated column that is NULL for deleted rows
		if !m.HasColumn(&PersonModel{}, "active_tax_id") {
			if err := db.Exec(`ALTER TABLE persons ADD COLUMN active_tax_id VARCHAR(11) ` +
				`GENERATED ALWAYS AS (IF(deleted_at IS NULL, tax_id, NULL)) VIRTUAL`).Error; err != nil {
				return fmt.Errorf("add active_tax_id: %w", err)
			}
		}
		if !m.HasIndex(&PersonModel{}, activeTaxIDIndex) {
			return db.Exec(`CREATE UNIQUE INDEX ` + activeTaxIDIndex + ` ON persons (active_tax_id)`).Error
		}
		return nil
	default:
		return fmt.Errorf("migrate persons: unsupported dialect %q", db.Dialector.Name())
	}
}
