package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"person-registry/internal/domain"
)

type MemoryPersonRepoSuite struct {
	suite.Suite
	store *MemoryPersonRepo
	ctx   context.Context
	t0    time.Time
}

func TestMemoryPersonRepoSuite(t *testing.T) {
	suite.Run(t, new(MemoryPersonRepoSuite))
}

func (s *MemoryPersonRepoSuite) SetupTest() {
	s.store = NewMemoryPersonRepo()
	s.ctx = context.Background()
	s.t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (s *MemoryPersonRepoSuite) save(taxID, name string, offset time.Duration) *domain.Person {
	p, err := s.store.Save(s.ctx, &domain.Person{
		TaxID:     taxID,
		FullName:  name,
		BirthDate: domain.NewDate(1990, time.May, 4),
		CreatedAt: s.t0.Add(offset),
	})
	s.Require().NoError(err)
	return p
}

func (s *MemoryPersonRepoSuite) page(sort domain.SortField, dir domain.Direction, page, size int) domain.PageRequest {
	return domain.PageRequest{Page: page, Size: size, Sort: sort, Direction: dir}
}

func (s *MemoryPersonRepoSuite) TestSaveAssignsIDAndCopies() {
	in := &domain.Person{TaxID: "52998224725", FullName: "Ana", CreatedAt: s.t0}
	out, err := s.store.Save(s.ctx, in)
	s.Require().NoError(err)
	s.NotEmpty(out.ID)
	s.Empty(in.ID)

	out.FullName = "mutated"
	got, err := s.store.FindByID(s.ctx, out.ID)
	s.Require().NoError(err)
	s.Equal("Ana", got.FullName)
}

func (s *MemoryPersonRepoSuite) TestActiveTaxIDUniqueness() {
	first := s.save("52998224725", "Ana", 0)

	s.Run("second active holder is rejected", func() {
		_, err := s.store.Save(s.ctx, &domain.Person{TaxID: "52998224725", FullName: "Dup", CreatedAt: s.t0})
		s.ErrorIs(err, domain.ErrDuplicateTaxID)
	})

	s.Run("updating the holder itself is allowed", func() {
		first.FullName = "Ana Maria"
		_, err := s.store.Save(s.ctx, first)
		s.NoError(err)
	})

	s.Run("a deleted holder frees the tax id", func() {
		_, err := s.store.Save(s.ctx, first.AsDeleted(s.t0.Add(time.Hour)))
		s.Require().NoError(err)

		again := s.save("52998224725", "Ana Again", 2*time.Hour)
		s.NotEqual(first.ID, again.ID)
		s.Equal(2, s.store.Len())
	})
}

func (s *MemoryPersonRepoSuite) TestFinders() {
	p := s.save("52998224725", "Ana", 0)
	_, err := s.store.Save(s.ctx, p.AsDeleted(s.t0.Add(time.Minute)))
	s.Require().NoError(err)

	active, err := s.store.FindActiveByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Nil(active)

	active, err = s.store.FindActiveByTaxID(s.ctx, p.TaxID)
	s.Require().NoError(err)
	s.Nil(active)

	stored, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.NotNil(stored.DeletedAt)

	byTax, err := s.store.FindByTaxID(s.ctx, p.TaxID)
	s.Require().NoError(err)
	s.Equal(p.ID, byTax.ID)

	missing, err := s.store.FindByTaxID(s.ctx, "11144477735")
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *MemoryPersonRepoSuite) TestListing() {
	s.save("52998224725", "Carla", 0)
	s.save("11144477735", "ana", time.Minute)
	deleted := s.save("39053344705", "Bruno", 2*time.Minute)
	_, err := s.store.Save(s.ctx, deleted.AsDeleted(s.t0.Add(time.Hour)))
	s.Require().NoError(err)

	s.Run("deleted rows are excluded from totals", func() {
		items, total, err := s.store.ListActive(s.ctx, s.page(domain.SortByCreatedAt, domain.Asc, 0, 10))
		s.Require().NoError(err)
		s.Equal(int64(2), total)
		s.Equal("Carla", items[0].FullName)
	})

	s.Run("pagination slices after sorting", func() {
		items, total, err := s.store.ListActive(s.ctx, s.page(domain.SortByCreatedAt, domain.Desc, 1, 1))
		s.Require().NoError(err)
		s.Equal(int64(2), total)
		s.Require().Len(items, 1)
		s.Equal("Carla", items[0].FullName)
	})

	s.Run("page past the end is empty with the total", func() {
		items, total, err := s.store.ListActive(s.ctx, s.page(domain.SortByFullName, domain.Asc, 3, 10))
		s.Require().NoError(err)
		s.Empty(items)
		s.Equal(int64(2), total)
	})

	s.Run("name match ignores case", func() {
		items, _, err := s.store.ListActiveByName(s.ctx, "ANA", s.page(domain.SortByFullName, domain.Asc, 0, 10))
		s.Require().NoError(err)
		s.Require().Len(items, 1)
		s.Equal("11144477735", items[0].TaxID)
	})

	s.Run("tax id and name must both match", func() {
		items, _, err := s.store.ListActiveByTaxIDAndName(s.ctx, "52998224725", "ana", s.page(domain.SortByFullName, domain.Asc, 0, 10))
		s.Require().NoError(err)
		s.Empty(items)

		items, _, err = s.store.ListActiveByTaxID(s.ctx, "52998224725", s.page(domain.SortByFullName, domain.Asc, 0, 10))
		s.Require().NoError(err)
		s.Len(items, 1)
	})
}

func (s *MemoryPersonRepoSuite) TestNilOptionalsSortFirst() {
	withPhone := s.save("52998224725", "Ana", 0)
	phone := "123"
	withPhone.Phone = &phone
	_, err := s.store.Save(s.ctx, withPhone)
	s.Require().NoError(err)
	s.save("11144477735", "Bia", time.Minute)

	items, _, err := s.store.ListActive(s.ctx, s.page(domain.SortByPhone, domain.Asc, 0, 10))
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Nil(items[0].Phone)
}

func (s *MemoryPersonRepoSuite) TestUpdateOfDeletedRowIsRefused() {
	p := s.save("52998224725", "Ana", 0)
	stale := p.Clone()

	_, err := s.store.Save(s.ctx, p.AsDeleted(s.t0.Add(time.Hour)))
	s.Require().NoError(err)

	stale.FullName = "Bia"
	_, err = s.store.Save(s.ctx, stale)
	s.ErrorIs(err, domain.ErrStaleRecord)

	_, err = s.store.Save(s.ctx, p.AsDeleted(s.t0.Add(2*time.Hour)))
	s.ErrorIs(err, domain.ErrStaleRecord)

	got, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.DeletedAt)
	s.Equal(s.t0.Add(time.Hour), *got.DeletedAt)
	s.Equal("Ana", got.FullName)
}

func (s *MemoryPersonRepoSuite) TestUpdateOfUnknownIDIsRefused() {
	_, err := s.store.Save(s.ctx, &domain.Person{ID: "ghost", TaxID: "52998224725", FullName: "Ana", CreatedAt: s.t0})
	s.ErrorIs(err, domain.ErrStaleRecord)
	s.Zero(s.store.Len())
}
