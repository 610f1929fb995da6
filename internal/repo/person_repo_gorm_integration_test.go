//go:build integration

package repo_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"person-registry/internal/domain"
	"person-registry/internal/repo"
	"person-registry/internal/testutil/containers"
)

type PersonRepoPostgresSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *repo.PersonRepo
	ctx      context.Context
}

func TestPersonRepoPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PersonRepoPostgresSuite))
}

func (s *PersonRepoPostgresSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = repo.NewPersonRepo(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *PersonRepoPostgresSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(s.ctx))
}

func (s *PersonRepoPostgresSuite) newPerson(taxID, name string) *domain.Person {
	return &domain.Person{
		TaxID:     taxID,
		FullName:  name,
		BirthDate: domain.NewDate(1990, time.May, 4),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PersonRepoPostgresSuite) TestSaveAndFind() {
	saved, err := s.store.Save(s.ctx, s.newPerson("52998224725", "Ana"))
	s.Require().NoError(err)
	s.NotEmpty(saved.ID)

	got, err := s.store.FindActiveByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("Ana", got.FullName)
	s.Equal(domain.NewDate(1990, time.May, 4), got.BirthDate)
	s.Nil(got.UpdatedAt)

	missing, err := s.store.FindActiveByID(s.ctx, "00000000-0000-0000-0000-000000000000")
	s.Require().NoError(err)
	s.Nil(missing)
}

// TestActiveTaxIDIndex verifies the partial unique index: one active holder,
// any number of deleted ones.
func (s *PersonRepoPostgresSuite) TestActiveTaxIDIndex() {
	first, err := s.store.Save(s.ctx, s.newPerson("52998224725", "Ana"))
	s.Require().NoError(err)

	_, err = s.store.Save(s.ctx, s.newPerson("52998224725", "Dup"))
	s.ErrorIs(err, domain.ErrDuplicateTaxID)

	_, err = s.store.Save(s.ctx, first.AsDeleted(time.Now()))
	s.Require().NoError(err)

	again, err := s.store.Save(s.ctx, s.newPerson("52998224725", "Ana Again"))
	s.Require().NoError(err)

	active, err := s.store.FindActiveByTaxID(s.ctx, "52998224725")
	s.Require().NoError(err)
	s.Equal(again.ID, active.ID)
}

// TestConcurrentCreates verifies exactly one of many racing inserts wins.
func (s *PersonRepoPostgresSuite) TestConcurrentCreates() {
	const goroutines = 20
	var wg sync.WaitGroup
	var ok, dup atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Save(s.ctx, s.newPerson("11144477735", "Racer"))
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrDuplicateTaxID):
				dup.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), ok.Load())
	s.Equal(int32(goroutines-1), dup.Load())
}

func (s *PersonRepoPostgresSuite) TestListing() {
	for _, p := range []struct{ tax, name string }{
		{"52998224725", "Carla Souza"},
		{"11144477735", "Ana Lima"},
		{"39053344705", "Bruno Souza"},
	} {
		_, err := s.store.Save(s.ctx, s.newPerson(p.tax, p.name))
		s.Require().NoError(err)
	}
	page := domain.PageRequest{Page: 0, Size: 2, Sort: domain.SortByFullName, Direction: domain.Asc}

	items, total, err := s.store.ListActive(s.ctx, page)
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(items, 2)
	s.Equal("Ana Lima", items[0].FullName)

	items, total, err = s.store.ListActiveByName(s.ctx, "SOUZA", page)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Equal("Bruno Souza", items[0].FullName)

	items, _, err = s.store.ListActiveByName(s.ctx, "100%", page)
	s.Require().NoError(err)
	s.Empty(items)

	items, _, err = s.store.ListActiveByTaxIDAndName(s.ctx, "39053344705", "bruno", page)
	s.Require().NoError(err)
	s.Len(items, 1)
}

func (s *PersonRepoPostgresSuite) TestUpdateOfDeletedRowIsRefused() {
	p, err := s.store.Save(s.ctx, s.newPerson("52998224725", "Ana"))
	s.Require().NoError(err)
	stale := p.Clone()

	_, err = s.store.Save(s.ctx, p.AsDeleted(time.Now()))
	s.Require().NoError(err)

	stale.FullName = "Bia"
	_, err = s.store.Save(s.ctx, stale)
	s.ErrorIs(err, domain.ErrStaleRecord)

	got, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.NotNil(got.DeletedAt)
	s.Equal("Ana", got.FullName)
}

func (s *PersonRepoPostgresSuite) TestUpdateWithoutChangesSucceeds() {
	p, err := s.store.Save(s.ctx, s.newPerson("52998224725", "Ana"))
	s.Require().NoError(err)

	again, err := s.store.Save(s.ctx, p)
	s.Require().NoError(err)
	s.Equal(p.ID, again.ID)
}
