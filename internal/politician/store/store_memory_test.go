package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"integrityindex/internal/politician/models"
	"integrityindex/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
}

func newTestPolitician(name, state string) *models.Politician {
	return &models.Politician{
		Name:       name,
		State:      state,
		OfficeType: models.OfficeSenate,
		Party:      "Democrat",
		TermStart:  models.NewDate(2019, time.January, 3),
		TermEnd:    models.NewDate(2025, time.January, 3),
	}
}

func (s *InMemoryStoreSuite) TestCreateAssignsID() {
	ctx := context.Background()
	p := newTestPolitician("Jane Doe", "CA")

	s.Require().NoError(s.store.Create(ctx, p))
	s.NotZero(p.ID)

	fetched, err := s.store.Get(ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p, fetched)
}

func (s *InMemoryStoreSuite) TestGetNotFound() {
	_, err := s.store.Get(context.Background(), 42)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestDuplicateOpensecretsIDConflicts() {
	ctx := context.Background()

	first := newTestPolitician("Jane Doe", "CA")
	first.OpensecretsID = "N00001234"
	s.Require().NoError(s.store.Create(ctx, first))

	second := newTestPolitician("John Roe", "NY")
	second.OpensecretsID = "N00001234"
	err := s.store.Create(ctx, second)
	s.ErrorIs(err, sentinel.ErrConflict)

	// First entity remains persisted.
	fetched, err := s.store.Get(ctx, first.ID)
	s.Require().NoError(err)
	s.Equal("Jane Doe", fetched.Name)
}

func (s *InMemoryStoreSuite) TestUpdateMutatesAllFieldsButID() {
	ctx := context.Background()
	p := newTestPolitician("Jane Doe", "CA")
	p.GovtrackID = "412345"
	s.Require().NoError(s.store.Create(ctx, p))

	p.Party = "Independent"
	p.OpensecretsID = "N00001234"
	s.Require().NoError(s.store.Update(ctx, p))

	fetched, err := s.store.Get(ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Independent", fetched.Party)
	s.Equal("N00001234", fetched.OpensecretsID)
	s.Equal("412345", fetched.GovtrackID)
}

func (s *InMemoryStoreSuite) TestUpdateNotFound() {
	p := newTestPolitician("Jane Doe", "CA")
	p.ID = 99
	s.ErrorIs(s.store.Update(context.Background(), p), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestUpdateConflictsOnStolenID() {
	ctx := context.Background()

	first := newTestPolitician("Jane Doe", "CA")
	first.GovtrackID = "111"
	s.Require().NoError(s.store.Create(ctx, first))

	second := newTestPolitician("John Roe", "NY")
	second.GovtrackID = "222"
	s.Require().NoError(s.store.Create(ctx, second))

	second.GovtrackID = "111"
	s.ErrorIs(s.store.Update(ctx, second), sentinel.ErrConflict)
}

func (s *InMemoryStoreSuite) TestFindByExternalID() {
	ctx := context.Background()
	p := newTestPolitician("Jane Doe", "CA")
	p.GovtrackID = "412345"
	s.Require().NoError(s.store.Create(ctx, p))

	found, err := s.store.FindByExternalID(ctx, KindGovtrack, "412345")
	s.Require().NoError(err)
	s.Equal(p.ID, found.ID)

	_, err = s.store.FindByExternalID(ctx, KindGovtrack, "999")
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindByExternalID(ctx, KindGovtrack, "")
	s.ErrorIs(err, sentinel.ErrNotFound, "empty values never match null columns")
}

func (s *InMemoryStoreSuite) TestListFiltersAndPaginates() {
	ctx := context.Background()

	ca1 := newTestPolitician("Jane Doe", "CA")
	ca2 := newTestPolitician("Alice Poe", "CA")
	ca2.OfficeType = models.OfficeHouse
	ny := newTestPolitician("John Roe", "NY")
	ny.Party = "Republican"
	for _, p := range []*models.Politician{ca1, ca2, ny} {
		s.Require().NoError(s.store.Create(ctx, p))
	}

	byState, err := s.store.List(ctx, Filter{State: "CA"}, 0, 100)
	s.Require().NoError(err)
	s.Len(byState, 2)
	for _, p := range byState {
		s.Equal("CA", p.State)
	}

	byOffice, err := s.store.List(ctx, Filter{State: "CA", OfficeType: "House"}, 0, 100)
	s.Require().NoError(err)
	s.Require().Len(byOffice, 1)
	s.Equal("Alice Poe", byOffice[0].Name)

	byParty, err := s.store.List(ctx, Filter{Party: "Republican"}, 0, 100)
	s.Require().NoError(err)
	s.Require().Len(byParty, 1)
	s.Equal("John Roe", byParty[0].Name)

	// Stable id-ascending order with offset/limit.
	page, err := s.store.List(ctx, Filter{}, 1, 1)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(ca2.ID, page[0].ID)

	empty, err := s.store.List(ctx, Filter{}, 10, 5)
	s.Require().NoError(err)
	s.Empty(empty)
}
