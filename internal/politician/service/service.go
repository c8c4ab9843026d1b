// Package service implements the catalog query service: filtered reads and
// validated writes against the politician store.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"integrityindex/internal/politician/metrics"
	"integrityindex/internal/politician/models"
	"integrityindex/internal/politician/store"
	"integrityindex/pkg/platform/sentinel"
)

// DefaultLimit caps list results when the caller does not ask for a limit.
const DefaultLimit = 100

// CreateParams carries a validated politician creation request.
type CreateParams struct {
	Name             string
	State            string
	OfficeType       models.OfficeType
	Party            string
	TermStart        models.Date
	TermEnd          models.Date
	GovtrackID       string
	OpensecretsID    string
	FollowTheMoneyID string
}

// Service mediates between the HTTP boundary and the entity store.
type Service struct {
	store   store.Store
	metrics *metrics.Metrics
}

// New constructs a catalog service.
func New(st store.Store, m *metrics.Metrics) *Service {
	return &Service{store: st, metrics: m}
}

// List returns politicians matching the filter. A non-positive limit falls
// back to DefaultLimit; negative skip is treated as zero.
func (s *Service) List(ctx context.Context, filter store.Filter, skip, limit int) ([]*models.Politician, error) {
	start := time.Now()
	defer s.metrics.ObserveList(start)

	if limit <= 0 {
		limit = DefaultLimit
	}
	if skip < 0 {
		skip = 0
	}
	return s.store.List(ctx, filter, skip, limit)
}

// Get returns the politician with the given id, or sentinel.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*models.Politician, error) {
	start := time.Now()
	defer s.metrics.ObserveGet(start)

	return s.store.Get(ctx, id)
}

// Create validates params at the boundary and persists a new politician.
// Uniqueness violations surface as sentinel.ErrConflict.
func (s *Service) Create(ctx context.Context, params CreateParams) (*models.Politician, error) {
	if err := validateCreate(params); err != nil {
		return nil, err
	}

	p := &models.Politician{
		Name:             params.Name,
		State:            params.State,
		OfficeType:       params.OfficeType,
		Party:            params.Party,
		TermStart:        params.TermStart,
		TermEnd:          params.TermEnd,
		GovtrackID:       params.GovtrackID,
		OpensecretsID:    params.OpensecretsID,
		FollowTheMoneyID: params.FollowTheMoneyID,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	s.metrics.IncrementPoliticiansCreated()
	return p, nil
}

func validateCreate(params CreateParams) error {
	missing := []string{}
	if strings.TrimSpace(params.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(params.State) == "" {
		missing = append(missing, "state")
	}
	if strings.TrimSpace(params.Party) == "" {
		missing = append(missing, "party")
	}
	if params.TermStart.IsZero() {
		missing = append(missing, "term_start")
	}
	if params.TermEnd.IsZero() {
		missing = append(missing, "term_end")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields %s: %w", strings.Join(missing, ", "), sentinel.ErrInvalid)
	}
	if !params.OfficeType.Valid() {
		return fmt.Errorf("office_type must be %q or %q: %w", models.OfficeHouse, models.OfficeSenate, sentinel.ErrInvalid)
	}
	return nil
}
