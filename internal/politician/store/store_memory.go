package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"integrityindex/internal/politician/models"
	"integrityindex/pkg/platform/sentinel"
)

// InMemoryStore keeps politicians in memory for tests and local development.
// It enforces the same uniqueness rules as the Postgres store.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*models.Politician
}

// NewInMemory constructs an empty in-memory politician store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{nextID: 1, items: make(map[int64]*models.Politician)}
}

func (s *InMemoryStore) Create(_ context.Context, p *models.Politician) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnique(p, 0); err != nil {
		return err
	}

	stored := *p
	stored.ID = s.nextID
	s.nextID++
	s.items[stored.ID] = &stored
	p.ID = stored.ID
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, p *models.Politician) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[p.ID]; !ok {
		return fmt.Errorf("politician %d: %w", p.ID, sentinel.ErrNotFound)
	}
	if err := s.checkUnique(p, p.ID); err != nil {
		return err
	}

	stored := *p
	s.items[p.ID] = &stored
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id int64) (*models.Politician, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.items[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, fmt.Errorf("politician %d: %w", id, sentinel.ErrNotFound)
}

func (s *InMemoryStore) FindByExternalID(_ context.Context, kind ExternalIDKind, value string) (*models.Politician, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if value == "" {
		return nil, fmt.Errorf("empty %s: %w", kind, sentinel.ErrNotFound)
	}
	for _, p := range s.items {
		if externalID(p, kind) == value {
			copied := *p
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("%s %q: %w", kind, value, sentinel.ErrNotFound)
}

func (s *InMemoryStore) List(_ context.Context, filter Filter, skip, limit int) ([]*models.Politician, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*models.Politician, 0, len(s.items))
	for _, p := range s.items {
		if filter.State != "" && p.State != filter.State {
			continue
		}
		if filter.OfficeType != "" && string(p.OfficeType) != filter.OfficeType {
			continue
		}
		if filter.Party != "" && p.Party != filter.Party {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if skip < 0 {
		skip = 0
	}
	if skip >= len(matched) {
		return []*models.Politician{}, nil
	}
	matched = matched[skip:]
	if limit >= 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	out := make([]*models.Politician, len(matched))
	for i, p := range matched {
		copied := *p
		out[i] = &copied
	}
	return out, nil
}

// memorySnapshot captures the store state at the start of a transactional run.
type memorySnapshot struct {
	nextID int64
	items  map[int64]*models.Politician
}

func (s *InMemoryStore) snapshot() memorySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make(map[int64]*models.Politician, len(s.items))
	for id, p := range s.items {
		copied := *p
		items[id] = &copied
	}
	return memorySnapshot{nextID: s.nextID, items: items}
}

func (s *InMemoryStore) restore(snap memorySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = snap.nextID
	s.items = snap.items
}

// checkUnique verifies no other entity carries any of p's non-empty external
// identifiers. selfID exempts the entity being updated.
func (s *InMemoryStore) checkUnique(p *models.Politician, selfID int64) error {
	for _, kind := range []ExternalIDKind{KindGovtrack, KindOpensecrets, KindFollowTheMoney} {
		value := externalID(p, kind)
		if value == "" {
			continue
		}
		for _, existing := range s.items {
			if existing.ID == selfID {
				continue
			}
			if externalID(existing, kind) == value {
				return fmt.Errorf("duplicate %s %q: %w", kind, value, sentinel.ErrConflict)
			}
		}
	}
	return nil
}

func externalID(p *models.Politician, kind ExternalIDKind) string {
	switch kind {
	case KindGovtrack:
		return p.GovtrackID
	case KindOpensecrets:
		return p.OpensecretsID
	case KindFollowTheMoney:
		return p.FollowTheMoneyID
	}
	return ""
}
