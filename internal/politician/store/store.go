package store

import (
	"context"

	"integrityindex/internal/politician/models"
)

// ExternalIDKind names one of the third-party identifier columns.
type ExternalIDKind string

const (
	KindGovtrack       ExternalIDKind = "govtrack_id"
	KindOpensecrets    ExternalIDKind = "opensecrets_id"
	KindFollowTheMoney ExternalIDKind = "followthemoney_id"
)

// Filter narrows List results. Empty fields mean no filter on that column.
type Filter struct {
	State      string
	OfficeType string
	Party      string
}

// Error Contract:
// All store methods follow this pattern:
// - Return sentinel.ErrNotFound (wrapped) when the requested entity does not exist
// - Return sentinel.ErrConflict (wrapped) when a uniqueness constraint is violated
// - Return wrapped errors with context for infrastructure failures
//
// Store is the durable politician catalog. It exclusively owns id assignment
// and enforces uniqueness of the external identifier columns.
type Store interface {
	// Create persists a new entity and assigns its ID in place.
	Create(ctx context.Context, p *models.Politician) error
	// Update replaces all mutable fields of the entity with p.ID.
	Update(ctx context.Context, p *models.Politician) error
	// Get returns the entity with the given id.
	Get(ctx context.Context, id int64) (*models.Politician, error)
	// FindByExternalID returns the entity carrying the given external
	// identifier, if any.
	FindByExternalID(ctx context.Context, kind ExternalIDKind, value string) (*models.Politician, error)
	// List returns entities matching the filter, ordered by id ascending,
	// paginated by skip/limit.
	List(ctx context.Context, filter Filter, skip, limit int) ([]*models.Politician, error)
}
