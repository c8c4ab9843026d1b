package models

// OfficeType is the chamber a politician currently serves in.
type OfficeType string

const (
	OfficeHouse  OfficeType = "House"
	OfficeSenate OfficeType = "Senate"
)

// Valid reports whether the office type is one of the two known chambers.
func (o OfficeType) Valid() bool {
	return o == OfficeHouse || o == OfficeSenate
}

// Politician is the canonical catalog entity. The store assigns ID on create;
// every other field is mutable through reconciliation or direct update.
// External identifiers are optional; empty string means absent. Each non-empty
// identifier is unique store-wide.
type Politician struct {
	ID         int64
	Name       string
	State      string
	OfficeType OfficeType
	Party      string
	TermStart  Date
	TermEnd    Date

	GovtrackID       string
	OpensecretsID    string
	FollowTheMoneyID string
}
