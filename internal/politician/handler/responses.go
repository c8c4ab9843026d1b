package handler

import (
	"integrityindex/internal/politician/models"
)

// PoliticianResponse is the wire representation of a catalog entity. Absent
// external identifiers render as null, matching the persisted columns.
type PoliticianResponse struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	State            string      `json:"state"`
	OfficeType       string      `json:"office_type"`
	Party            string      `json:"party"`
	TermStart        models.Date `json:"term_start"`
	TermEnd          models.Date `json:"term_end"`
	GovtrackID       *string     `json:"govtrack_id"`
	OpensecretsID    *string     `json:"opensecrets_id"`
	FollowTheMoneyID *string     `json:"followthemoney_id"`
}

// FromModel maps a stored entity onto its wire representation.
func FromModel(p *models.Politician) PoliticianResponse {
	return PoliticianResponse{
		ID:               p.ID,
		Name:             p.Name,
		State:            p.State,
		OfficeType:       string(p.OfficeType),
		Party:            p.Party,
		TermStart:        p.TermStart,
		TermEnd:          p.TermEnd,
		GovtrackID:       nilIfEmpty(p.GovtrackID),
		OpensecretsID:    nilIfEmpty(p.OpensecretsID),
		FollowTheMoneyID: nilIfEmpty(p.FollowTheMoneyID),
	}
}

// FromModels maps a list of entities, always yielding a JSON array (never null).
func FromModels(ps []*models.Politician) []PoliticianResponse {
	out := make([]PoliticianResponse, len(ps))
	for i, p := range ps {
		out[i] = FromModel(p)
	}
	return out
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
