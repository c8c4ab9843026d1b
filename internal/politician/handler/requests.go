package handler

import (
	"integrityindex/internal/politician/models"
	"integrityindex/internal/politician/service"
)

// CreatePoliticianRequest is the POST /politicians body.
type CreatePoliticianRequest struct {
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

// ToParams converts the request body into service create params.
func (r CreatePoliticianRequest) ToParams() service.CreateParams {
	return service.CreateParams{
		Name:             r.Name,
		State:            r.State,
		OfficeType:       models.OfficeType(r.OfficeType),
		Party:            r.Party,
		TermStart:        r.TermStart,
		TermEnd:          r.TermEnd,
		GovtrackID:       deref(r.GovtrackID),
		OpensecretsID:    deref(r.OpensecretsID),
		FollowTheMoneyID: deref(r.FollowTheMoneyID),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
