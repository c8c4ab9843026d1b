package roster

import (
	"fmt"
	"strings"

	"integrityindex/internal/politician/models"
)

// RejectionError reports a record that failed normalization. Name carries
// whatever display name was derivable so operators can identify the record.
type RejectionError struct {
	Name   string
	Reason string
}

func (e *RejectionError) Error() string {
	name := e.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("skipping %s: %s", name, e.Reason)
}

// Normalize transforms one raw legislator record into a canonical politician,
// or rejects it with a RejectionError. It is pure: the returned entity has no
// id and nothing is persisted.
//
// The current term is the last entry of the term sequence (source orders terms
// chronologically). Term type codes map rep -> House and sen -> Senate; any
// other code is rejected rather than persisted as an invalid office type.
// The FEC identifier fills followthemoney_id as a deliberate source-data proxy.
func Normalize(rec Record) (*models.Politician, error) {
	fullName := strings.TrimSpace(rec.Name.First + " " + rec.Name.Last)

	if len(rec.Terms) == 0 {
		return nil, &RejectionError{Name: fullName, Reason: "no terms data"}
	}
	current := rec.Terms[len(rec.Terms)-1]

	officeType, ok := mapOfficeType(current.Type)
	if !ok {
		return nil, &RejectionError{
			Name:   fullName,
			Reason: fmt.Sprintf("unrecognized term type %q", capitalize(current.Type)),
		}
	}

	termStart, err := models.ParseDate(current.Start)
	if err != nil {
		return nil, &RejectionError{Name: fullName, Reason: err.Error()}
	}
	termEnd, err := models.ParseDate(current.End)
	if err != nil {
		return nil, &RejectionError{Name: fullName, Reason: err.Error()}
	}

	if fullName == "" || current.State == "" || current.Party == "" || termStart.IsZero() || termEnd.IsZero() {
		return nil, &RejectionError{Name: fullName, Reason: "missing required fields"}
	}

	return &models.Politician{
		Name:             fullName,
		State:            current.State,
		OfficeType:       officeType,
		Party:            current.Party,
		TermStart:        termStart,
		TermEnd:          termEnd,
		GovtrackID:       coerceID(rec.IDs.Govtrack),
		OpensecretsID:    coerceID(rec.IDs.Opensecrets),
		FollowTheMoneyID: coerceID(rec.IDs.FEC),
	}, nil
}

func mapOfficeType(code string) (models.OfficeType, bool) {
	switch capitalize(code) {
	case "Rep":
		return models.OfficeHouse, true
	case "Sen":
		return models.OfficeSenate, true
	}
	return "", false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
