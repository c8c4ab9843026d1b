// Package roster synchronizes the politician catalog from the
// congress-legislators roster dataset: it fetches the published YAML, normalizes
// each raw legislator record into the canonical entity shape, and reconciles the
// result against the store.
package roster

import (
	"fmt"
	"strconv"
)

// Record is one raw legislator entry as published in legislators-current.yaml.
// Only the fields the catalog consumes are decoded.
type Record struct {
	Name  NameBlock       `yaml:"name"`
	Terms []Term          `yaml:"terms"`
	IDs   IdentifierBlock `yaml:"id"`
}

// NameBlock holds the legislator's name parts.
type NameBlock struct {
	First string `yaml:"first"`
	Last  string `yaml:"last"`
}

// Term is one service term. The source orders terms chronologically; the last
// entry is the current term.
type Term struct {
	Type  string `yaml:"type"`
	State string `yaml:"state"`
	Party string `yaml:"party"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// IdentifierBlock holds third-party identifiers. The source mixes scalar types
// (govtrack is an integer, opensecrets a string, fec a list of strings), so
// values decode as any and are coerced with coerceID.
type IdentifierBlock struct {
	Govtrack    any `yaml:"govtrack"`
	Opensecrets any `yaml:"opensecrets"`
	FEC         any `yaml:"fec"`
}

// coerceID renders a source identifier value as a string, or "" when absent.
// List-valued identifiers (fec) contribute their first entry.
func coerceID(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case uint64:
		return strconv.FormatUint(value, 10)
	case float64:
		return strconv.FormatInt(int64(value), 10)
	case []any:
		if len(value) == 0 {
			return ""
		}
		return coerceID(value[0])
	default:
		return fmt.Sprintf("%v", value)
	}
}
