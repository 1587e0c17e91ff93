package domain

import (
	"encoding/json"
	"strings"
)

// Creator is a person or entity associated with a record (author,
// editor, ...). Creators are value types: the creator list on a record
// is replaced as a whole unit, never mutated one entry at a time.
type Creator struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CreatorType string `json:"creatorType"`
}

// FullName synthesizes the display name from first and last name
func (c Creator) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// SubField returns the named sub-field value; fullName is synthesized.
// Unknown sub-fields return "" and ok=false.
func (c Creator) SubField(sub string) (string, bool) {
	switch sub {
	case CreatorFirstName:
		return c.FirstName, true
	case CreatorLastName:
		return c.LastName, true
	case CreatorFullName:
		return c.FullName(), true
	default:
		return "", false
	}
}

// CloneCreators returns an independent copy of a creator list, for the
// clone-modify-replace discipline of creator mutation
func CloneCreators(creators []Creator) []Creator {
	if creators == nil {
		return nil
	}
	out := make([]Creator, len(creators))
	copy(out, creators)
	return out
}

// SerializeCreators renders a creator list as a stable JSON snapshot,
// used for before/after comparison in field changes
func SerializeCreators(creators []Creator) string {
	b, err := json.Marshal(creators)
	if err != nil {
		return ""
	}
	return string(b)
}
