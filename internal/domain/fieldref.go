package domain

import "strings"

// FieldKind classifies how a field is resolved against a record
type FieldKind int

const (
	FieldScalar FieldKind = iota
	FieldCreator
	FieldTag
	FieldItemType
	FieldCollection
)

// String returns the kind name
func (k FieldKind) String() string {
	switch k {
	case FieldScalar:
		return "scalar"
	case FieldCreator:
		return "creator"
	case FieldTag:
		return "tag"
	case FieldItemType:
		return "itemType"
	case FieldCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// Creator sub-fields addressable as creator.<sub>
const (
	CreatorFirstName = "firstName"
	CreatorLastName  = "lastName"
	CreatorFullName  = "fullName"
)

// FieldRef is the parsed form of an external field identifier. The
// external string form ("title", "creator.lastName", "tag", ...) is
// parsed once at query construction, not re-examined per record.
type FieldRef struct {
	Kind FieldKind
	Name string // scalar field name, only for FieldScalar
	Sub  string // creator sub-field, only for FieldCreator
}

// ParseFieldRef parses the external string form of a field identifier.
// Unknown names parse as scalar fields; whether the record actually
// carries such a field is decided at resolution time.
func ParseFieldRef(s string) FieldRef {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "creator."):
		return FieldRef{Kind: FieldCreator, Sub: strings.TrimPrefix(s, "creator.")}
	case s == "tag" || s == "tags":
		return FieldRef{Kind: FieldTag}
	case s == "itemType":
		return FieldRef{Kind: FieldItemType}
	case s == "collection":
		return FieldRef{Kind: FieldCollection}
	default:
		return FieldRef{Kind: FieldScalar, Name: s}
	}
}

// String returns the canonical external form of the reference
func (f FieldRef) String() string {
	switch f.Kind {
	case FieldCreator:
		return "creator." + f.Sub
	case FieldTag:
		return "tag"
	case FieldItemType:
		return "itemType"
	case FieldCollection:
		return "collection"
	default:
		return f.Name
	}
}
