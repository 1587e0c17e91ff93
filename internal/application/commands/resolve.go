package commands

import (
	"log/slog"
	"strconv"
	"strings"

	"refield/internal/domain"
)

// resolveField tests one condition's pattern against one record,
// dispatching on the field kind. It returns whether anything matched
// and at most one MatchDetail (first creator / first tag wins).
func resolveField(rec *domain.Record, ref domain.FieldRef, m *domain.Matcher) (bool, []domain.MatchDetail) {
	switch ref.Kind {
	case domain.FieldScalar:
		return resolveScalar(rec, ref, m)

	case domain.FieldCreator:
		return resolveCreator(rec, ref, m)

	case domain.FieldTag:
		for _, tag := range rec.Tags {
			if m.Test(tag).Matched {
				return true, []domain.MatchDetail{{
					Field:       ref.String(),
					Value:       tag,
					MatchIndex:  -1,
					MatchLength: -1,
				}}
			}
		}
		return false, nil

	case domain.FieldItemType:
		name := domain.ItemTypeName(rec.ItemType)
		if name == "" {
			name = rec.ItemType
		}
		return testScalarValue(ref, name, m)

	case domain.FieldCollection:
		id, err := strconv.ParseInt(strings.TrimSpace(m.Pattern()), 10, 64)
		if err != nil {
			slog.Debug("skipping collection condition: pattern is not a collection id",
				"pattern", m.Pattern())
			return false, nil
		}
		if !rec.InCollection(id) {
			return false, nil
		}
		term := strconv.FormatInt(id, 10)
		return true, []domain.MatchDetail{{
			Field:       ref.String(),
			Value:       term,
			MatchIndex:  0,
			MatchLength: len(term),
		}}

	default:
		slog.Debug("skipping unrecognized field", "field", ref.String())
		return false, nil
	}
}

func resolveScalar(rec *domain.Record, ref domain.FieldRef, m *domain.Matcher) (bool, []domain.MatchDetail) {
	if !rec.HasField(ref.Name) {
		slog.Debug("skipping field absent from record", "field", ref.Name, "record", rec.ID)
		return false, nil
	}
	return testScalarValue(ref, rec.Field(ref.Name), m)
}

// testScalarValue applies the empty-value rules shared by scalar fields
// and the item-type pseudo-field: empty values are never tested except
// against the reserved empty-check idiom, which matches them with a
// zero-length outcome at position 0.
func testScalarValue(ref domain.FieldRef, value string, m *domain.Matcher) (bool, []domain.MatchDetail) {
	if strings.TrimSpace(value) == "" {
		if m.EmptyCheck() {
			return true, []domain.MatchDetail{{
				Field:       ref.String(),
				Value:       value,
				MatchIndex:  0,
				MatchLength: 0,
			}}
		}
		return false, nil
	}

	out := m.Test(value)
	if !out.Matched {
		return false, nil
	}
	return true, []domain.MatchDetail{{
		Field:       ref.String(),
		Value:       value,
		MatchIndex:  out.MatchIndex,
		MatchLength: out.MatchLength,
	}}
}

// resolveCreator walks the creator list and stops at the first creator
// whose requested sub-field matches. One detail per field, not per
// creator: a record with several matching creators is reported once.
func resolveCreator(rec *domain.Record, ref domain.FieldRef, m *domain.Matcher) (bool, []domain.MatchDetail) {
	for _, creator := range rec.Creators {
		value, ok := creator.SubField(ref.Sub)
		if !ok {
			slog.Debug("skipping unknown creator sub-field", "sub", ref.Sub)
			return false, nil
		}
		if value == "" {
			continue
		}
		out := m.Test(value)
		if out.Matched {
			return true, []domain.MatchDetail{{
				Field:       ref.String(),
				Value:       value,
				MatchIndex:  out.MatchIndex,
				MatchLength: out.MatchLength,
			}}
		}
	}
	return false, nil
}
