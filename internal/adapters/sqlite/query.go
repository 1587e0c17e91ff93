package sqlite

import (
	"fmt"
	"strconv"
	"strings"

	"refield/internal/domain"
	"refield/internal/ports"
)

// QueryByCondition runs one indexed pre-filter query and returns the
// candidate record IDs in ascending ID order. The operator is either
// "contains" (substring, case-folded) or "is" (equality, case-folded).
func (s *Store) QueryByCondition(field, operator, term string, scope int64) ([]int64, error) {
	ref := domain.ParseFieldRef(field)

	var query string
	var args []any

	switch ref.Kind {
	case domain.FieldScalar:
		query = `
			SELECT DISTINCT f.record_id FROM fields f
			JOIN records r ON r.id = f.record_id
			WHERE f.name = ? AND ` + valuePredicate("f.value", operator)
		args = []any{ref.Name, termArg(operator, term)}

	case domain.FieldCreator:
		column := "c.last_name"
		switch ref.Sub {
		case domain.CreatorFirstName:
			column = "c.first_name"
		case domain.CreatorFullName:
			column = "trim(c.first_name || ' ' || c.last_name)"
		}
		query = `
			SELECT DISTINCT c.record_id FROM creators c
			JOIN records r ON r.id = c.record_id
			WHERE ` + valuePredicate(column, operator)
		args = []any{termArg(operator, term)}

	case domain.FieldTag:
		query = `
			SELECT DISTINCT t.record_id FROM tags t
			JOIN records r ON r.id = t.record_id
			WHERE ` + valuePredicate("t.name", operator)
		args = []any{termArg(operator, term)}

	case domain.FieldItemType:
		query = `
			SELECT r.id AS record_id FROM records r
			WHERE ` + valuePredicate("r.item_type", operator)
		args = []any{termArg(operator, term)}

	case domain.FieldCollection:
		id, err := strconv.ParseInt(strings.TrimSpace(term), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid collection id %q: %w", term, err)
		}
		query = `
			SELECT DISTINCT c.record_id FROM collections c
			JOIN records r ON r.id = c.record_id
			WHERE c.collection_id = ?`
		args = []any{id}

	default:
		return nil, fmt.Errorf("cannot query field %q", field)
	}

	if scope != ports.ScopeAll {
		query += ` AND r.library_id = ?`
		args = append(args, scope)
	}
	query += ` ORDER BY record_id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("condition query failed: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AllRecordIDs returns every record ID in the scope in ascending order
func (s *Store) AllRecordIDs(scope int64) ([]int64, error) {
	query := `SELECT id FROM records`
	var args []any
	if scope != ports.ScopeAll {
		query += ` WHERE library_id = ?`
		args = append(args, scope)
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func valuePredicate(column, operator string) string {
	if operator == ports.QueryIs {
		return column + ` = ? COLLATE NOCASE`
	}
	return column + ` LIKE ? ESCAPE '\'`
}

// termArg prepares the bind argument for a predicate, escaping LIKE
// wildcards inside contains terms
func termArg(operator, term string) string {
	if operator == ports.QueryIs {
		return term
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}
