package commands

import (
	"errors"
	"strings"

	"refield/internal/domain"
	"refield/internal/ports"
)

// fakeStore is an in-memory RecordStore for command tests. It records
// the indexed queries it receives so tests can assert on the pre-filter
// path taken.
type fakeStore struct {
	records []*domain.Record

	queries  []fakeQuery
	fullScan int
	saved    []int64

	failSaveIDs map[int64]bool
}

type fakeQuery struct {
	field, operator, term string
	scope                 int64
}

func newFakeStore(records ...*domain.Record) *fakeStore {
	return &fakeStore{records: records, failSaveIDs: map[int64]bool{}}
}

func (s *fakeStore) QueryByCondition(field, operator, term string, scope int64) ([]int64, error) {
	s.queries = append(s.queries, fakeQuery{field, operator, term, scope})

	ref := domain.ParseFieldRef(field)
	var ids []int64
	for _, rec := range s.records {
		if scope != ports.ScopeAll && rec.LibraryID != scope {
			continue
		}
		if fakeConditionMatch(rec, ref, operator, term) {
			ids = append(ids, rec.ID)
		}
	}
	return ids, nil
}

func fakeConditionMatch(rec *domain.Record, ref domain.FieldRef, operator, term string) bool {
	test := func(value string) bool {
		if operator == ports.QueryIs {
			return strings.EqualFold(value, term)
		}
		return strings.Contains(strings.ToLower(value), strings.ToLower(term))
	}

	switch ref.Kind {
	case domain.FieldScalar:
		return test(rec.Field(ref.Name))
	case domain.FieldCreator:
		for _, c := range rec.Creators {
			if v, ok := c.SubField(ref.Sub); ok && test(v) {
				return true
			}
		}
	case domain.FieldTag:
		for _, tag := range rec.Tags {
			if test(tag) {
				return true
			}
		}
	case domain.FieldItemType:
		return test(rec.ItemType)
	}
	return false
}

func (s *fakeStore) AllRecordIDs(scope int64) ([]int64, error) {
	s.fullScan++
	var ids []int64
	for _, rec := range s.records {
		if scope != ports.ScopeAll && rec.LibraryID != scope {
			continue
		}
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

func (s *fakeStore) LoadRecords(ids []int64) ([]*domain.Record, error) {
	byID := map[int64]*domain.Record{}
	for _, rec := range s.records {
		byID[rec.ID] = rec
	}
	var out []*domain.Record
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *fakeStore) SaveRecord(r *domain.Record) error {
	if s.failSaveIDs[r.ID] {
		return errors.New("save failed")
	}
	s.saved = append(s.saved, r.ID)
	return nil
}

func testRecord(id int64, title string) *domain.Record {
	rec := domain.NewRecord("", 1, "journalArticle")
	rec.ID = id
	rec.Key = "KEY" + string(rune('A'+id))
	rec.SetField("title", title)
	return rec
}
