package sqlite

import (
	"errors"
	"testing"

	"refield/internal/application"
	"refield/internal/domain"
	"refield/internal/ports"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	if err := s.Open(":memory:"); err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedRecord(t *testing.T, s *Store, key, title string) *domain.Record {
	t.Helper()
	rec := domain.NewRecord(key, 1, "journalArticle")
	rec.SetField("title", title)
	if err := s.UpsertRecord(rec); err != nil {
		t.Fatalf("upsert %s: %v", key, err)
	}
	return rec
}

func TestStore_UpsertAndLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	rec := domain.NewRecord("ABCD1234", 1, "book")
	rec.SetField("title", "Deep Work")
	rec.SetField("url", "http://example.com")
	rec.Creators = []domain.Creator{
		{FirstName: "Cal", LastName: "Newport", CreatorType: "author"},
		{LastName: "Anonymous", CreatorType: "editor"},
	}
	rec.Tags = []string{"focus", "productivity"}
	rec.Collections = []int64{7, 42}

	if err := s.UpsertRecord(rec); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("upsert must fill in the record id")
	}

	loaded, err := s.LoadRecords([]int64{rec.ID})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("loaded %d records", len(loaded))
	}
	got := loaded[0]
	if got.Key != "ABCD1234" || got.ItemType != "book" {
		t.Errorf("record = %+v", got)
	}
	if got.Field("title") != "Deep Work" || got.Field("url") != "http://example.com" {
		t.Errorf("fields = %+v", got.Fields)
	}
	// Creator order survives the round trip.
	if len(got.Creators) != 2 || got.Creators[0].LastName != "Newport" || got.Creators[1].LastName != "Anonymous" {
		t.Errorf("creators = %+v", got.Creators)
	}
	if len(got.Tags) != 2 {
		t.Errorf("tags = %v", got.Tags)
	}
	if !got.InCollection(42) {
		t.Errorf("collections = %v", got.Collections)
	}
}

func TestStore_SaveRecordReplacesParts(t *testing.T) {
	s := openTestStore(t)
	rec := seedRecord(t, s, "KEY1", "Old Title")
	rec.Creators = []domain.Creator{{LastName: "Smith , John", CreatorType: "author"}}
	if err := s.SaveRecord(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec.SetField("title", "New Title")
	rec.Creators = []domain.Creator{{LastName: "Smith, John", CreatorType: "author"}}
	rec.Tags = []string{"fixed"}
	if err := s.SaveRecord(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.LoadRecords([]int64{rec.ID})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := loaded[0]
	if got.Field("title") != "New Title" {
		t.Errorf("title = %q", got.Field("title"))
	}
	if len(got.Creators) != 1 || got.Creators[0].LastName != "Smith, John" {
		t.Errorf("creators = %+v", got.Creators)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "fixed" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestStore_QueryByCondition(t *testing.T) {
	s := openTestStore(t)
	deep := seedRecord(t, s, "K1", "Deep Work")
	seedRecord(t, s, "K2", "Shallow Play")
	tagged := seedRecord(t, s, "K3", "Tagged")
	tagged.Tags = []string{"to-read"}
	if err := s.SaveRecord(tagged); err != nil {
		t.Fatalf("save: %v", err)
	}
	authored := seedRecord(t, s, "K4", "Authored")
	authored.Creators = []domain.Creator{{FirstName: "Cal", LastName: "Newport", CreatorType: "author"}}
	if err := s.SaveRecord(authored); err != nil {
		t.Fatalf("save: %v", err)
	}

	tests := []struct {
		name     string
		field    string
		operator string
		term     string
		want     []int64
	}{
		{name: "title contains", field: "title", operator: ports.QueryContains, term: "deep", want: []int64{deep.ID}},
		{name: "title is", field: "title", operator: ports.QueryIs, term: "deep work", want: []int64{deep.ID}},
		{name: "tag contains", field: "tag", operator: ports.QueryContains, term: "read", want: []int64{tagged.ID}},
		{name: "creator last name", field: "creator.lastName", operator: ports.QueryContains, term: "newport", want: []int64{authored.ID}},
		{name: "creator full name", field: "creator.fullName", operator: ports.QueryContains, term: "cal newport", want: []int64{authored.ID}},
		{name: "no hits", field: "title", operator: ports.QueryContains, term: "nothing", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := s.QueryByCondition(tt.field, tt.operator, tt.term, ports.ScopeAll)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("ids = %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Errorf("ids = %v, want %v", ids, tt.want)
				}
			}
		})
	}
}

func TestStore_QueryEscapesWildcards(t *testing.T) {
	s := openTestStore(t)
	percent := seedRecord(t, s, "K1", "Save 50% today")
	seedRecord(t, s, "K2", "Save 500 today")

	ids, err := s.QueryByCondition("title", ports.QueryContains, "50%", ports.ScopeAll)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(ids) != 1 || ids[0] != percent.ID {
		t.Errorf("ids = %v, want only the literal %% match", ids)
	}
}

func TestStore_ItemTypeAndScope(t *testing.T) {
	s := openTestStore(t)
	book := domain.NewRecord("B1", 1, "book")
	book.SetField("title", "A Book")
	if err := s.UpsertRecord(book); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	article := domain.NewRecord("A1", 2, "journalArticle")
	article.SetField("title", "An Article")
	if err := s.UpsertRecord(article); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	ids, err := s.QueryByCondition("itemType", ports.QueryIs, "book", ports.ScopeAll)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(ids) != 1 || ids[0] != book.ID {
		t.Errorf("ids = %v", ids)
	}

	// Scope narrows to one library.
	ids, err = s.QueryByCondition("title", ports.QueryContains, "a", 2)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(ids) != 1 || ids[0] != article.ID {
		t.Errorf("ids = %v", ids)
	}

	all, err := s.AllRecordIDs(ports.ScopeAll)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all = %v", all)
	}
	scoped, err := s.AllRecordIDs(1)
	if err != nil {
		t.Fatalf("scoped: %v", err)
	}
	if len(scoped) != 1 || scoped[0] != book.ID {
		t.Errorf("scoped = %v", scoped)
	}
}

func TestStore_LoadPreservesRequestedOrder(t *testing.T) {
	s := openTestStore(t)
	a := seedRecord(t, s, "K1", "A")
	b := seedRecord(t, s, "K2", "B")
	c := seedRecord(t, s, "K3", "C")

	loaded, err := s.LoadRecords([]int64{c.ID, a.ID, b.ID})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 3 || loaded[0].Key != "K3" || loaded[1].Key != "K1" || loaded[2].Key != "K2" {
		t.Errorf("order = %v %v %v", loaded[0].Key, loaded[1].Key, loaded[2].Key)
	}
}

func TestStore_SaveUnknownRecordIsNotFound(t *testing.T) {
	s := openTestStore(t)

	rec := domain.NewRecord("GHOST000", 1, "book")
	rec.ID = 9999
	if err := s.SaveRecord(rec); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("SaveRecord = %v, want ErrNotFound", err)
	}
}
