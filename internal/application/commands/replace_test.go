package commands

import (
	"context"
	"strings"
	"testing"

	"refield/internal/domain"
	"refield/internal/ports"
)

func TestPreviewFields_ScalarRegex(t *testing.T) {
	rec := testRecord(1, "Paper")
	rec.SetField("url", "http://example.com/article")

	changes, err := PreviewFields(rec, "http://", ReplaceOptions{
		Fields:      []string{"url"},
		Type:        domain.PatternRegex,
		ReplaceWith: "https://",
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("changes = %+v, want one", changes)
	}
	c := changes[0]
	if c.Replaced != "https://example.com/article" {
		t.Errorf("replaced = %q", c.Replaced)
	}
	if c.Replacements != 1 {
		t.Errorf("replacements = %d, want 1", c.Replacements)
	}
	// Preview never mutates the record.
	if rec.Field("url") != "http://example.com/article" {
		t.Error("preview mutated the record")
	}
}

func TestPreviewFields_GlobalReplacement(t *testing.T) {
	rec := testRecord(1, "one  two  three")

	changes, err := PreviewFields(rec, `\s{2,}`, ReplaceOptions{
		Fields:      []string{"title"},
		Type:        domain.PatternRegex,
		ReplaceWith: " ",
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("changes = %+v", changes)
	}
	if changes[0].Replaced != "one two three" {
		t.Errorf("replaced = %q", changes[0].Replaced)
	}
	if changes[0].Replacements != 2 {
		t.Errorf("replacements = %d, want 2", changes[0].Replacements)
	}
}

func TestPreviewFields_CountsMatchesBeforeSubstitution(t *testing.T) {
	// The replacement text contains the pattern: counting after the
	// substitution would be wrong.
	rec := testRecord(1, "aa")

	changes, err := PreviewFields(rec, "a", ReplaceOptions{
		Fields:      []string{"title"},
		Type:        domain.PatternRegex,
		ReplaceWith: "aa",
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if changes[0].Replacements != 2 {
		t.Errorf("replacements = %d, want 2 (matches in the original)", changes[0].Replacements)
	}
	if changes[0].Replaced != "aaaa" {
		t.Errorf("replaced = %q", changes[0].Replaced)
	}
}

func TestPreviewFields_NoChangeNoEntry(t *testing.T) {
	rec := testRecord(1, "Clean Title")

	changes, err := PreviewFields(rec, "nosuch", ReplaceOptions{
		Fields:      []string{"title"},
		Type:        domain.PatternRegex,
		ReplaceWith: "x",
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("changes = %+v, want none", changes)
	}
}

func TestPreviewFields_LiteralSubstitution(t *testing.T) {
	rec := testRecord(1, "Vol. 1, Vol. 2")

	changes, err := PreviewFields(rec, "vol.", ReplaceOptions{
		Fields:      []string{"title"},
		Type:        domain.PatternContains,
		ReplaceWith: "Volume",
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if changes[0].Replaced != "Volume 1, Volume 2" {
		t.Errorf("replaced = %q", changes[0].Replaced)
	}
	if changes[0].Replacements != 2 {
		t.Errorf("replacements = %d, want 2", changes[0].Replacements)
	}
}

func TestPreviewFields_CreatorWholeListSnapshot(t *testing.T) {
	rec := testRecord(1, "Paper")
	rec.Creators = []domain.Creator{
		{FirstName: "John", LastName: "Smith , John", CreatorType: "author"},
		{FirstName: "Ada", LastName: "Lovelace", CreatorType: "author"},
	}

	changes, err := PreviewFields(rec, " ,", ReplaceOptions{
		Fields:      []string{"creator.lastName"},
		Type:        domain.PatternRegex,
		ReplaceWith: ",",
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("changes = %+v, want one whole-list change", changes)
	}
	c := changes[0]
	if c.Field != "creator.lastName" {
		t.Errorf("field = %q", c.Field)
	}
	if c.Creators[0].LastName != "Smith, John" {
		t.Errorf("lastName = %q, want %q", c.Creators[0].LastName, "Smith, John")
	}
	if c.Creators[1].LastName != "Lovelace" {
		t.Errorf("untouched creator changed: %q", c.Creators[1].LastName)
	}
	if !strings.Contains(c.Original, "Smith , John") || !strings.Contains(c.Replaced, "Smith, John") {
		t.Errorf("snapshots not serialized: original=%q replaced=%q", c.Original, c.Replaced)
	}
	// The record's own creator list is untouched.
	if rec.Creators[0].LastName != "Smith , John" {
		t.Error("preview mutated the record's creators")
	}
}

func TestPreviewFields_ReplaceFuncLowercase(t *testing.T) {
	rec := testRecord(1, "Van Gogh")

	changes, err := PreviewFields(rec, `\b(Van|De)\b`, ReplaceOptions{
		Fields:        []string{"title"},
		Type:          domain.PatternRegex,
		CaseSensitive: true,
		ReplaceFunc:   func(m Match) string { return strings.ToLower(m.Text) },
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if changes[0].Replaced != "van Gogh" {
		t.Errorf("replaced = %q, want %q", changes[0].Replaced, "van Gogh")
	}
}

func TestPreviewFields_Idempotent(t *testing.T) {
	rec := testRecord(1, "Smith , John")
	opts := ReplaceOptions{
		Fields:      []string{"title"},
		Type:        domain.PatternRegex,
		ReplaceWith: ",",
	}

	changes, err := PreviewFields(rec, " ,", opts)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	rec.SetField("title", changes[0].Replaced)

	again, err := PreviewFields(rec, " ,", opts)
	if err != nil {
		t.Fatalf("second preview: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second pass produced changes: %+v", again)
	}
}

func TestCommit_EmptyChangesSkipsSave(t *testing.T) {
	store := newFakeStore()
	rec := testRecord(1, "Paper")

	res := Commit(store, rec, nil)
	if res.Success {
		t.Error("empty change list must not report success")
	}
	if res.Message != "No changes needed" {
		t.Errorf("message = %q", res.Message)
	}
	if len(store.saved) != 0 {
		t.Error("empty change list must not touch the store")
	}
}

func TestCommit_SaveFailureKeepsAttemptedChanges(t *testing.T) {
	store := newFakeStore()
	store.failSaveIDs[1] = true
	rec := testRecord(1, "Paper")

	changes := []domain.FieldChange{{Field: "title", Original: "Paper", Replaced: "Papers"}}
	res := Commit(store, rec, changes)
	if res.Success {
		t.Error("save failure must not report success")
	}
	if res.Message != "save failed" {
		t.Errorf("message = %q", res.Message)
	}
	if len(res.Changes) != 1 {
		t.Error("attempted changes must still be reported")
	}
}

func TestCommit_AppliesScalarAndCreators(t *testing.T) {
	store := newFakeStore()
	rec := testRecord(1, "Old")
	rec.Creators = []domain.Creator{{LastName: "Smith , John"}}

	fixed := []domain.Creator{{LastName: "Smith, John"}}
	changes := []domain.FieldChange{
		{Field: "title", Original: "Old", Replaced: "New"},
		{Field: "creator.lastName", Creators: fixed},
	}
	res := Commit(store, rec, changes)
	if !res.Success {
		t.Fatalf("commit failed: %s", res.Message)
	}
	if rec.Field("title") != "New" {
		t.Errorf("title = %q", rec.Field("title"))
	}
	if rec.Creators[0].LastName != "Smith, John" {
		t.Errorf("creator = %q", rec.Creators[0].LastName)
	}
	if len(store.saved) != 1 {
		t.Error("expected exactly one save call")
	}
}

func TestBatchReplace_Classification(t *testing.T) {
	modified := testRecord(1, "Smith , John")
	modified.Creators = []domain.Creator{{LastName: "Smith , John"}}
	skipped := testRecord(2, "Already Clean")
	skipped.Creators = []domain.Creator{{LastName: "Doe, Jane"}}
	failing := testRecord(3, "Smith , Anne")
	failing.Creators = []domain.Creator{{LastName: "Smith , Anne"}}

	store := newFakeStore(modified, skipped, failing)
	store.failSaveIDs[3] = true

	cmd := NewBatchReplaceCommand(store, []*domain.Record{modified, skipped, failing}, " ,", ReplaceOptions{
		Fields:      []string{"creator.lastName"},
		Type:        domain.PatternRegex,
		ReplaceWith: ",",
	})
	result := cmd.Execute(context.Background())

	if result.Modified != 1 {
		t.Errorf("modified = %d, want 1", result.Modified)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %+v, want 1", result.Errors)
	}
	if result.Errors[0].RecordID != 3 {
		t.Errorf("error record = %d, want 3", result.Errors[0].RecordID)
	}

	// The failed record did not stop the batch; the good record saved.
	if modified.Creators[0].LastName != "Smith, John" {
		t.Errorf("creator = %q", modified.Creators[0].LastName)
	}
}

func TestBatchReplace_SingleRecordScenario(t *testing.T) {
	rec := testRecord(1, "Smith , John")
	rec.Creators = []domain.Creator{{LastName: "Smith , John", CreatorType: "author"}}
	store := newFakeStore(rec)

	cmd := NewBatchReplaceCommand(store, []*domain.Record{rec}, " ,", ReplaceOptions{
		Fields:      []string{"creator.lastName"},
		Type:        domain.PatternRegex,
		ReplaceWith: ",",
	})
	result := cmd.Execute(context.Background())

	if result.Modified != 1 || result.Skipped != 0 || len(result.Errors) != 0 {
		t.Errorf("result = %+v, want modified=1 skipped=0 errors=[]", result)
	}
	if rec.Creators[0].LastName != "Smith, John" {
		t.Errorf("lastName = %q", rec.Creators[0].LastName)
	}
}

func TestBatchReplace_ProgressOrdering(t *testing.T) {
	records := []*domain.Record{
		testRecord(10, "a"),
		testRecord(20, "b"),
		testRecord(30, "c"),
	}
	store := newFakeStore(records...)

	var seen []int64
	cmd := NewBatchReplaceCommand(store, records, "x", ReplaceOptions{
		Fields:      []string{"title"},
		Type:        domain.PatternContains,
		ReplaceWith: "y",
		Progress: func(p ports.Progress) {
			if p.Phase != ports.PhaseReplace {
				t.Errorf("phase = %q", p.Phase)
			}
			seen = append(seen, p.RecordID)
		},
	})
	cmd.Execute(context.Background())

	if len(seen) != 3 || seen[0] != 10 || seen[1] != 20 || seen[2] != 30 {
		t.Errorf("progress order = %v", seen)
	}
}

func TestPreviewFields_InvalidRegex(t *testing.T) {
	rec := testRecord(1, "Paper")
	_, err := PreviewFields(rec, "[bad", ReplaceOptions{
		Fields:      []string{"title"},
		Type:        domain.PatternRegex,
		ReplaceWith: "x",
	})
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestPreviewFields_LiteralFoldChangesByteWidth(t *testing.T) {
	// Ⱥ (2 bytes) lowercases to ⱥ (3 bytes); the literal scan must take
	// its offsets from the original value or the output is corrupted.
	rec := testRecord(1, "aȺbⱥc")

	changes, err := PreviewFields(rec, "ⱥ", ReplaceOptions{
		Fields:      []string{"title"},
		Type:        domain.PatternContains,
		ReplaceWith: "-",
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("changes = %d, want 1", len(changes))
	}
	if changes[0].Replaced != "a-b-c" {
		t.Errorf("replaced = %q, want %q", changes[0].Replaced, "a-b-c")
	}
	if changes[0].Replacements != 2 {
		t.Errorf("replacements = %d, want 2", changes[0].Replacements)
	}
}
