package domain

// MatchDetail records where one condition matched one field value.
// MatchIndex and MatchLength are -1 when the position is not meaningful
// (tag matches).
type MatchDetail struct {
	Field       string
	Value       string
	MatchIndex  int
	MatchLength int
}

// SearchResult is one record that satisfied a query, with every field
// that contributed to the match. MatchedFields may contain duplicates
// when several conditions hit the same field kind.
type SearchResult struct {
	Record        *Record
	MatchedFields []string
	MatchDetails  []MatchDetail
}

// FieldChange is a proposed (or applied) before/after value for one
// field. For creator sub-fields Original and Replaced are serialized
// snapshots of the whole creator list and Creators carries the new list
// to be persisted as an atomic unit.
type FieldChange struct {
	Field        string
	Original     string
	Replaced     string
	Replacements int
	Creators     []Creator
}

// BatchError is one record's failure inside a batch replace
type BatchError struct {
	RecordID int64
	Message  string
}

// BatchResult aggregates one batch replace call. Each record counts
// toward exactly one of Modified, Skipped, or Errors.
type BatchResult struct {
	Modified int
	Skipped  int
	Errors   []BatchError
}
