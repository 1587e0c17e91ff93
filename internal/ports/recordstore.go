package ports

import "refield/internal/domain"

// Indexed query operators understood by the record store
const (
	QueryContains = "contains"
	QueryIs       = "is"
)

// ScopeAll selects records from every library
const ScopeAll int64 = 0

// RecordStore defines the interface to the bibliographic datastore. All
// query operations are expected to run against indexes; the engine never
// caches record state across calls.
type RecordStore interface {
	// QueryByCondition runs an indexed pre-filter query and returns
	// candidate record IDs in a stable order
	QueryByCondition(field, operator, term string, scope int64) ([]int64, error)

	// AllRecordIDs returns every record ID in the scope, in stable order
	AllRecordIDs(scope int64) ([]int64, error)

	// LoadRecords loads full records for the given IDs, preserving order
	LoadRecords(ids []int64) ([]*domain.Record, error)

	// SaveRecord persists a record's fields, creators, tags, and
	// collections in one transaction
	SaveRecord(r *domain.Record) error
}

// RecordImporter is the write surface used to seed a store with records
type RecordImporter interface {
	// UpsertRecord inserts a record (matching on key) and fills in its ID
	UpsertRecord(r *domain.Record) error
}
