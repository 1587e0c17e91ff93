package domain

// Record is one bibliographic entry as loaded from the record store:
// scalar fields keyed by name, an ordered creator list, a tag set, and
// collection memberships. Records are created and deleted by the store;
// the engine only reads fields and writes back whole values through a
// store save.
type Record struct {
	ID          int64
	Key         string
	LibraryID   int64
	ItemType    string
	Fields      map[string]string
	Creators    []Creator
	Tags        []string
	Collections []int64
}

// NewRecord creates an empty record with an initialized field map
func NewRecord(key string, libraryID int64, itemType string) *Record {
	return &Record{
		Key:       key,
		LibraryID: libraryID,
		ItemType:  itemType,
		Fields:    map[string]string{},
	}
}

// Field returns the value of a scalar field, empty when absent
func (r *Record) Field(name string) string {
	return r.Fields[name]
}

// HasField reports whether the record carries the scalar field at all,
// distinguishing an absent field from one stored as the empty string
func (r *Record) HasField(name string) bool {
	_, ok := r.Fields[name]
	return ok
}

// SetField sets a scalar field value
func (r *Record) SetField(name, value string) {
	if r.Fields == nil {
		r.Fields = map[string]string{}
	}
	r.Fields[name] = value
}

// InCollection reports whether the record belongs to the collection
func (r *Record) InCollection(id int64) bool {
	for _, c := range r.Collections {
		if c == id {
			return true
		}
	}
	return false
}
