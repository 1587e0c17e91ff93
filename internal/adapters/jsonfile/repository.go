// Package jsonfile reads and writes record collections as JSON files,
// the interchange format used to seed and dump a record store.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"

	"refield/internal/domain"
	"refield/internal/ports"
)

// recordDoc is the on-disk shape of one record
type recordDoc struct {
	Key         string            `json:"key"`
	LibraryID   int64             `json:"libraryId,omitempty"`
	ItemType    string            `json:"itemType"`
	Fields      map[string]string `json:"fields,omitempty"`
	Creators    []domain.Creator  `json:"creators,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Collections []int64           `json:"collections,omitempty"`
}

// Import loads records from a JSON file into the store. Returns the
// number of records imported.
func Import(path string, dst ports.RecordImporter) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var docs []recordDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i, doc := range docs {
		if doc.Key == "" {
			return i, fmt.Errorf("record %d: missing key", i)
		}
		rec := &domain.Record{
			Key:         doc.Key,
			LibraryID:   doc.LibraryID,
			ItemType:    doc.ItemType,
			Fields:      doc.Fields,
			Creators:    doc.Creators,
			Tags:        doc.Tags,
			Collections: doc.Collections,
		}
		if rec.LibraryID == 0 {
			rec.LibraryID = 1
		}
		if rec.Fields == nil {
			rec.Fields = map[string]string{}
		}
		if err := dst.UpsertRecord(rec); err != nil {
			return i, fmt.Errorf("record %s: %w", doc.Key, err)
		}
	}
	return len(docs), nil
}

// Export dumps every record in the scope to a JSON file. Returns the
// number of records written.
func Export(path string, src ports.RecordStore, scope int64) (int, error) {
	ids, err := src.AllRecordIDs(scope)
	if err != nil {
		return 0, err
	}
	records, err := src.LoadRecords(ids)
	if err != nil {
		return 0, err
	}

	docs := make([]recordDoc, 0, len(records))
	for _, rec := range records {
		docs = append(docs, recordDoc{
			Key:         rec.Key,
			LibraryID:   rec.LibraryID,
			ItemType:    rec.ItemType,
			Fields:      rec.Fields,
			Creators:    rec.Creators,
			Tags:        rec.Tags,
			Collections: rec.Collections,
		})
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return len(docs), nil
}
