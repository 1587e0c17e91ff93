package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"refield/internal/application"
	"refield/internal/domain"
	"refield/internal/ports"

	_ "modernc.org/sqlite"
)

// Store implements ports.RecordStore on SQLite
type Store struct {
	db   *sql.DB
	path string
}

// Ensure Store implements the store interfaces
var (
	_ ports.RecordStore    = (*Store)(nil)
	_ ports.RecordImporter = (*Store)(nil)
)

// NewStore creates a new SQLite store
func NewStore() *Store {
	return &Store{}
}

// Open initializes the store at the given database path. ":memory:" is
// accepted for tests.
func (s *Store) Open(path string) error {
	// Expand ~ in path
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	s.path = path

	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = path + "?_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL UNIQUE,
			library_id INTEGER NOT NULL DEFAULT 1,
			item_type TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS fields (
			record_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (record_id, name)
		);
		CREATE TABLE IF NOT EXISTS creators (
			record_id INTEGER NOT NULL,
			ord INTEGER NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			creator_type TEXT NOT NULL DEFAULT 'author',
			PRIMARY KEY (record_id, ord)
		);
		CREATE TABLE IF NOT EXISTS tags (
			record_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (record_id, name)
		);
		CREATE TABLE IF NOT EXISTS collections (
			record_id INTEGER NOT NULL,
			collection_id INTEGER NOT NULL,
			PRIMARY KEY (record_id, collection_id)
		);
		CREATE INDEX IF NOT EXISTS idx_fields_name_value ON fields(name, value);
		CREATE INDEX IF NOT EXISTS idx_creators_last ON creators(last_name);
		CREATE INDEX IF NOT EXISTS idx_tags_name ON tags(name);
		CREATE INDEX IF NOT EXISTS idx_records_library ON records(library_id);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadRecords loads full records for the given IDs in one pass,
// preserving the input ID order
func (s *Store) LoadRecords(ids []int64) ([]*domain.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	byID := make(map[int64]*domain.Record, len(ids))

	for _, chunk := range chunkIDs(ids, 500) {
		placeholders, args := inArgs(chunk)

		rows, err := s.db.Query(`
			SELECT id, key, library_id, item_type FROM records
			WHERE id IN (`+placeholders+`)
		`, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to load records: %w", err)
		}
		for rows.Next() {
			rec := &domain.Record{Fields: map[string]string{}}
			if err := rows.Scan(&rec.ID, &rec.Key, &rec.LibraryID, &rec.ItemType); err != nil {
				rows.Close()
				return nil, err
			}
			byID[rec.ID] = rec
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()

		if err := s.loadParts(placeholders, args, byID); err != nil {
			return nil, err
		}
	}

	records := make([]*domain.Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (s *Store) loadParts(placeholders string, args []any, byID map[int64]*domain.Record) error {
	rows, err := s.db.Query(`
		SELECT record_id, name, value FROM fields
		WHERE record_id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to load fields: %w", err)
	}
	for rows.Next() {
		var id int64
		var name, value string
		if err := rows.Scan(&id, &name, &value); err != nil {
			rows.Close()
			return err
		}
		if rec, ok := byID[id]; ok {
			rec.Fields[name] = value
		}
	}
	rows.Close()

	rows, err = s.db.Query(`
		SELECT record_id, first_name, last_name, creator_type FROM creators
		WHERE record_id IN (`+placeholders+`)
		ORDER BY record_id, ord
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to load creators: %w", err)
	}
	for rows.Next() {
		var id int64
		var c domain.Creator
		if err := rows.Scan(&id, &c.FirstName, &c.LastName, &c.CreatorType); err != nil {
			rows.Close()
			return err
		}
		if rec, ok := byID[id]; ok {
			rec.Creators = append(rec.Creators, c)
		}
	}
	rows.Close()

	rows, err = s.db.Query(`
		SELECT record_id, name FROM tags
		WHERE record_id IN (`+placeholders+`)
		ORDER BY record_id, name
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return err
		}
		if rec, ok := byID[id]; ok {
			rec.Tags = append(rec.Tags, name)
		}
	}
	rows.Close()

	rows, err = s.db.Query(`
		SELECT record_id, collection_id FROM collections
		WHERE record_id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to load collections: %w", err)
	}
	for rows.Next() {
		var id, coll int64
		if err := rows.Scan(&id, &coll); err != nil {
			rows.Close()
			return err
		}
		if rec, ok := byID[id]; ok {
			rec.Collections = append(rec.Collections, coll)
		}
	}
	rows.Close()

	return nil
}

// SaveRecord persists a record's fields, creators, tags, and collection
// memberships in one transaction, replacing each part wholesale
func (s *Store) SaveRecord(r *domain.Record) error {
	if r.ID == 0 {
		return fmt.Errorf("cannot save record without id")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE records SET key = ?, library_id = ?, item_type = ? WHERE id = ?
	`, r.Key, r.LibraryID, r.ItemType, r.ID)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("record %d: %w", r.ID, application.ErrNotFound)
	}

	if err := saveParts(tx, r); err != nil {
		return err
	}

	return tx.Commit()
}

// UpsertRecord inserts a record, matching on key, and fills in its ID
func (s *Store) UpsertRecord(r *domain.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO records (key, library_id, item_type) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET library_id = excluded.library_id, item_type = excluded.item_type
	`, r.Key, r.LibraryID, r.ItemType); err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}
	if err := tx.QueryRow(`SELECT id FROM records WHERE key = ?`, r.Key).Scan(&r.ID); err != nil {
		return fmt.Errorf("failed to resolve record id: %w", err)
	}

	if err := saveParts(tx, r); err != nil {
		return err
	}

	return tx.Commit()
}

func saveParts(tx *sql.Tx, r *domain.Record) error {
	for _, table := range []string{"fields", "creators", "tags", "collections"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE record_id = ?`, r.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for name, value := range r.Fields {
		if _, err := tx.Exec(`
			INSERT INTO fields (record_id, name, value) VALUES (?, ?, ?)
		`, r.ID, name, value); err != nil {
			return fmt.Errorf("failed to save field %s: %w", name, err)
		}
	}
	for i, c := range r.Creators {
		if _, err := tx.Exec(`
			INSERT INTO creators (record_id, ord, first_name, last_name, creator_type)
			VALUES (?, ?, ?, ?, ?)
		`, r.ID, i, c.FirstName, c.LastName, c.CreatorType); err != nil {
			return fmt.Errorf("failed to save creator: %w", err)
		}
	}
	for _, tag := range r.Tags {
		if _, err := tx.Exec(`
			INSERT INTO tags (record_id, name) VALUES (?, ?)
		`, r.ID, tag); err != nil {
			return fmt.Errorf("failed to save tag: %w", err)
		}
	}
	for _, coll := range r.Collections {
		if _, err := tx.Exec(`
			INSERT INTO collections (record_id, collection_id) VALUES (?, ?)
		`, r.ID, coll); err != nil {
			return fmt.Errorf("failed to save collection: %w", err)
		}
	}
	return nil
}

func chunkIDs(ids []int64, size int) [][]int64 {
	var chunks [][]int64
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}

func inArgs(ids []int64) (string, []any) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return placeholders, args
}
