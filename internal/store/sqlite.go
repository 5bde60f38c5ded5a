package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/randomizer/pkg/types"
)

// SQLite stores the pool in a SQLite database file. Each save builds a fresh
// database next to the target and renames it into place.
type SQLite struct {
	path string
	now  func() time.Time
}

// NewSQLite returns a SQLite store backed by the database file at path.
func NewSQLite(path string) *SQLite {
	return &SQLite{path: path, now: time.Now}
}

// Location returns the database file path.
func (s *SQLite) Location() string { return s.path }

// newTableID generates a UUID v7 for a stored table row.
func newTableID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Load reads every table and its entries in position order.
func (s *SQLite) Load() (map[string][]string, error) {
	if err := statExisting(s.path); err != nil {
		return nil, err
	}
	tables, err := s.load()
	if err != nil {
		return nil, &types.PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	return tables, nil
}

func (s *SQLite) load() (map[string][]string, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	var format string
	var version int
	row := db.QueryRow("SELECT format, version FROM schema_info LIMIT 1")
	if err := row.Scan(&format, &version); err != nil {
		return nil, fmt.Errorf("%w: reading schema info: %v", types.ErrCorruptData, err)
	}
	if err := checkHeader(format, version); err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT t.name, e.text
FROM random_tables t
JOIN table_entries e ON e.table_id = t.table_id
ORDER BY t.name, e.position`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying entries: %v", types.ErrCorruptData, err)
	}
	defer rows.Close()

	tables := make(map[string][]string)
	for rows.Next() {
		var name, text string
		if err := rows.Scan(&name, &text); err != nil {
			return nil, fmt.Errorf("%w: scanning entry: %v", types.ErrCorruptData, err)
		}
		tables[name] = append(tables[name], text)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating entries: %v", types.ErrCorruptData, err)
	}

	var tableCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM random_tables").Scan(&tableCount); err != nil {
		return nil, fmt.Errorf("%w: counting tables: %v", types.ErrCorruptData, err)
	}
	if tableCount != len(tables) {
		return nil, fmt.Errorf("%w: %d tables without entries", types.ErrCorruptData, tableCount-len(tables))
	}

	if err := validateSnapshot(tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// Save writes the snapshot into a new database file in one transaction, then
// renames it over the previous file.
func (s *SQLite) Save(tables map[string][]string) error {
	if err := s.save(tables); err != nil {
		return &types.PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

func (s *SQLite) save(tables map[string][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp database: %w", err)
	}
	tmpName := tmp.Name()
	tmp.Close()

	if err := s.writeDatabase(tmpName, tables); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp database: %w", err)
	}
	return nil
}

func (s *SQLite) writeDatabase(path string, tables map[string][]string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range schemaDDL {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	if _, err := tx.Exec("INSERT INTO schema_info (format, version) VALUES (?, ?)", formatName, formatVersion); err != nil {
		return fmt.Errorf("writing schema info: %w", err)
	}

	tableStmt, err := tx.Prepare("INSERT INTO random_tables (table_id, name, created_at) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing table insert: %w", err)
	}
	defer tableStmt.Close()

	entryStmt, err := tx.Prepare("INSERT INTO table_entries (table_id, position, text) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer entryStmt.Close()

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	createdAt := s.now().UTC().Format(time.RFC3339)
	for _, name := range names {
		id := newTableID()
		if _, err := tableStmt.Exec(id, name, createdAt); err != nil {
			return fmt.Errorf("inserting table %q: %w", name, err)
		}
		for pos, text := range tables[name] {
			if _, err := entryStmt.Exec(id, pos, text); err != nil {
				return fmt.Errorf("inserting entry %d of %q: %w", pos, name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}
