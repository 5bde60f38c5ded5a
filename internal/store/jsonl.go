package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/mesh-intelligence/randomizer/pkg/types"
)

// maxLineSize bounds a single JSONL record (one whole table).
const maxLineSize = 64 << 20

// headerJSON is the first line of tables.jsonl.
type headerJSON struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
}

// tableJSON is one table record in tables.jsonl.
type tableJSON struct {
	Name    string   `json:"name"`
	Entries []string `json:"entries"`
}

// JSONL stores the pool as a header line followed by one line per table.
type JSONL struct {
	path string
}

// NewJSONL returns a JSONL store backed by path.
func NewJSONL(path string) *JSONL {
	return &JSONL{path: path}
}

// Location returns the file path.
func (s *JSONL) Location() string { return s.path }

// Load reads the snapshot. Unlike append-only logs, a malformed line is not
// skipped: the whole file is rejected with ErrCorruptData.
func (s *JSONL) Load() (map[string][]string, error) {
	if err := statExisting(s.path); err != nil {
		return nil, err
	}
	tables, err := readTablesJSONL(s.path)
	if err != nil {
		return nil, &types.PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	return tables, nil
}

// Save writes the snapshot atomically, tables ordered by name.
func (s *JSONL) Save(tables map[string][]string) error {
	err := writeFileAtomic(s.path, func(w *bufio.Writer) error {
		if err := writeJSONLine(w, headerJSON{Format: formatName, Version: formatVersion}); err != nil {
			return err
		}
		names := make([]string, 0, len(tables))
		for name := range tables {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := writeJSONLine(w, tableJSON{Name: name, Entries: tables[name]}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &types.PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

func writeJSONLine(w *bufio.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}
	return nil
}

func readTablesJSONL(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	tables := make(map[string][]string)
	lineNo := 0
	sawHeader := false
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !sawHeader {
			var h headerJSON
			if err := json.Unmarshal(line, &h); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", types.ErrCorruptData, lineNo, err)
			}
			if err := checkHeader(h.Format, h.Version); err != nil {
				return nil, err
			}
			sawHeader = true
			continue
		}

		var rec tableJSON
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", types.ErrCorruptData, lineNo, err)
		}
		if _, dup := tables[rec.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate table %q", types.ErrCorruptData, rec.Name)
		}
		tables[rec.Name] = rec.Entries
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanning: %v", types.ErrCorruptData, err)
	}
	if !sawHeader {
		return nil, fmt.Errorf("%w: missing header", types.ErrCorruptData)
	}
	if err := validateSnapshot(tables); err != nil {
		return nil, err
	}
	return tables, nil
}
