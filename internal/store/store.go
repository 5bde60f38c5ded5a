// Package store implements the persistence backends for the table pool.
// Each backend keeps the whole pool as one versioned snapshot and replaces it
// atomically on save, so a failed save never damages what is already stored.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/randomizer/pkg/types"
)

// Snapshot format identity shared by every file backend.
const (
	formatName    = "randomizer.tables"
	formatVersion = 1
)

// File names inside the data directory, one per backend.
const (
	jsonlFileName  = "tables.jsonl"
	sqliteFileName = "tables.db"
	yamlFileName   = "tables.yaml"
)

// Open creates the store selected by cfg. File backends create DataDir if it
// does not exist; an empty DataDir means the current directory.
func Open(cfg types.Config) (types.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Backend == types.BackendMemory {
		return NewMemory(), nil
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, &types.PersistenceError{Op: "open", Path: dataDir, Err: err}
	}

	switch cfg.Backend {
	case types.BackendJSONL:
		return NewJSONL(filepath.Join(dataDir, jsonlFileName)), nil
	case types.BackendSQLite:
		return NewSQLite(filepath.Join(dataDir, sqliteFileName)), nil
	case types.BackendYAML:
		return NewYAML(filepath.Join(dataDir, yamlFileName)), nil
	default:
		return nil, types.ErrBackendUnknown
	}
}

// cloneSnapshot deep-copies a name -> entries map. The result is never nil.
func cloneSnapshot(tables map[string][]string) map[string][]string {
	out := make(map[string][]string, len(tables))
	for name, entries := range tables {
		out[name] = types.CloneEntries(entries)
	}
	return out
}

// validateSnapshot rejects data that could not have been produced by the
// pool: blank names, empty tables, or entries containing a newline.
func validateSnapshot(tables map[string][]string) error {
	for name, entries := range tables {
		if err := types.ValidateName(name); err != nil {
			return fmt.Errorf("%w: blank table name", types.ErrCorruptData)
		}
		if len(entries) == 0 {
			return fmt.Errorf("%w: table %q has no entries", types.ErrCorruptData, name)
		}
		for _, e := range entries {
			if strings.Contains(e, "\n") {
				return fmt.Errorf("%w: table %q has a multi-line entry", types.ErrCorruptData, name)
			}
		}
	}
	return nil
}

// checkHeader verifies the format name and version of a stored snapshot.
func checkHeader(format string, version int) error {
	if format != formatName {
		return fmt.Errorf("%w: unexpected format %q", types.ErrCorruptData, format)
	}
	if version != formatVersion {
		return fmt.Errorf("%w: %d", types.ErrUnsupportedVersion, version)
	}
	return nil
}

// statExisting returns ErrNoData if path does not exist or is an empty file.
func statExisting(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return types.ErrNoData
	}
	if err != nil {
		return &types.PersistenceError{Op: "load", Path: path, Err: err}
	}
	if info.IsDir() {
		return &types.PersistenceError{Op: "load", Path: path, Err: fmt.Errorf("%w: is a directory", types.ErrCorruptData)}
	}
	if info.Size() == 0 {
		return types.ErrNoData
	}
	return nil
}
