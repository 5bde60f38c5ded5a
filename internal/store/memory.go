package store

import (
	"sync"

	"github.com/mesh-intelligence/randomizer/pkg/types"
)

// Memory keeps the snapshot in process. It never touches disk.
type Memory struct {
	mu      sync.Mutex
	tables  map[string][]string
	saved   bool
	saveErr error
	loadErr error
}

// NewMemory returns an empty Memory store. Load returns ErrNoData until the
// first successful Save.
func NewMemory() *Memory {
	return &Memory{}
}

// Location returns ":memory:".
func (m *Memory) Location() string { return ":memory:" }

// Load returns a copy of the last saved snapshot.
func (m *Memory) Load() (map[string][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, &types.PersistenceError{Op: "load", Path: m.Location(), Err: m.loadErr}
	}
	if !m.saved {
		return nil, types.ErrNoData
	}
	return cloneSnapshot(m.tables), nil
}

// Save stores a copy of tables.
func (m *Memory) Save(tables map[string][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return &types.PersistenceError{Op: "save", Path: m.Location(), Err: m.saveErr}
	}
	m.tables = cloneSnapshot(tables)
	m.saved = true
	return nil
}

// SetSaveError makes every following Save fail with err (nil clears it).
func (m *Memory) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// SetLoadError makes every following Load fail with err (nil clears it).
func (m *Memory) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}
