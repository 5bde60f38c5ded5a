// Package pool holds the named tables of the randomizer and loads and saves
// them through a types.Store. All methods are safe for concurrent use; a
// single mutex serializes mutations.
package pool

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/randomizer/pkg/types"
)

// Pool maps table names to their entries.
type Pool struct {
	mu     sync.RWMutex
	tables map[string][]string
	dirty  bool

	store types.Store
	log   logrus.FieldLogger
}

// New creates an empty pool persisted through store. The logger is the
// write-only sink for pool activity.
func New(store types.Store, log logrus.FieldLogger) *Pool {
	return &Pool{
		tables: make(map[string][]string),
		store:  store,
		log:    log,
	}
}

// UpsertFromText parses rawText into entries and stores them under name,
// replacing any table with the same name. Blank names and blank text are
// rejected before the pool changes.
func (p *Pool) UpsertFromText(name, rawText string) error {
	if err := types.ValidateName(name); err != nil {
		return err
	}
	if err := types.ValidateText(rawText); err != nil {
		return err
	}
	entries := types.ParseEntries(rawText)

	p.mu.Lock()
	defer p.mu.Unlock()

	_, existed := p.tables[name]
	p.tables[name] = entries
	p.dirty = true

	p.log.WithFields(logrus.Fields{
		"table":    name,
		"entries":  len(entries),
		"replaced": existed,
	}).Debug("table stored")
	return nil
}

// Has reports whether a table named name exists. Empty names never exist.
func (p *Pool) Has(name string) bool {
	if name == "" {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, ok := p.tables[name]
	return ok
}

// Delete removes the named table. Deleting a missing table is a no-op.
func (p *Pool) Delete(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.tables[name]; !ok {
		return
	}
	delete(p.tables, name)
	p.dirty = true
	p.log.WithField("table", name).Debug("table deleted")
}

// Clear removes every table.
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.tables) > 0 {
		p.dirty = true
	}
	p.tables = make(map[string][]string)
	p.log.Debug("pool cleared")
}

// Names returns the table names, sorted.
func (p *Pool) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.tables))
	for name := range p.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a copy of the named table's entries.
// Returns ErrNotFound if the table does not exist.
func (p *Pool) Get(name string) ([]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	entries, ok := p.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrNotFound, name)
	}
	return types.CloneEntries(entries), nil
}

// Text returns the named table rendered one entry per line, suitable for
// editing and feeding back to UpsertFromText.
func (p *Pool) Text(name string) (string, error) {
	entries, err := p.Get(name)
	if err != nil {
		return "", err
	}
	return types.FormatEntries(entries), nil
}

// Size returns the number of entries in the named table, or 0 if it does
// not exist.
func (p *Pool) Size(name string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.tables[name])
}

// Len returns the number of tables.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.tables)
}

// IsEmpty reports whether the pool holds no tables.
func (p *Pool) IsEmpty() bool {
	return p.Len() == 0
}

// Snapshot returns a deep copy of the whole pool.
func (p *Pool) Snapshot() map[string][]string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneTables(p.tables)
}

// Dirty reports whether the pool changed since the last successful Load or Save.
func (p *Pool) Dirty() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.dirty
}

// Spec builds a validated DrawSpec over a private copy of the named table.
// Returns ErrNotFound if the table no longer exists.
func (p *Pool) Spec(name string, count int, allowRepeats bool) (types.DrawSpec, error) {
	entries, err := p.Get(name)
	if err != nil {
		return types.DrawSpec{}, err
	}
	return types.NewDrawSpec(name, entries, count, allowRepeats)
}

// Load replaces the pool with the stored snapshot. It reports false with a
// nil error when nothing was stored yet. On any failure the pool is left
// empty, never partially populated.
func (p *Pool) Load() (bool, error) {
	tables, err := p.store.Load()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.tables = make(map[string][]string)
	p.dirty = false

	if errors.Is(err, types.ErrNoData) {
		p.log.WithField("path", p.store.Location()).Info("no stored tables")
		return false, nil
	}
	if err != nil {
		p.log.WithError(err).WithField("path", p.store.Location()).Error("load failed")
		return false, err
	}

	p.tables = cloneTables(tables)
	p.log.WithFields(logrus.Fields{
		"path":   p.store.Location(),
		"tables": len(p.tables),
	}).Info("tables loaded")
	return true, nil
}

// Save writes the whole pool to the store. A failed save leaves the pool
// unchanged and still dirty so the caller can retry.
func (p *Pool) Save() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.Save(p.tables); err != nil {
		p.log.WithError(err).WithField("path", p.store.Location()).Error("save failed")
		return err
	}
	p.dirty = false
	p.log.WithFields(logrus.Fields{
		"path":   p.store.Location(),
		"tables": len(p.tables),
	}).Info("tables saved")
	return nil
}

func cloneTables(tables map[string][]string) map[string][]string {
	out := make(map[string][]string, len(tables))
	for name, entries := range tables {
		out[name] = types.CloneEntries(entries)
	}
	return out
}
