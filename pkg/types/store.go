package types

// Store persists the whole table pool as one snapshot mapping table name to
// entries. Draw settings are never stored.
type Store interface {
	// Load returns the stored snapshot. Returns ErrNoData if nothing was ever
	// saved; any other failure matches ErrPersistence.
	Load() (map[string][]string, error)

	// Save replaces the stored snapshot. A failed Save leaves previously
	// stored data untouched.
	Save(tables map[string][]string) error

	// Location describes where the snapshot lives (a file path or ":memory:").
	Location() string
}
