package store

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/randomizer/pkg/types"
)

// yamlDocument is the on-disk layout of tables.yaml.
type yamlDocument struct {
	Format  string              `yaml:"format"`
	Version int                 `yaml:"version"`
	Tables  map[string][]string `yaml:"tables"`
}

// YAML stores the pool as a single human-editable YAML document.
type YAML struct {
	path string
}

// NewYAML returns a YAML store backed by path.
func NewYAML(path string) *YAML {
	return &YAML{path: path}
}

// Location returns the file path.
func (s *YAML) Location() string { return s.path }

// Load decodes the document, rejecting unknown keys.
func (s *YAML) Load() (map[string][]string, error) {
	if err := statExisting(s.path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &types.PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	var doc yamlDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &types.PersistenceError{Op: "load", Path: s.path, Err: fmt.Errorf("%w: %v", types.ErrCorruptData, err)}
	}
	if err := checkHeader(doc.Format, doc.Version); err != nil {
		return nil, &types.PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	if doc.Tables == nil {
		doc.Tables = make(map[string][]string)
	}
	if err := validateSnapshot(doc.Tables); err != nil {
		return nil, &types.PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	return doc.Tables, nil
}

// Save encodes the snapshot and replaces the file atomically.
func (s *YAML) Save(tables map[string][]string) error {
	doc := yamlDocument{Format: formatName, Version: formatVersion, Tables: tables}
	if doc.Tables == nil {
		doc.Tables = map[string][]string{}
	}
	err := writeFileAtomic(s.path, func(w *bufio.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&doc); err != nil {
			return fmt.Errorf("encoding document: %w", err)
		}
		return enc.Close()
	})
	if err != nil {
		return &types.PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}
