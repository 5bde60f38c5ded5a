package types

import "errors"

// Config holds store selection and parameters for store.Open.
type Config struct {
	Backend string `json:"backend" yaml:"backend" mapstructure:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
}

// Supported backend names.
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
	BackendYAML   = "yaml"
	BackendMemory = "memory"
)

// DefaultBackend is used when no backend is configured.
const DefaultBackend = BackendJSONL

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendJSONL:  true,
	BackendSQLite: true,
	BackendYAML:   true,
	BackendMemory: true,
}

// Backends returns the accepted backend names in a fixed order.
func Backends() []string {
	return []string{BackendJSONL, BackendSQLite, BackendYAML, BackendMemory}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}
