// Package randomizer provides the public API for embedding the table pool
// and the randomization engine. It exposes factory functions while keeping
// implementation details internal.
package randomizer

import (
	"github.com/mesh-intelligence/randomizer/internal/store"
	"github.com/mesh-intelligence/randomizer/internal/sampler"
	"github.com/mesh-intelligence/randomizer/pkg/types"
)

// OpenStore creates the persistence backend selected by cfg.
//
// Example:
//
//	st, err := randomizer.OpenStore(types.Config{
//	    Backend: types.BackendJSONL,
//	    DataDir: "/tmp/tables",
//	})
func OpenStore(cfg types.Config) (types.Store, error) {
	return store.Open(cfg)
}

// Randomize draws from specs with a time-based seed.
func Randomize(specs []types.DrawSpec, unified bool) ([]string, error) {
	return sampler.Randomize(specs, unified)
}

// RandomizeSeed draws from specs with a fixed seed. Equal seeds and inputs
// produce equal results.
func RandomizeSeed(specs []types.DrawSpec, unified bool, seed uint64) ([]string, error) {
	return sampler.RandomizeSeed(specs, unified, seed)
}
