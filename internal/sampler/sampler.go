// Package sampler draws random entries from a set of draw specs. It works on
// private copies of the spec entries and never touches the table pool.
//
// Two modes are supported. In independent mode every spec is drawn on its
// own, honoring its own count and repeat flag, and the results are
// concatenated in spec order. In unified mode the specs form one combined
// pool: each draw first picks a table uniformly, then an entry uniformly
// within it. Only the first spec's count and repeat flag apply in unified
// mode; the other specs contribute their entries and nothing else.
package sampler

import (
	"math/rand/v2"
	"time"

	"github.com/mesh-intelligence/randomizer/pkg/types"
)

// Sampler draws from specs with its own random source. A Sampler is not safe
// for concurrent use; create one per draw or use the package functions.
type Sampler struct {
	rng *rand.Rand
}

// New returns a Sampler whose output is fully determined by seed.
func New(seed uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// TimeSeed returns a seed derived from the current time.
func TimeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// Randomize draws with a fresh time-seeded source.
func Randomize(specs []types.DrawSpec, unified bool) ([]string, error) {
	return New(TimeSeed()).Randomize(specs, unified)
}

// RandomizeSeed draws deterministically for the given seed.
func RandomizeSeed(specs []types.DrawSpec, unified bool, seed uint64) ([]string, error) {
	return New(seed).Randomize(specs, unified)
}

// Randomize returns the drawn entries. An empty specs slice yields an empty,
// non-nil result. Counts are validated before anything is drawn, so an error
// means no partial result.
func (s *Sampler) Randomize(specs []types.DrawSpec, unified bool) ([]string, error) {
	if len(specs) == 0 {
		return []string{}, nil
	}

	working := make([]types.DrawSpec, len(specs))
	for i, spec := range specs {
		working[i] = spec.Clone()
	}

	if unified {
		if err := types.ValidateUnified(working); err != nil {
			return nil, err
		}
		return s.drawUnified(working), nil
	}

	for _, spec := range working {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
	}
	return s.drawIndependent(working), nil
}

func (s *Sampler) drawIndependent(specs []types.DrawSpec) []string {
	total := 0
	for _, spec := range specs {
		total += spec.OutputCount
	}
	result := make([]string, 0, total)

	for i := range specs {
		spec := &specs[i]
		for n := 0; n < spec.OutputCount; n++ {
			result = append(result, s.pick(spec, !spec.AllowRepeats))
		}
	}
	return result
}

func (s *Sampler) drawUnified(specs []types.DrawSpec) []string {
	count := specs[0].OutputCount
	remove := !specs[0].AllowRepeats
	result := make([]string, 0, count)

	// candidates holds the indexes of tables that can still be drawn from.
	candidates := make([]int, 0, len(specs))
	for i, spec := range specs {
		if len(spec.Entries) > 0 {
			candidates = append(candidates, i)
		}
	}

	for n := 0; n < count && len(candidates) > 0; n++ {
		c := s.rng.IntN(len(candidates))
		spec := &specs[candidates[c]]
		result = append(result, s.pick(spec, remove))
		if len(spec.Entries) == 0 {
			candidates = append(candidates[:c], candidates[c+1:]...)
		}
	}
	return result
}

// pick returns a uniformly chosen entry of spec, removing it when remove is
// set. Removal swaps in the last entry, so the working order is not kept.
func (s *Sampler) pick(spec *types.DrawSpec, remove bool) string {
	i := s.rng.IntN(len(spec.Entries))
	entry := spec.Entries[i]
	if remove {
		last := len(spec.Entries) - 1
		spec.Entries[i] = spec.Entries[last]
		spec.Entries = spec.Entries[:last]
	}
	return entry
}
