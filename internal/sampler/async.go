package sampler

import (
	"context"

	"github.com/mesh-intelligence/randomizer/pkg/types"
)

// Draw is a randomization running on its own goroutine.
type Draw struct {
	done   chan struct{}
	result []string
	err    error
}

// Go starts a draw over copies of specs and returns immediately. The caller
// keeps ownership of specs; they may be reused or mutated after Go returns.
func Go(specs []types.DrawSpec, unified bool, seed uint64) *Draw {
	own := make([]types.DrawSpec, len(specs))
	for i, spec := range specs {
		own[i] = spec.Clone()
	}

	d := &Draw{done: make(chan struct{})}
	go func() {
		defer close(d.done)
		d.result, d.err = New(seed).Randomize(own, unified)
	}()
	return d
}

// Done is closed when the draw finishes.
func (d *Draw) Done() <-chan struct{} {
	return d.done
}

// Wait blocks until the draw finishes or ctx is done. Cancelling ctx only
// abandons the wait; the draw itself runs to completion.
func (d *Draw) Wait(ctx context.Context) ([]string, error) {
	select {
	case <-d.done:
		return d.result, d.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
