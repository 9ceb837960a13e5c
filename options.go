package vp9

import (
	"runtime"

	"github.com/pkg/errors"

	"github.com/deepteams/vp9/internal/residual"
)

// Options controls token decoding.
type Options struct {
	// BitDepth is the sample bit depth (8, 10 or 12). It selects the
	// category 6 extra-bit table.
	BitDepth int

	// FrameParallel disables statistics collection, as when backward
	// adaptation is off for the frame. FrameResult.Counts is then nil.
	FrameParallel bool

	// Workers bounds the number of tiles decoded concurrently
	// (0 = runtime.GOMAXPROCS).
	Workers int

	// Pareto overrides the fixed tail probability table.
	Pareto *ParetoTable
}

// DefaultOptions returns 8-bit options with statistics enabled and one
// worker per available CPU.
func DefaultOptions() *Options {
	return &Options{
		BitDepth: 8,
	}
}

// Validate reports the first invalid field.
func (o *Options) Validate() error {
	switch o.BitDepth {
	case 8, 10, 12:
	default:
		return errors.Wrapf(ErrInvalidOptions, "BitDepth %d (must be 8, 10 or 12)", o.BitDepth)
	}
	if o.Workers < 0 {
		return errors.Wrapf(ErrInvalidOptions, "Workers %d (must be >= 0)", o.Workers)
	}
	return nil
}

// workers resolves the worker count for n tiles.
func (o *Options) workers(n int) int {
	w := o.Workers
	if w == 0 {
		w = runtime.GOMAXPROCS(0)
	}
	return max(1, min(w, n))
}

// tables builds the shared read-only inputs for a frame.
func (o *Options) tables(fc *FrameContext) (*residual.Tables, error) {
	return residual.NewTables(fc, o.Pareto, o.BitDepth, nil)
}
