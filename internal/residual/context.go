package residual

import "github.com/deepteams/vp9/internal/scan"

// contextBucket averages, rounding up, the token energy of the two
// neighbors of scan index c.
func contextBucket(nb []int16, cache *[MaxCoeffs]uint8, c int) int {
	return (1 + int(cache[nb[scan.MaxNeighbors*c+0]]) +
		int(cache[nb[scan.MaxNeighbors*c+1]])) >> 1
}

// PlaneContext holds one plane's above and left non-zero flags for a tile,
// one byte per 4x4 column (Above) or row (Left). The tile owns the arrays;
// each block reads and rewrites only its own footprint.
type PlaneContext struct {
	Above []uint8
	Left  []uint8
}

// NewPlaneContext allocates zeroed context arrays for a plane that is cols
// by rows 4x4 units.
func NewPlaneContext(cols, rows int) *PlaneContext {
	return &PlaneContext{
		Above: make([]uint8, cols),
		Left:  make([]uint8, rows),
	}
}

// ResetLeft clears the left flags, as happens at the start of every
// superblock row.
func (pc *PlaneContext) ResetLeft() {
	clear(pc.Left)
}

// EntryContext derives the initial context bucket of a transform from the
// above and left flags it covers: 0, 1 or 2.
func EntryContext(tx TxSize, above, left []uint8) int {
	n := tx.Blocks()
	return anyNonZero(above[:n]) + anyNonZero(left[:n])
}

func anyNonZero(flags []uint8) int {
	for _, f := range flags {
		if f != 0 {
			return 1
		}
	}
	return 0
}

// SetContexts records whether a transform had coefficients over its above
// and left footprint starting at (x, y). Entries at or beyond the visible
// edge maxX/maxY are cleared instead; a limit of 0 disables clipping.
func SetContexts(pc *PlaneContext, tx TxSize, x, y, maxX, maxY int, hasEOB bool) {
	setFlags(pc.Above[x:x+tx.Blocks()], x, maxX, hasEOB)
	setFlags(pc.Left[y:y+tx.Blocks()], y, maxY, hasEOB)
}

func setFlags(flags []uint8, off, limit int, hasEOB bool) {
	var v uint8
	if hasEOB {
		v = 1
	}
	visible := len(flags)
	if limit > 0 && off+visible > limit {
		visible = max(limit-off, 0)
	}
	for i := range flags {
		if i < visible {
			flags[i] = v
		} else {
			flags[i] = 0
		}
	}
}
