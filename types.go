package vp9

import (
	"io"

	"github.com/deepteams/vp9/internal/residual"
)

type (
	// TxSize is a square transform size.
	TxSize = residual.TxSize
	// TxType is the 1-D transform pair of a block.
	TxType = residual.TxType
	// PlaneType separates luma from chroma probabilities.
	PlaneType = residual.PlaneType
	// FrameContext is a frame's coefficient probability model.
	FrameContext = residual.FrameContext
	// FrameCounts accumulates token statistics for backward adaptation.
	FrameCounts = residual.FrameCounts
	// ParetoTable extends a pivot probability to the tail token nodes.
	ParetoTable = residual.ParetoTable
)

// Transform sizes.
const (
	Tx4x4   = residual.Tx4x4
	Tx8x8   = residual.Tx8x8
	Tx16x16 = residual.Tx16x16
	Tx32x32 = residual.Tx32x32
)

// Transform types.
const (
	DctDct   = residual.DctDct
	AdstDct  = residual.AdstDct
	DctAdst  = residual.DctAdst
	AdstAdst = residual.AdstAdst
)

// Plane types.
const (
	PlaneY  = residual.PlaneY
	PlaneUV = residual.PlaneUV
)

// FrameContextSize is the serialized size of a FrameContext.
const FrameContextSize = residual.FrameContextSize

// NumPlanes is the number of planes per tile.
const NumPlanes = 3

// ReadParetoTable loads a row-major 255x8 tail table to replace the fixed
// one through Options.Pareto.
func ReadParetoTable(r io.Reader) (*ParetoTable, error) {
	return residual.ReadParetoTable(r)
}
