package vp9

import (
	"github.com/pkg/errors"

	"github.com/deepteams/vp9/internal/residual"
)

// PlaneSize is the extent of one plane of a tile in 4x4 units. Cols and
// Rows size the above/left context arrays; VisibleCols and VisibleRows mark
// the frame edge past which context flags are cleared (0 = no clipping).
type PlaneSize struct {
	Cols, Rows               int
	VisibleCols, VisibleRows int
}

// Block is one transform block of a tile, in coding order.
type Block struct {
	Plane   int // 0 = Y, 1 = U, 2 = V
	TxSize  TxSize
	TxType  TxType
	IsInter bool

	// X and Y locate the block in its plane, in 4x4 units relative to the
	// tile.
	X, Y int

	// Dequant holds the DC and AC dequantization factors.
	Dequant [2]int16
}

// PlaneType returns the probability plane type of the block.
func (b *Block) PlaneType() PlaneType {
	if b.Plane == 0 {
		return PlaneY
	}
	return PlaneUV
}

// Tile is an independently decodable region: its token partition and the
// transform blocks coded in it.
type Tile struct {
	Data   []byte
	Planes [NumPlanes]PlaneSize
	Blocks []Block
}

// planeContexts allocates the tile's zeroed above/left arrays.
func (t *Tile) planeContexts() [NumPlanes]*residual.PlaneContext {
	var pcs [NumPlanes]*residual.PlaneContext
	for i, ps := range t.Planes {
		pcs[i] = residual.NewPlaneContext(ps.Cols, ps.Rows)
	}
	return pcs
}

// residualBlock maps b onto the plane it belongs to.
func (t *Tile) residualBlock(b *Block) (residual.Block, error) {
	if b.Plane < 0 || b.Plane >= NumPlanes {
		return residual.Block{}, errors.Wrapf(ErrInvalidBlock, "plane %d", b.Plane)
	}
	ps := t.Planes[b.Plane]
	return residual.Block{
		PlaneType: b.PlaneType(),
		TxSize:    b.TxSize,
		TxType:    b.TxType,
		IsInter:   b.IsInter,
		X:         b.X,
		Y:         b.Y,
		MaxX:      ps.VisibleCols,
		MaxY:      ps.VisibleRows,
		Dequant:   b.Dequant,
	}, nil
}
