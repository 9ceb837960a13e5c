package residual

import "github.com/pkg/errors"

// Block describes one transform block of a plane within a tile.
type Block struct {
	PlaneType PlaneType
	TxSize    TxSize
	TxType    TxType
	IsInter   bool

	// X and Y locate the transform in the plane's context arrays, in 4x4
	// units.
	X, Y int

	// MaxX and MaxY are the visible extent of the plane in 4x4 units.
	// Context flags at or beyond them are written as zero. Zero disables
	// clipping.
	MaxX, MaxY int

	// Dequant holds the DC and AC dequantization factors.
	Dequant [2]int16
}

func (b *Block) check(pc *PlaneContext) error {
	if b.TxSize >= NumTxSizes || b.PlaneType >= NumPlaneTypes || b.TxType >= NumTxTypes {
		return errors.Wrapf(ErrInvalidBlock, "tx=%d plane=%d type=%d", b.TxSize, b.PlaneType, b.TxType)
	}
	n := b.TxSize.Blocks()
	if b.X < 0 || b.Y < 0 || b.X+n > len(pc.Above) || b.Y+n > len(pc.Left) {
		return errors.Wrapf(ErrBlockOutOfBounds, "%s block at (%d,%d) in %dx%d context",
			b.TxSize, b.X, b.Y, len(pc.Above), len(pc.Left))
	}
	return nil
}
