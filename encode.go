package vp9

import (
	"github.com/pkg/errors"

	"github.com/deepteams/vp9/internal/bitio"
	"github.com/deepteams/vp9/internal/residual"
)

// EncodeTile tokenizes quantized levels into a token partition for t,
// the inverse of decoding t.Blocks. levels holds one raster-order buffer
// per block; only the first TxSize.MaxEOB() entries are used. The result
// is suitable for t.Data.
func EncodeTile(fc *FrameContext, t *Tile, levels [][]int32, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(levels) != len(t.Blocks) {
		return nil, errors.Wrapf(ErrLevelCount, "%d buffers for %d blocks", len(levels), len(t.Blocks))
	}
	tables, err := opts.tables(fc)
	if err != nil {
		return nil, err
	}

	size := 0
	for _, l := range levels {
		size += len(l)
	}
	w := bitio.NewBoolWriter(size)
	tk := residual.NewTokenizer(tables)
	pcs := t.planeContexts()
	for i := range t.Blocks {
		rb, err := t.residualBlock(&t.Blocks[i])
		if err != nil {
			return nil, errors.Wrapf(err, "block %d", i)
		}
		if _, err := tk.WriteBlock(w, pcs[t.Blocks[i].Plane], &rb, levels[i]); err != nil {
			return nil, errors.Wrapf(err, "block %d", i)
		}
	}
	return w.Finish(), nil
}
