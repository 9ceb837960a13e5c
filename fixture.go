package vp9

import (
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/deepteams/vp9/internal/container"
)

// Frame is the decodable content of a token fixture file.
type Frame struct {
	BitDepth      int
	FrameParallel bool
	FC            *FrameContext
	Tiles         []Tile
}

// Decode decodes the frame's tiles. The frame's bit depth overrides
// opts.BitDepth, and a frame marked frame-parallel is always decoded
// without statistics.
func (f *Frame) Decode(opts *Options) (*FrameResult, error) {
	o := DefaultOptions()
	if opts != nil {
		*o = *opts
	}
	o.BitDepth = f.BitDepth
	o.FrameParallel = o.FrameParallel || f.FrameParallel
	return DecodeTiles(f.FC, f.Tiles, o)
}

// ReadFrame reads a fixture file, compressed or not.
func ReadFrame(r io.Reader) (*Frame, error) {
	fx, err := container.ReadFixture(r)
	if err != nil {
		return nil, err
	}
	f := &Frame{
		BitDepth:      int(fx.Header.BitDepth),
		FrameParallel: fx.Header.FrameParallel(),
		FC:            &FrameContext{},
		Tiles:         make([]Tile, len(fx.Tiles)),
	}
	if err := f.FC.SetBytes(fx.Probs); err != nil {
		return nil, err
	}
	for i := range fx.Tiles {
		ft := &fx.Tiles[i]
		t := &f.Tiles[i]
		t.Data = ft.Payload
		for p, pd := range ft.Planes {
			t.Planes[p] = PlaneSize{
				Cols:        int(pd.Cols),
				Rows:        int(pd.Rows),
				VisibleCols: int(pd.VisibleCols),
				VisibleRows: int(pd.VisibleRows),
			}
		}
		t.Blocks = make([]Block, len(ft.Blocks))
		for j, br := range ft.Blocks {
			t.Blocks[j] = Block{
				Plane:   int(br.Plane),
				TxSize:  TxSize(br.TxSize),
				TxType:  TxType(br.TxType),
				IsInter: br.Flags&container.FlagInterBlock != 0,
				X:       int(br.X),
				Y:       int(br.Y),
				Dequant: br.Dequant,
			}
		}
	}
	return f, nil
}

// WriteFrame writes f as a fixture file, zstd-compressed when compress is
// set.
func WriteFrame(w io.Writer, f *Frame, compress bool) error {
	if f.FC == nil {
		return errors.New("vp9: frame has no probability model")
	}
	fx := &container.Fixture{
		Header: container.Header{
			Version:  container.Version,
			BitDepth: uint8(f.BitDepth),
		},
		Probs: f.FC.Bytes(),
		Tiles: make([]container.Tile, len(f.Tiles)),
	}
	if f.FrameParallel {
		fx.Header.Flags |= container.FlagFrameParallel
	}
	for i := range f.Tiles {
		t := &f.Tiles[i]
		ft := &fx.Tiles[i]
		ft.Payload = t.Data
		for p, ps := range t.Planes {
			if !fitsU16(ps.Cols, ps.Rows, ps.VisibleCols, ps.VisibleRows) {
				return errors.Errorf("vp9: tile %d plane %d size out of range", i, p)
			}
			ft.Planes[p] = container.PlaneDims{
				Cols:        uint16(ps.Cols),
				Rows:        uint16(ps.Rows),
				VisibleCols: uint16(ps.VisibleCols),
				VisibleRows: uint16(ps.VisibleRows),
			}
		}
		ft.Blocks = make([]container.BlockRecord, len(t.Blocks))
		for j, b := range t.Blocks {
			if b.Plane < 0 || b.Plane >= NumPlanes || !fitsU16(b.X, b.Y) {
				return errors.Wrapf(ErrInvalidBlock, "tile %d block %d", i, j)
			}
			var flags uint8
			if b.IsInter {
				flags |= container.FlagInterBlock
			}
			ft.Blocks[j] = container.BlockRecord{
				Plane:   uint8(b.Plane),
				TxSize:  uint8(b.TxSize),
				TxType:  uint8(b.TxType),
				Flags:   flags,
				X:       uint16(b.X),
				Y:       uint16(b.Y),
				Dequant: b.Dequant,
			}
		}
	}
	return container.WriteFixture(w, fx, compress)
}

func fitsU16(vs ...int) bool {
	for _, v := range vs {
		if v < 0 || v > math.MaxUint16 {
			return false
		}
	}
	return true
}
