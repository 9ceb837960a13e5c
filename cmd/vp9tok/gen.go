package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/deepteams/vp9"
)

func runGen(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	seed := fs.Int64("seed", 1, "random seed")
	tiles := fs.Int("tiles", 4, "number of tiles")
	sbCols := fs.Int("sbcols", 4, "tile width in 64x64 superblocks")
	sbRows := fs.Int("sbrows", 2, "tile height in 64x64 superblocks")
	depth := fs.Int("depth", 8, "bit depth: 8, 10 or 12")
	density := fs.Float64("density", 0.3, "fraction of non-zero levels in coded regions")
	parallel := fs.Bool("parallel", false, "mark the frame as frame-parallel")
	compress := fs.Bool("zstd", false, "zstd-compress the fixture")
	verbose := fs.Bool("v", false, "print per-tile sizes")
	output := fs.String("o", "", `output path ("-" for stdout)`)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		return fmt.Errorf("gen: missing -o\nUsage: vp9tok gen [options] -o <out.vp9t>")
	}
	if *tiles < 1 || *sbCols < 1 || *sbRows < 1 {
		return fmt.Errorf("gen: -tiles, -sbcols and -sbrows must be positive")
	}
	if *density < 0 || *density > 1 {
		return fmt.Errorf("gen: -density %.2f outside [0, 1]", *density)
	}

	opts := vp9.DefaultOptions()
	opts.BitDepth = *depth
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("gen: %w", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	g := &generator{rng: rng, density: *density, maxLevel: maxLevel(*depth)}
	frame := &vp9.Frame{
		BitDepth:      *depth,
		FrameParallel: *parallel,
		FC:            g.frameContext(),
	}
	for i := 0; i < *tiles; i++ {
		t, levels := g.tile(*sbCols, *sbRows)
		data, err := vp9.EncodeTile(frame.FC, t, levels, opts)
		if err != nil {
			return fmt.Errorf("gen: tile %d: %w", i, err)
		}
		t.Data = data
		frame.Tiles = append(frame.Tiles, *t)
		if *verbose {
			fmt.Fprintf(stderr, "tile %d: %d blocks, %d bytes\n", i, len(t.Blocks), len(data))
		}
	}

	if *output == "-" {
		return vp9.WriteFrame(stdout, frame, *compress)
	}
	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := vp9.WriteFrame(f, frame, *compress); err != nil {
		f.Close()
		return fmt.Errorf("gen: %w", err)
	}
	return f.Close()
}

// maxLevel is the largest magnitude the category 6 table of a bit depth
// can code.
func maxLevel(depth int) int {
	return 67 + 1<<uint(14+depth-8) - 1
}

type generator struct {
	rng      *rand.Rand
	density  float64
	maxLevel int
}

// frameContext draws probabilities in 1..255, biased towards continuing
// blocks and non-zero tokens so generated tiles are not trivially empty.
func (g *generator) frameContext() *vp9.FrameContext {
	data := make([]byte, vp9.FrameContextSize)
	for i := range data {
		switch i % 3 {
		case 0: // more coefficients
			data[i] = byte(20 + g.rng.Intn(180))
		default:
			data[i] = byte(1 + g.rng.Intn(255))
		}
	}
	fc := &vp9.FrameContext{}
	if err := fc.SetBytes(data); err != nil {
		panic(err) // every byte is non-zero
	}
	return fc
}

// level draws a signed magnitude, mostly small, occasionally up to the
// category 6 range.
func (g *generator) level() int32 {
	var m int
	switch k := g.rng.Intn(32); {
	case k < 16:
		m = 1
	case k < 26:
		m = 2 + g.rng.Intn(9)
	case k < 31:
		m = 11 + g.rng.Intn(56)
	default:
		m = 67 + g.rng.Intn(g.maxLevel-66)
	}
	if g.rng.Intn(2) == 0 {
		m = -m
	}
	return int32(m)
}

// tile lays out sbCols x sbRows superblocks of 4:2:0 content. Each plane
// of a superblock uses one random transform size; the last 4x4 column and
// row of the tile lie outside the visible frame.
func (g *generator) tile(sbCols, sbRows int) (*vp9.Tile, [][]int32) {
	const lumaSB = 16 // 64 pixels in 4x4 units
	t := &vp9.Tile{}
	for p := range t.Planes {
		sb := lumaSB
		if p > 0 {
			sb = lumaSB / 2
		}
		t.Planes[p] = vp9.PlaneSize{
			Cols:        sbCols * sb,
			Rows:        sbRows * sb,
			VisibleCols: sbCols*sb - 1,
			VisibleRows: sbRows*sb - 1,
		}
	}

	var levels [][]int32
	for sy := 0; sy < sbRows; sy++ {
		for sx := 0; sx < sbCols; sx++ {
			inter := g.rng.Intn(2) == 0
			for p := 0; p < vp9.NumPlanes; p++ {
				sb := lumaSB
				if p > 0 {
					sb = lumaSB / 2
				}
				tx := vp9.TxSize(g.rng.Intn(int(vp9.Tx32x32) + 1))
				n := tx.Blocks()
				dq := [2]int16{int16(4 + g.rng.Intn(60)), int16(4 + g.rng.Intn(80))}
				for y := 0; y < sb; y += n {
					for x := 0; x < sb; x += n {
						b := vp9.Block{
							Plane:   p,
							TxSize:  tx,
							TxType:  vp9.TxType(g.rng.Intn(4)),
							IsInter: inter,
							X:       sx*sb + x,
							Y:       sy*sb + y,
							Dequant: dq,
						}
						t.Blocks = append(t.Blocks, b)
						levels = append(levels, g.levels(tx))
					}
				}
			}
		}
	}
	return t, levels
}

// levels fills a random low-frequency corner of a transform, or nothing
// for a skipped block.
func (g *generator) levels(tx vp9.TxSize) []int32 {
	w := 4 << uint(tx)
	l := make([]int32, w*w)
	if g.rng.Intn(4) == 0 {
		return l
	}
	span := 1 + g.rng.Intn(w)
	for y := 0; y < span; y++ {
		for x := 0; x < span-y; x++ {
			if g.rng.Float64() < g.density {
				l[y*w+x] = g.level()
			}
		}
	}
	return l
}
