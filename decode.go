package vp9

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/deepteams/vp9/internal/bitio"
	"github.com/deepteams/vp9/internal/pool"
	"github.com/deepteams/vp9/internal/residual"
)

// TileResult holds the dequantized coefficients of one tile, one buffer
// per block in coding order, indexed by raster position.
type TileResult struct {
	Coeffs [][]int32
	EOBs   []int
}

// Release returns the coefficient buffers to the shared pool. The result
// must not be used afterwards.
func (tr *TileResult) Release() {
	for i, c := range tr.Coeffs {
		pool.PutCoeffs(c)
		tr.Coeffs[i] = nil
	}
	tr.Coeffs = nil
}

// FrameResult is the output of DecodeTiles.
type FrameResult struct {
	Tiles []TileResult

	// Counts holds the merged statistics of all tiles; nil in
	// frame-parallel mode.
	Counts *FrameCounts
}

// Release releases every tile result.
func (fr *FrameResult) Release() {
	for i := range fr.Tiles {
		fr.Tiles[i].Release()
	}
}

// DecodeTiles decodes the coefficient tokens of every tile of a frame.
//
// Tiles are decoded concurrently by up to opts.Workers goroutines. Each
// tile starts from zeroed above/left contexts and its own bit source; the
// probability model is shared read-only. When several tiles fail, the
// error of the lowest-indexed tile is returned.
func DecodeTiles(fc *FrameContext, tiles []Tile, opts *Options) (*FrameResult, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(tiles) == 0 {
		return nil, ErrNoTiles
	}
	tables, err := opts.tables(fc)
	if err != nil {
		return nil, err
	}

	res := &FrameResult{Tiles: make([]TileResult, len(tiles))}
	var tileCounts []FrameCounts
	if !opts.FrameParallel {
		tileCounts = make([]FrameCounts, len(tiles))
	}
	errs := make([]error, len(tiles))

	decodeOne := func(i int) {
		var sink residual.CountSink
		if tileCounts != nil {
			sink = &tileCounts[i]
		}
		res.Tiles[i], errs[i] = decodeTile(&tiles[i], tables, sink)
	}

	numWorkers := opts.workers(len(tiles))
	if numWorkers == 1 {
		for i := range tiles {
			decodeOne(i)
		}
	} else {
		work := make(chan int, len(tiles))
		for i := range tiles {
			work <- i
		}
		close(work)

		var wg sync.WaitGroup
		for w := 0; w < numWorkers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range work {
					decodeOne(i)
				}
			}()
		}
		wg.Wait()
	}

	for i, err := range errs {
		if err != nil {
			res.Release()
			return nil, errors.Wrapf(err, "tile %d", i)
		}
	}
	if tileCounts != nil {
		res.Counts = &FrameCounts{}
		for i := range tileCounts {
			res.Counts.Add(&tileCounts[i])
		}
	}
	return res, nil
}

// decodeTile decodes one tile's blocks in order. On failure every buffer
// handed out so far is returned to the pool.
func decodeTile(t *Tile, tables *residual.Tables, counts residual.CountSink) (TileResult, error) {
	var tr TileResult
	r, err := bitio.NewBoolReader(t.Data)
	if err != nil {
		return tr, err
	}
	pcs := t.planeContexts()
	d := residual.AcquireDecoder(tables, counts)
	defer residual.ReleaseDecoder(d)

	tr.Coeffs = make([][]int32, 0, len(t.Blocks))
	tr.EOBs = make([]int, 0, len(t.Blocks))
	for i := range t.Blocks {
		rb, err := t.residualBlock(&t.Blocks[i])
		if err != nil {
			tr.Release()
			return TileResult{}, errors.Wrapf(err, "block %d", i)
		}
		n := pool.Size4x4 // DecodeBlock rejects invalid sizes
		if rb.TxSize < residual.NumTxSizes {
			n = rb.TxSize.MaxEOB()
		}
		out := pool.GetCoeffs(n)
		eob, err := d.DecodeBlock(r, pcs[t.Blocks[i].Plane], &rb, out)
		if err != nil {
			pool.PutCoeffs(out)
			tr.Release()
			return TileResult{}, errors.Wrapf(err, "block %d", i)
		}
		tr.Coeffs = append(tr.Coeffs, out)
		tr.EOBs = append(tr.EOBs, eob)
	}
	return tr, nil
}
