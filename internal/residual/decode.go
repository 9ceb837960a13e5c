package residual

import (
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/deepteams/vp9/internal/scan"
)

// BoolDecoder abstracts the boolean decoder consumed by the token tree.
// GetBit returns 0 with probability prob/256. EOF reports that a read
// needed data past the end of the partition.
type BoolDecoder interface {
	GetBit(prob uint8) int
	EOF() bool
}

// Decoder decodes the coefficient tokens of one tile's transform blocks.
// It is not safe for concurrent use; each tile worker owns one.
type Decoder struct {
	tables *Tables
	counts CountSink

	// tokenCache holds the energy class of each raster position decoded
	// so far in the current block. Only positions earlier in the scan are
	// ever read, so it is never cleared between blocks.
	tokenCache [MaxCoeffs]uint8
}

// NewDecoder returns a Decoder over t. A nil counts disables statistics.
func NewDecoder(t *Tables, counts CountSink) *Decoder {
	d := &Decoder{}
	d.Reset(t, counts)
	return d
}

// Reset rebinds the decoder to new tables and a new statistics sink.
func (d *Decoder) Reset(t *Tables, counts CountSink) {
	if counts == nil {
		counts = NopSink{}
	}
	d.tables = t
	d.counts = counts
}

var decoderPool sync.Pool

// AcquireDecoder returns a pooled Decoder bound to t and counts.
func AcquireDecoder(t *Tables, counts CountSink) *Decoder {
	if v := decoderPool.Get(); v != nil {
		d := v.(*Decoder)
		d.Reset(t, counts)
		return d
	}
	return NewDecoder(t, counts)
}

// ReleaseDecoder returns d to the pool. The caller must not use d after
// this call.
func ReleaseDecoder(d *Decoder) {
	if d == nil {
		return
	}
	d.tables = nil
	d.counts = nil
	decoderPool.Put(d)
}

// DecodeCoefs decodes one transform block's tokens into out, starting from
// context bucket ctx, and returns the end-of-block position.
//
// out is indexed by raster position and must hold at least tx.MaxEOB()
// entries. Positions visited before the end of block are written,
// including zeros; positions at or past it are left untouched, so callers
// supply a zeroed buffer.
func (d *Decoder) DecodeCoefs(r BoolDecoder, pt PlaneType, isInter bool, tx TxSize,
	dq [2]int16, ctx int, so *scan.Order, out []int32) (int, error) {
	if tx >= NumTxSizes || pt >= NumPlaneTypes || ctx < 0 || ctx >= NumContexts {
		return 0, ErrInvalidBlock
	}
	maxEOB := tx.MaxEOB()
	if so == nil || so.Len() != maxEOB || len(so.Neighbors) < scan.MaxNeighbors*maxEOB {
		return 0, ErrScanMismatch
	}
	if len(out) < maxEOB {
		return 0, ErrShortBuffer
	}

	ref := 0
	if isInter {
		ref = 1
	}
	probs := &d.tables.FC.Coef[tx][pt][ref]
	pareto := d.tables.Pareto
	cat6 := d.tables.Cat6
	counts := d.counts
	bands := BandTable(tx)
	sc := so.Scan[:maxEOB]
	nb := so.Neighbors
	cache := &d.tokenCache
	dqShift := 0
	if tx == Tx32x32 {
		dqShift = 1
	}
	dqv := int(dq[0])

	c := 0
	for c < maxEOB {
		if r.EOF() {
			return c, ErrBitstreamExhausted
		}
		band := int(bands[c])
		prob := &probs[band][ctx]
		counts.CountEOBBranch(tx, pt, ref, band, ctx)
		if r.GetBit(prob[eobNode]) == 0 {
			counts.CountToken(tx, pt, ref, band, ctx, CountEOBModel)
			break
		}

		for r.GetBit(prob[zeroNode]) == 0 {
			counts.CountToken(tx, pt, ref, band, ctx, CountZero)
			dqv = int(dq[1])
			rc := sc[c]
			out[rc] = 0
			cache[rc] = 0
			c++
			if c >= maxEOB {
				// Zero run reaching the end of the block: no EOB token.
				return c, exhausted(r)
			}
			ctx = contextBucket(nb, cache, c)
			band = int(bands[c])
			prob = &probs[band][ctx]
		}

		var val int
		var tok Token
		if r.GetBit(prob[oneNode]) == 0 {
			counts.CountToken(tx, pt, ref, band, ctx, CountOne)
			val, tok = 1, OneToken
		} else {
			counts.CountToken(tx, pt, ref, band, ctx, CountTwo)
			p, err := pareto.row(prob[oneNode])
			if err != nil {
				return c, err
			}
			val, tok = readLarge(r, p, cat6)
		}

		v := (int64(val) * int64(dqv)) >> dqShift
		if r.GetBit(128) != 0 {
			v = -v
		}
		rc := sc[c]
		out[rc] = clampCoeff(v)
		cache[rc] = energyClass[tok]
		c++
		if c < maxEOB {
			ctx = contextBucket(nb, cache, c)
		}
		dqv = int(dq[1])
	}
	return c, exhausted(r)
}

// clampCoeff saturates a dequantized value to the coefficient range. Large
// category 6 levels at 12 bits times a large factor exceed int32.
func clampCoeff(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

func exhausted(r BoolDecoder) error {
	if r.EOF() {
		return ErrBitstreamExhausted
	}
	return nil
}

// readLarge decodes a magnitude of at least 2 from the pareto tail row p.
// The nesting order of the reads is part of the bitstream format.
func readLarge(r BoolDecoder, p *[ParetoNodes]uint8, cat6 []uint8) (int, Token) {
	if r.GetBit(p[lowValNode]) == 0 {
		if r.GetBit(p[twoNode]) == 0 {
			return 2, TwoToken
		}
		if r.GetBit(p[threeNode]) == 0 {
			return 3, ThreeToken
		}
		return 4, FourToken
	}
	if r.GetBit(p[highLowNode]) == 0 {
		if r.GetBit(p[catOneNode]) == 0 {
			return cat1MinVal + readExtra(r, cat1Prob[:]), Cat1Token
		}
		return cat2MinVal + readExtra(r, cat2Prob[:]), Cat2Token
	}
	if r.GetBit(p[catThreeFourNode]) == 0 {
		if r.GetBit(p[catThreeNode]) == 0 {
			return cat3MinVal + readExtra(r, cat3Prob[:]), Cat3Token
		}
		return cat4MinVal + readExtra(r, cat4Prob[:]), Cat4Token
	}
	if r.GetBit(p[catFiveNode]) == 0 {
		return cat5MinVal + readExtra(r, cat5Prob[:]), Cat5Token
	}
	return cat6MinVal + readExtra(r, cat6), Cat6Token
}

// readExtra reads category extra bits MSB first. Iteration stops at a zero
// terminator or the end of the table, whichever comes first.
func readExtra(r BoolDecoder, probs []uint8) int {
	v := 0
	for _, p := range probs {
		if p == 0 {
			break
		}
		v = v<<1 | r.GetBit(p)
	}
	return v
}

// DecodeBlock decodes one transform block of a plane: it derives the entry
// context from the plane's above/left flags, looks up the scan, decodes the
// tokens into out and records whether the block had coefficients.
func (d *Decoder) DecodeBlock(r BoolDecoder, pc *PlaneContext, b *Block, out []int32) (int, error) {
	if err := b.check(pc); err != nil {
		return 0, err
	}
	n := b.TxSize.Blocks()
	ctx := EntryContext(b.TxSize, pc.Above[b.X:b.X+n], pc.Left[b.Y:b.Y+n])
	so := d.tables.Scans.Order(b.TxSize, b.TxType)
	eob, err := d.DecodeCoefs(r, b.PlaneType, b.IsInter, b.TxSize, b.Dequant, ctx, so, out)
	if err != nil {
		return eob, errors.Wrapf(err, "%s block at (%d,%d)", b.TxSize, b.X, b.Y)
	}
	SetContexts(pc, b.TxSize, b.X, b.Y, b.MaxX, b.MaxY, eob > 0)
	return eob, nil
}
