package residual

import (
	"github.com/pkg/errors"

	"github.com/deepteams/vp9/internal/scan"
)

// BoolEncoder is the boolean encoder driven by the Tokenizer.
type BoolEncoder interface {
	PutBit(bit int, prob uint8) int
	PutBitUniform(bit int) int
}

// Tokenizer writes quantized levels with exactly the decisions the Decoder
// reads back. It is used to produce conforming partitions for tests and
// tools.
type Tokenizer struct {
	tables     *Tables
	tokenCache [MaxCoeffs]uint8
}

// NewTokenizer returns a Tokenizer over t.
func NewTokenizer(t *Tables) *Tokenizer {
	return &Tokenizer{tables: t}
}

// WriteCoefs tokenizes the signed levels of one transform (raster order)
// starting from context bucket ctx and returns the end-of-block position.
func (tk *Tokenizer) WriteCoefs(w BoolEncoder, pt PlaneType, isInter bool, tx TxSize,
	ctx int, so *scan.Order, levels []int32) (int, error) {
	if tx >= NumTxSizes || pt >= NumPlaneTypes || ctx < 0 || ctx >= NumContexts {
		return 0, ErrInvalidBlock
	}
	maxEOB := tx.MaxEOB()
	if so == nil || so.Len() != maxEOB {
		return 0, ErrScanMismatch
	}
	if len(levels) < maxEOB {
		return 0, ErrShortBuffer
	}
	ref := 0
	if isInter {
		ref = 1
	}
	probs := &tk.tables.FC.Coef[tx][pt][ref]
	bands := BandTable(tx)
	sc := so.Scan[:maxEOB]
	nb := so.Neighbors
	cache := &tk.tokenCache

	eob := 0
	for c := maxEOB - 1; c >= 0; c-- {
		if levels[sc[c]] != 0 {
			eob = c + 1
			break
		}
	}

	c := 0
	for c < eob {
		prob := &probs[bands[c]][ctx]
		w.PutBit(1, prob[eobNode])

		// The last level before eob is non-zero, so the run stops in time.
		for levels[sc[c]] == 0 {
			w.PutBit(0, prob[zeroNode])
			cache[sc[c]] = 0
			c++
			ctx = contextBucket(nb, cache, c)
			prob = &probs[bands[c]][ctx]
		}
		w.PutBit(1, prob[zeroNode])

		rc := sc[c]
		level := int(levels[rc])
		sign := 0
		if level < 0 {
			level = -level
			sign = 1
		}
		tok, err := tk.writeMagnitude(w, prob, level)
		if err != nil {
			return c, errors.Wrapf(err, "level %d at scan index %d", levels[rc], c)
		}
		w.PutBitUniform(sign)
		cache[rc] = energyClass[tok]
		c++
		if c < maxEOB {
			ctx = contextBucket(nb, cache, c)
		}
	}
	if c < maxEOB {
		w.PutBit(0, probs[bands[c]][ctx][eobNode])
	}
	return eob, nil
}

// writeMagnitude emits the tree decisions for a level >= 1 from the ONE
// node down and returns its token.
func (tk *Tokenizer) writeMagnitude(w BoolEncoder, prob *[UnconstrainedNodes]uint8, level int) (Token, error) {
	if level == 1 {
		w.PutBit(0, prob[oneNode])
		return OneToken, nil
	}
	p, err := tk.tables.Pareto.row(prob[oneNode])
	if err != nil {
		return 0, err
	}
	if level >= cat6MinVal && level-cat6MinVal >= 1<<uint(extraBits(tk.tables.Cat6)) {
		return 0, ErrLevelOutOfRange
	}
	w.PutBit(1, prob[oneNode])

	switch {
	case level <= 4:
		w.PutBit(0, p[lowValNode])
		if level == 2 {
			w.PutBit(0, p[twoNode])
			return TwoToken, nil
		}
		w.PutBit(1, p[twoNode])
		if level == 3 {
			w.PutBit(0, p[threeNode])
			return ThreeToken, nil
		}
		w.PutBit(1, p[threeNode])
		return FourToken, nil

	case level < cat3MinVal:
		w.PutBit(1, p[lowValNode])
		w.PutBit(0, p[highLowNode])
		if level < cat2MinVal {
			w.PutBit(0, p[catOneNode])
			writeExtra(w, level-cat1MinVal, cat1Prob[:])
			return Cat1Token, nil
		}
		w.PutBit(1, p[catOneNode])
		writeExtra(w, level-cat2MinVal, cat2Prob[:])
		return Cat2Token, nil

	case level < cat5MinVal:
		w.PutBit(1, p[lowValNode])
		w.PutBit(1, p[highLowNode])
		w.PutBit(0, p[catThreeFourNode])
		if level < cat4MinVal {
			w.PutBit(0, p[catThreeNode])
			writeExtra(w, level-cat3MinVal, cat3Prob[:])
			return Cat3Token, nil
		}
		w.PutBit(1, p[catThreeNode])
		writeExtra(w, level-cat4MinVal, cat4Prob[:])
		return Cat4Token, nil

	default:
		w.PutBit(1, p[lowValNode])
		w.PutBit(1, p[highLowNode])
		w.PutBit(1, p[catThreeFourNode])
		if level < cat6MinVal {
			w.PutBit(0, p[catFiveNode])
			writeExtra(w, level-cat5MinVal, cat5Prob[:])
			return Cat5Token, nil
		}
		w.PutBit(1, p[catFiveNode])
		writeExtra(w, level-cat6MinVal, tk.tables.Cat6)
		return Cat6Token, nil
	}
}

// extraBits counts the coded bits of a category table.
func extraBits(probs []uint8) int {
	n := 0
	for n < len(probs) && probs[n] != 0 {
		n++
	}
	return n
}

// writeExtra emits the low extraBits(probs) bits of v, MSB first.
func writeExtra(w BoolEncoder, v int, probs []uint8) {
	n := extraBits(probs)
	for i := 0; i < n; i++ {
		w.PutBit((v>>uint(n-1-i))&1, probs[i])
	}
}

// WriteBlock tokenizes one transform block and updates the plane's context
// flags, mirroring Decoder.DecodeBlock.
func (tk *Tokenizer) WriteBlock(w BoolEncoder, pc *PlaneContext, b *Block, levels []int32) (int, error) {
	if err := b.check(pc); err != nil {
		return 0, err
	}
	n := b.TxSize.Blocks()
	ctx := EntryContext(b.TxSize, pc.Above[b.X:b.X+n], pc.Left[b.Y:b.Y+n])
	so := tk.tables.Scans.Order(b.TxSize, b.TxType)
	eob, err := tk.WriteCoefs(w, b.PlaneType, b.IsInter, b.TxSize, ctx, so, levels)
	if err != nil {
		return eob, errors.Wrapf(err, "%s block at (%d,%d)", b.TxSize, b.X, b.Y)
	}
	SetContexts(pc, b.TxSize, b.X, b.Y, b.MaxX, b.MaxY, eob > 0)
	return eob, nil
}
