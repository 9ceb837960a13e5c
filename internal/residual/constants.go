// Package residual decodes the coefficient token syntax of VP9 transform
// blocks.
//
// For every non-skipped transform block the Decoder walks the token tree
// once per scan position, reading booleans from the tile's bool decoder with
// probabilities selected by transform size, plane type, reference type,
// frequency band and a context bucket derived from already-decoded
// neighbors. Decoded magnitudes are dequantized and stored at their raster
// position. The Tokenizer is the encoding mirror of the same tree.
package residual

import (
	"fmt"

	"github.com/pkg/errors"
)

// TxSize is a square transform size.
type TxSize uint8

const (
	Tx4x4 TxSize = iota
	Tx8x8
	Tx16x16
	Tx32x32
	NumTxSizes
)

// MaxEOB returns the number of coefficients in the transform:
// 16 << (2 * tx).
func (tx TxSize) MaxEOB() int {
	return 16 << (uint(tx) << 1)
}

// Blocks returns the transform width in 4x4 units.
func (tx TxSize) Blocks() int {
	return 1 << uint(tx)
}

// String returns the transform dimensions, e.g. "8x8".
func (tx TxSize) String() string {
	if tx >= NumTxSizes {
		return fmt.Sprintf("tx(%d)", uint8(tx))
	}
	w := 4 << uint(tx)
	return fmt.Sprintf("%dx%d", w, w)
}

// PlaneType separates luma from chroma probabilities.
type PlaneType uint8

const (
	PlaneY PlaneType = iota
	PlaneUV
	NumPlaneTypes
)

// TxType is the 1-D transform pair of a block; it selects the scan for
// transforms smaller than 32x32.
type TxType uint8

const (
	DctDct TxType = iota
	AdstDct
	DctAdst
	AdstAdst
	NumTxTypes
)

// Probability model dimensions.
const (
	RefTypes           = 2 // intra, inter
	NumBands           = 6
	NumContexts        = 6
	UnconstrainedNodes = 3
	ParetoNodes        = 8
	ParetoRows         = 255
	MaxCoeffs          = 32 * 32
)

// Token is a decoded coefficient symbol.
type Token uint8

const (
	ZeroToken Token = iota
	OneToken
	TwoToken
	ThreeToken
	FourToken
	Cat1Token
	Cat2Token
	Cat3Token
	Cat4Token
	Cat5Token
	Cat6Token
	EOBToken
	NumTokens
)

// CountToken is the reduced symbol alphabet recorded in FrameCounts.
type CountToken uint8

const (
	CountZero     CountToken = iota // ZERO_TOKEN
	CountOne                        // ONE_TOKEN
	CountTwo                        // any magnitude >= 2
	CountEOBModel                   // end of block
	NumCountTokens
)

// Base tree nodes, indexed into a CoefProbs row.
const (
	eobNode  = 0
	zeroNode = 1
	oneNode  = 2 // also the pivot selecting the pareto row
)

// Pareto tree nodes, indexed into a ParetoTable row.
const (
	lowValNode       = 0
	twoNode          = 1
	threeNode        = 2
	highLowNode      = 3
	catOneNode       = 4
	catThreeFourNode = 5
	catThreeNode     = 6
	catFiveNode      = 7
)

// Minimum magnitudes of the category tokens.
const (
	cat1MinVal = 5
	cat2MinVal = 7
	cat3MinVal = 11
	cat4MinVal = 19
	cat5MinVal = 35
	cat6MinVal = 67
)

// energyClass buckets each token for context derivation.
var energyClass = [NumTokens]uint8{0, 1, 2, 3, 3, 4, 4, 5, 5, 5, 5, 5}

// EnergyClass returns the context energy of tok.
func EnergyClass(tok Token) uint8 {
	return energyClass[tok]
}

// Extra-bit probabilities, most significant bit first.
var (
	cat1Prob = [...]uint8{159}
	cat2Prob = [...]uint8{165, 145}
	cat3Prob = [...]uint8{173, 148, 140}
	cat4Prob = [...]uint8{176, 155, 140, 135}
	cat5Prob = [...]uint8{180, 157, 141, 134, 130}
)

// Category 6 tables are zero terminated; deeper bit depths prepend
// near-certain high bits.
var (
	cat6Prob = [...]uint8{
		254, 254, 254, 252, 249, 243, 230, 196, 177, 153, 140, 133, 130, 129, 0,
	}
	cat6ProbHigh10 = [...]uint8{
		255, 255, 254, 254, 254, 252, 249, 243, 230, 196, 177, 153, 140, 133, 130, 129, 0,
	}
	cat6ProbHigh12 = [...]uint8{
		255, 255, 255, 255, 254, 254, 254, 252, 249, 243, 230, 196, 177, 153, 140, 133, 130, 129, 0,
	}
)

// Cat6Probs returns the category 6 extra-bit table for a bit depth.
func Cat6Probs(bitDepth int) ([]uint8, error) {
	switch bitDepth {
	case 8:
		return cat6Prob[:], nil
	case 10:
		return cat6ProbHigh10[:], nil
	case 12:
		return cat6ProbHigh12[:], nil
	default:
		return nil, errors.Wrapf(ErrInvalidBitDepth, "bit depth %d", bitDepth)
	}
}

// Band tables map a scan index to one of the NumBands frequency bands.
var (
	coefbandTrans4x4 = [16]uint8{0, 1, 1, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 5, 5, 5}

	coefbandTrans8x8plus = func() [MaxCoeffs]uint8 {
		var t [MaxCoeffs]uint8
		head := [...]uint8{0, 1, 1, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 4}
		copy(t[:], head[:])
		for i := len(head); i < MaxCoeffs; i++ {
			t[i] = NumBands - 1
		}
		return t
	}()
)

// BandTable returns the band of every scan index for a transform size.
// The slice aliases a package table and must not be modified.
func BandTable(tx TxSize) []uint8 {
	if tx == Tx4x4 {
		return coefbandTrans4x4[:]
	}
	return coefbandTrans8x8plus[:tx.MaxEOB()]
}
