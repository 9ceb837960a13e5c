package residual

import (
	"github.com/pkg/errors"

	"github.com/deepteams/vp9/internal/scan"
)

// CoefProbs holds the three base-node probabilities for every band and
// context bucket of one (transform size, plane type, reference) triple.
type CoefProbs [NumBands][NumContexts][UnconstrainedNodes]uint8

// FrameContext is the coefficient probability model of one frame. It is
// read-only while the frame's tiles are decoded.
type FrameContext struct {
	Coef [NumTxSizes][NumPlaneTypes][RefTypes]CoefProbs
}

// FrameContextSize is the serialized size of a FrameContext in bytes.
const FrameContextSize = int(NumTxSizes) * int(NumPlaneTypes) * RefTypes *
	NumBands * NumContexts * UnconstrainedNodes

// Fill sets every probability to p.
func (fc *FrameContext) Fill(p uint8) {
	fc.forEach(func(v *uint8) { *v = p })
}

// Bytes serializes the probabilities in [tx][plane][ref][band][ctx][node]
// order.
func (fc *FrameContext) Bytes() []byte {
	out := make([]byte, 0, FrameContextSize)
	fc.forEach(func(v *uint8) { out = append(out, *v) })
	return out
}

// SetBytes loads probabilities serialized by Bytes. Zero probabilities are
// rejected.
func (fc *FrameContext) SetBytes(data []byte) error {
	if len(data) != FrameContextSize {
		return errors.Errorf("vp9: frame context is %d bytes, want %d", len(data), FrameContextSize)
	}
	for _, p := range data {
		if p == 0 {
			return errors.Wrap(ErrInvalidProbability, "frame context")
		}
	}
	i := 0
	fc.forEach(func(v *uint8) {
		*v = data[i]
		i++
	})
	return nil
}

func (fc *FrameContext) forEach(fn func(v *uint8)) {
	for tx := range fc.Coef {
		for pt := range fc.Coef[tx] {
			for ref := range fc.Coef[tx][pt] {
				probs := &fc.Coef[tx][pt][ref]
				for b := range probs {
					for c := range probs[b] {
						for n := range probs[b][c] {
							fn(&probs[b][c][n])
						}
					}
				}
			}
		}
	}
}

// ScanProvider returns the scan order of a transform.
type ScanProvider interface {
	Order(tx TxSize, txType TxType) *scan.Order
}

// GeneratedScans serves orders from a generated scan.Table. Transform types
// with a vertical ADST use the row scan, horizontal ADST the column scan,
// and 32x32 transforms always use the default scan.
type GeneratedScans struct {
	Table *scan.Table
}

// DefaultScans returns a provider backed by the shared generated table.
func DefaultScans() GeneratedScans {
	return GeneratedScans{Table: scan.Default()}
}

// Order implements ScanProvider.
func (g GeneratedScans) Order(tx TxSize, txType TxType) *scan.Order {
	kind := scan.KindDefault
	if tx != Tx32x32 {
		switch txType {
		case AdstDct:
			kind = scan.KindRow
		case DctAdst:
			kind = scan.KindCol
		}
	}
	return g.Table.Get(int(tx), kind)
}

// Tables bundles the immutable inputs shared by every decoder of a frame.
type Tables struct {
	FC     *FrameContext
	Pareto *ParetoTable
	Cat6   []uint8
	Scans  ScanProvider
}

// NewTables validates and bundles the frame inputs. A nil pareto table
// selects the fixed table and a nil provider the generated scans; the
// orders of any other provider are validated up front.
func NewTables(fc *FrameContext, pareto *ParetoTable, bitDepth int, scans ScanProvider) (*Tables, error) {
	if fc == nil {
		return nil, errors.New("vp9: nil frame context")
	}
	cat6, err := Cat6Probs(bitDepth)
	if err != nil {
		return nil, err
	}
	if pareto == nil {
		pareto = DefaultParetoTable()
	}
	if scans == nil {
		scans = DefaultScans()
	} else if err := validateScans(scans); err != nil {
		return nil, err
	}
	return &Tables{FC: fc, Pareto: pareto, Cat6: cat6, Scans: scans}, nil
}

// validateScans checks every order an injected provider serves. The
// provider must keep returning the orders it served here.
func validateScans(scans ScanProvider) error {
	for tx := Tx4x4; tx < NumTxSizes; tx++ {
		for tt := DctDct; tt < NumTxTypes; tt++ {
			so := scans.Order(tx, tt)
			if so == nil || so.Len() != tx.MaxEOB() {
				return errors.Wrapf(ErrScanMismatch, "%s type %d", tx, tt)
			}
			if err := so.Validate(); err != nil {
				return errors.Wrapf(ErrScanMismatch, "%s type %d: %v", tx, tt, err)
			}
		}
	}
	return nil
}
