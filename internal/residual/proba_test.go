package residual

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/deepteams/vp9/internal/scan"
)

func TestFrameContextSize(t *testing.T) {
	require.Equal(t, 1728, FrameContextSize)
	fc := &FrameContext{}
	require.Len(t, fc.Bytes(), FrameContextSize)
}

func TestFrameContext_BytesRoundTrip(t *testing.T) {
	src := randomFrameContext(rand.New(rand.NewSource(1)))
	data := src.Bytes()

	dst := &FrameContext{}
	require.NoError(t, dst.SetBytes(data))
	require.Equal(t, src, dst)

	// Layout is [tx][plane][ref][band][ctx][node].
	require.Equal(t, src.Coef[0][0][0][0][0][1], data[1])
	require.Equal(t, src.Coef[0][0][0][0][1][0], data[3])
	require.Equal(t, src.Coef[1][0][0][0][0][0], data[FrameContextSize/4])
}

func TestFrameContext_SetBytesRejects(t *testing.T) {
	fc := &FrameContext{}
	fc.Fill(128)

	require.Error(t, fc.SetBytes(make([]byte, FrameContextSize-1)))

	data := bytes.Repeat([]byte{1}, FrameContextSize)
	data[100] = 0
	err := fc.SetBytes(data)
	require.True(t, errors.Is(err, ErrInvalidProbability), "got %v", err)

	// Failed loads leave the context untouched.
	require.Equal(t, uint8(128), fc.Coef[0][0][0][0][0][0])
}

func TestNewTables(t *testing.T) {
	fc := &FrameContext{}
	fc.Fill(128)

	tb, err := NewTables(fc, nil, 10, nil)
	require.NoError(t, err)
	require.Same(t, DefaultParetoTable(), tb.Pareto)
	require.Equal(t, cat6ProbHigh10[:], tb.Cat6)
	require.NotNil(t, tb.Scans)

	_, err = NewTables(fc, nil, 9, nil)
	require.True(t, errors.Is(err, ErrInvalidBitDepth), "got %v", err)
	_, err = NewTables(nil, nil, 8, nil)
	require.Error(t, err)
}

// patchedScans serves the generated orders except for one replaced entry.
type patchedScans struct {
	GeneratedScans
	tx    TxSize
	order *scan.Order
}

func (p patchedScans) Order(tx TxSize, txType TxType) *scan.Order {
	if tx == p.tx && txType == DctDct {
		return p.order
	}
	return p.GeneratedScans.Order(tx, txType)
}

func cloneOrder(o *scan.Order) *scan.Order {
	return &scan.Order{
		Size:      o.Size,
		Scan:      append([]int16(nil), o.Scan...),
		IScan:     append([]int16(nil), o.IScan...),
		Neighbors: append([]int16(nil), o.Neighbors...),
	}
}

func TestNewTables_ValidatesInjectedScans(t *testing.T) {
	fc := &FrameContext{}
	fc.Fill(128)
	g := DefaultScans()

	tb, err := NewTables(fc, nil, 8, g)
	require.NoError(t, err)
	require.Equal(t, g, tb.Scans)

	base := g.Order(Tx8x8, DctDct)
	negNeighbor := cloneOrder(base)
	negNeighbor.Neighbors[scan.MaxNeighbors*5] = -3
	negScan := cloneOrder(base)
	negScan.Scan[7] = -1
	short := cloneOrder(g.Order(Tx4x4, DctDct))

	tests := []struct {
		name  string
		order *scan.Order
	}{
		{"negative neighbor", negNeighbor},
		{"negative scan entry", negScan},
		{"wrong size", short},
		{"missing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTables(fc, nil, 8, patchedScans{GeneratedScans: g, tx: Tx8x8, order: tt.order})
			require.True(t, errors.Is(err, ErrScanMismatch), "got %v", err)
			require.Contains(t, err.Error(), "8x8")
		})
	}
}

func TestGeneratedScans(t *testing.T) {
	g := DefaultScans()
	tests := []struct {
		tx     TxSize
		txType TxType
		kind   scan.Kind
	}{
		{Tx4x4, DctDct, scan.KindDefault},
		{Tx4x4, AdstDct, scan.KindRow},
		{Tx8x8, DctAdst, scan.KindCol},
		{Tx16x16, AdstAdst, scan.KindDefault},
		{Tx32x32, AdstDct, scan.KindDefault},
		{Tx32x32, DctAdst, scan.KindDefault},
	}
	for _, tt := range tests {
		so := g.Order(tt.tx, tt.txType)
		require.Same(t, g.Table.Get(int(tt.tx), tt.kind), so, "%s type %d", tt.tx, tt.txType)
		require.Equal(t, tt.tx.MaxEOB(), so.Len())
	}
}

func TestCat6Probs(t *testing.T) {
	tests := []struct {
		bitDepth int
		bits     int
	}{
		{8, 14},
		{10, 16},
		{12, 18},
	}
	for _, tt := range tests {
		p, err := Cat6Probs(tt.bitDepth)
		require.NoError(t, err)
		require.Len(t, p, tt.bits+1)
		require.Equal(t, uint8(0), p[tt.bits])
		// The low bits are shared across bit depths.
		require.Equal(t, cat6Prob[:14], p[tt.bits-14:tt.bits])
	}
	_, err := Cat6Probs(16)
	require.True(t, errors.Is(err, ErrInvalidBitDepth), "got %v", err)
}

func TestBandTable(t *testing.T) {
	require.Equal(t, []uint8{0, 1, 1, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 5, 5, 5}, BandTable(Tx4x4))
	for tx := Tx8x8; tx < NumTxSizes; tx++ {
		bt := BandTable(tx)
		require.Len(t, bt, tx.MaxEOB())
		require.Equal(t, []uint8{0, 1, 1, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 4, 5}, bt[:16])
		for _, b := range bt[16:] {
			require.Equal(t, uint8(NumBands-1), b)
		}
	}
}

func TestTxSize(t *testing.T) {
	tests := []struct {
		tx     TxSize
		maxEOB int
		blocks int
		name   string
	}{
		{Tx4x4, 16, 1, "4x4"},
		{Tx8x8, 64, 2, "8x8"},
		{Tx16x16, 256, 4, "16x16"},
		{Tx32x32, 1024, 8, "32x32"},
		{NumTxSizes, 0, 0, "tx(4)"},
	}
	for _, tt := range tests {
		if tt.tx < NumTxSizes {
			if got := tt.tx.MaxEOB(); got != tt.maxEOB {
				t.Errorf("%s.MaxEOB() = %d, want %d", tt.name, got, tt.maxEOB)
			}
			if got := tt.tx.Blocks(); got != tt.blocks {
				t.Errorf("%s.Blocks() = %d, want %d", tt.name, got, tt.blocks)
			}
		}
		if got := tt.tx.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
	}
}

func TestEnergyClass(t *testing.T) {
	want := []uint8{0, 1, 2, 3, 3, 4, 4, 5, 5, 5, 5, 5}
	for tok := ZeroToken; tok < NumTokens; tok++ {
		if got := EnergyClass(tok); got != want[tok] {
			t.Errorf("EnergyClass(%d) = %d, want %d", tok, got, want[tok])
		}
	}
}
