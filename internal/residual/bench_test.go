package residual

import (
	"math/rand"
	"testing"

	"github.com/deepteams/vp9/internal/bitio"
)

func benchmarkDecode(b *testing.B, tx TxSize) {
	rng := rand.New(rand.NewSource(1))
	tb, err := NewTables(randomFrameContext(rng), nil, 8, nil)
	if err != nil {
		b.Fatal(err)
	}
	so := tb.Scans.Order(tx, DctDct)
	n := tx.MaxEOB()

	const blocks = 64
	levels := make([][]int32, blocks)
	for i := range levels {
		levels[i] = make([]int32, n)
		for c := 0; c < n/4; c++ {
			if rng.Intn(3) == 0 {
				levels[i][so.Scan[c]] = randomLevel(rng, 1000)
			}
		}
	}
	w := bitio.NewBoolWriter(blocks * n)
	tk := NewTokenizer(tb)
	for _, l := range levels {
		if _, err := tk.WriteCoefs(w, PlaneY, false, tx, 0, so, l); err != nil {
			b.Fatal(err)
		}
	}
	data := w.Finish()

	d := NewDecoder(tb, &FrameCounts{})
	out := make([]int32, n)
	r := &bitio.BoolReader{}
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.Reset(data); err != nil {
			b.Fatal(err)
		}
		for range levels {
			clear(out)
			if _, err := d.DecodeCoefs(r, PlaneY, false, tx, [2]int16{8, 8}, 0, so, out); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkDecodeCoefs_4x4(b *testing.B)   { benchmarkDecode(b, Tx4x4) }
func BenchmarkDecodeCoefs_8x8(b *testing.B)   { benchmarkDecode(b, Tx8x8) }
func BenchmarkDecodeCoefs_16x16(b *testing.B) { benchmarkDecode(b, Tx16x16) }
func BenchmarkDecodeCoefs_32x32(b *testing.B) { benchmarkDecode(b, Tx32x32) }
