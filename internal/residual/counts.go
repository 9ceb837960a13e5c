package residual

// FrameCounts accumulates token statistics over a frame for the backward
// adaptation stage.
type FrameCounts struct {
	Coef      [NumTxSizes][NumPlaneTypes][RefTypes][NumBands][NumContexts][NumCountTokens]uint32
	EOBBranch [NumTxSizes][NumPlaneTypes][RefTypes][NumBands][NumContexts]uint32
}

// CountSink receives token statistics as the decoder resolves symbols.
// A frame picks one sink up front: *FrameCounts to accumulate, or NopSink
// when frame-parallel decoding disables adaptation.
type CountSink interface {
	CountEOBBranch(tx TxSize, pt PlaneType, ref, band, ctx int)
	CountToken(tx TxSize, pt PlaneType, ref, band, ctx int, tok CountToken)
}

// CountEOBBranch implements CountSink.
func (fc *FrameCounts) CountEOBBranch(tx TxSize, pt PlaneType, ref, band, ctx int) {
	fc.EOBBranch[tx][pt][ref][band][ctx]++
}

// CountToken implements CountSink.
func (fc *FrameCounts) CountToken(tx TxSize, pt PlaneType, ref, band, ctx int, tok CountToken) {
	fc.Coef[tx][pt][ref][band][ctx][tok]++
}

// Add merges other into fc. Merging is commutative, so per-tile counts can
// be summed in any order.
func (fc *FrameCounts) Add(other *FrameCounts) {
	for tx := range fc.Coef {
		for pt := range fc.Coef[tx] {
			for ref := range fc.Coef[tx][pt] {
				for b := range fc.Coef[tx][pt][ref] {
					for c := range fc.Coef[tx][pt][ref][b] {
						fc.EOBBranch[tx][pt][ref][b][c] += other.EOBBranch[tx][pt][ref][b][c]
						for t := range fc.Coef[tx][pt][ref][b][c] {
							fc.Coef[tx][pt][ref][b][c][t] += other.Coef[tx][pt][ref][b][c][t]
						}
					}
				}
			}
		}
	}
}

// Reset zeroes every counter.
func (fc *FrameCounts) Reset() {
	*fc = FrameCounts{}
}

// Totals returns the number of counted tokens per symbol and the number of
// EOB-node decisions.
func (fc *FrameCounts) Totals() (tokens [NumCountTokens]uint64, eobBranches uint64) {
	for tx := range fc.Coef {
		for pt := range fc.Coef[tx] {
			for ref := range fc.Coef[tx][pt] {
				for b := range fc.Coef[tx][pt][ref] {
					for c := range fc.Coef[tx][pt][ref][b] {
						eobBranches += uint64(fc.EOBBranch[tx][pt][ref][b][c])
						for t, n := range fc.Coef[tx][pt][ref][b][c] {
							tokens[t] += uint64(n)
						}
					}
				}
			}
		}
	}
	return tokens, eobBranches
}

// NopSink discards all statistics.
type NopSink struct{}

// CountEOBBranch implements CountSink.
func (NopSink) CountEOBBranch(TxSize, PlaneType, int, int, int) {}

// CountToken implements CountSink.
func (NopSink) CountToken(TxSize, PlaneType, int, int, int, CountToken) {}
