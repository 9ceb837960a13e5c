package residual

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextBucket(t *testing.T) {
	var cache [MaxCoeffs]uint8
	cache[1] = 2
	cache[4] = 4
	cache[5] = 3

	tests := []struct {
		name string
		nb   []int16
		want int
	}{
		{"two neighbors", []int16{1, 4}, 3},
		{"single neighbor repeated", []int16{5, 5}, 3},
		{"quiet neighbors", []int16{0, 2}, 0},
		{"one quiet one busy", []int16{0, 4}, 2},
		{"maximum", []int16{4, 4}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Place the pair at scan index 1.
			nb := append([]int16{0, 0}, tt.nb...)
			require.Equal(t, tt.want, contextBucket(nb, &cache, 1))
		})
	}
}

func TestEntryContext(t *testing.T) {
	tests := []struct {
		tx          TxSize
		above, left []uint8
		want        int
	}{
		{Tx4x4, []uint8{0}, []uint8{0}, 0},
		{Tx4x4, []uint8{1}, []uint8{0}, 1},
		{Tx4x4, []uint8{1}, []uint8{1}, 2},
		{Tx8x8, []uint8{0, 1}, []uint8{0, 0}, 1},
		{Tx16x16, []uint8{0, 0, 0, 1}, []uint8{1, 0, 0, 0}, 2},
		{Tx32x32, make([]uint8, 8), make([]uint8, 8), 0},
		// Only the transform's own footprint counts.
		{Tx4x4, []uint8{0, 1}, []uint8{0, 1}, 0},
	}
	for _, tt := range tests {
		if got := EntryContext(tt.tx, tt.above, tt.left); got != tt.want {
			t.Errorf("EntryContext(%s, %v, %v) = %d, want %d", tt.tx, tt.above, tt.left, got, tt.want)
		}
	}
}

func TestSetContexts(t *testing.T) {
	tests := []struct {
		name        string
		tx          TxSize
		x, y        int
		maxX, maxY  int
		hasEOB      bool
		above, left []uint8
	}{
		{
			name: "unclipped",
			tx:   Tx8x8, x: 2, y: 0,
			hasEOB: true,
			above:  []uint8{9, 9, 1, 1, 9, 9, 9, 9},
			left:   []uint8{1, 1, 9, 9, 9, 9, 9, 9},
		},
		{
			name: "no coefficients",
			tx:   Tx8x8, x: 2, y: 0,
			above: []uint8{9, 9, 0, 0, 9, 9, 9, 9},
			left:  []uint8{0, 0, 9, 9, 9, 9, 9, 9},
		},
		{
			name: "clipped at the right and bottom edge",
			tx:   Tx16x16, x: 4, y: 4,
			maxX: 6, maxY: 5,
			hasEOB: true,
			above:  []uint8{9, 9, 9, 9, 1, 1, 0, 0},
			left:   []uint8{9, 9, 9, 9, 1, 0, 0, 0},
		},
		{
			name: "entirely outside the visible area",
			tx:   Tx8x8, x: 6, y: 6,
			maxX: 5, maxY: 5,
			hasEOB: true,
			above:  []uint8{9, 9, 9, 9, 9, 9, 0, 0},
			left:   []uint8{9, 9, 9, 9, 9, 9, 0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := NewPlaneContext(8, 8)
			for i := range pc.Above {
				pc.Above[i], pc.Left[i] = 9, 9
			}
			SetContexts(pc, tt.tx, tt.x, tt.y, tt.maxX, tt.maxY, tt.hasEOB)
			require.Equal(t, tt.above, pc.Above)
			require.Equal(t, tt.left, pc.Left)
		})
	}
}

func TestPlaneContext_ResetLeft(t *testing.T) {
	pc := NewPlaneContext(4, 2)
	pc.Above[1], pc.Left[1] = 1, 1
	pc.ResetLeft()
	require.Equal(t, []uint8{0, 1, 0, 0}, pc.Above)
	require.Equal(t, []uint8{0, 0}, pc.Left)
}
