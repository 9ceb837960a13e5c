package scan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_IsValidForAllKinds(t *testing.T) {
	for s := 0; s < NumSizes; s++ {
		for k := Kind(0); k < NumKinds; k++ {
			o := New(k, 4<<uint(s))
			require.NoError(t, o.Validate(), "kind=%s size=%d", k, 4<<uint(s))
			require.Equal(t, 16<<uint(2*s), o.Len())
			require.Equal(t, int16(0), o.Scan[0], "DC must lead every scan")
		}
	}
}

func TestNew_Default4x4Order(t *testing.T) {
	o := New(KindDefault, 4)
	require.Equal(t, []int16{0, 1, 4, 8, 5, 2, 3, 6, 9, 12, 13, 10, 7, 11, 14, 15}, o.Scan)
}

func TestNew_RowAndColOrders(t *testing.T) {
	row := New(KindRow, 4)
	col := New(KindCol, 4)
	require.Equal(t, []int16{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, row.Scan)
	require.Equal(t, []int16{0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15}, col.Scan)
}

func TestNeighbors(t *testing.T) {
	tests := []struct {
		kind Kind
		rc   int16 // raster position of the probed coefficient in a 4x4
		a, b int16
	}{
		{KindDefault, 5, 1, 4}, // interior: above and left
		{KindDefault, 2, 1, 1}, // top row: left only
		{KindDefault, 8, 4, 4}, // left column: above only
		{KindRow, 5, 4, 4},     // row scan: left only
		{KindCol, 5, 1, 1},     // col scan: above only
	}
	for _, tt := range tests {
		o := New(tt.kind, 4)
		c := int(o.IScan[tt.rc])
		require.Equal(t, tt.a, o.Neighbors[MaxNeighbors*c], "%s rc=%d", tt.kind, tt.rc)
		require.Equal(t, tt.b, o.Neighbors[MaxNeighbors*c+1], "%s rc=%d", tt.kind, tt.rc)
	}
}

func TestValidate_RejectsLateNeighbor(t *testing.T) {
	o := New(KindDefault, 4)
	bad := *o
	bad.Neighbors = append([]int16(nil), o.Neighbors...)
	bad.Neighbors[MaxNeighbors*1] = 15 // last coefficient cannot feed index 1
	require.Error(t, bad.Validate())
}

func TestDefaultTable_Shared(t *testing.T) {
	require.Same(t, Default(), Default())
	require.Same(t, Default().Get(2, KindCol), Default().Get(2, KindCol))
	require.Equal(t, 32, Default().Get(3, KindDefault).Size)
}
