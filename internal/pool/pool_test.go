package pool

import (
	"runtime"
	"sync"
	"testing"
)

func TestGetPut_ExactSize(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"4x4", Size4x4},
		{"8x8", Size8x8},
		{"16x16", Size16x16},
		{"32x32", Size32x32},
		{"odd", 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := GetCoeffs(tt.size)
			if len(b) != tt.size {
				t.Errorf("GetCoeffs(%d): len = %d, want %d", tt.size, len(b), tt.size)
			}
			PutCoeffs(b)
		})
	}
}

func TestGetCoeffs_Capacity(t *testing.T) {
	tests := []struct {
		size   int
		minCap int
	}{
		{1, Size4x4},
		{16, Size4x4},
		{17, Size8x8},
		{200, Size16x16},
		{1024, Size32x32},
	}
	for _, tt := range tests {
		b := GetCoeffs(tt.size)
		if cap(b) < tt.minCap {
			t.Errorf("GetCoeffs(%d): cap = %d, want >= %d", tt.size, cap(b), tt.minCap)
		}
		PutCoeffs(b)
	}
}

func TestGetCoeffs_Zeroed(t *testing.T) {
	b := GetCoeffs(Size8x8)
	for i := range b {
		b[i] = int32(i + 1)
	}
	PutCoeffs(b)

	// Whether or not the pool hands back the same buffer, it must be clean.
	for i := 0; i < 8; i++ {
		c := GetCoeffs(Size8x8)
		for j, v := range c {
			if v != 0 {
				t.Fatalf("GetCoeffs: c[%d] = %d, want 0", j, v)
			}
		}
		PutCoeffs(c)
	}
}

func TestPutCoeffs_ForeignCapacity(t *testing.T) {
	// A buffer that does not match a size class must not poison the pool.
	PutCoeffs(make([]int32, 10, 10))
	PutCoeffs(make([]int32, 5000))
	b := GetCoeffs(Size4x4)
	if cap(b) < Size4x4 {
		t.Errorf("cap = %d after foreign Put, want >= %d", cap(b), Size4x4)
	}
}

func TestGetCoeffs_Concurrent(t *testing.T) {
	workers := runtime.GOMAXPROCS(0) * 2
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				n := sizes[(seed+i)%len(sizes)]
				b := GetCoeffs(n)
				if len(b) != n {
					t.Errorf("GetCoeffs(%d): len = %d", n, len(b))
					return
				}
				b[n-1] = int32(seed)
				PutCoeffs(b)
			}
		}(w)
	}
	wg.Wait()
}
