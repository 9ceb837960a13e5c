// Package pool provides bucketed sync.Pool instances for the coefficient
// buffers handed out per transform block. Buffers are organized by
// transform size so a 4x4 block never pins a 32x32 allocation.
package pool

import "sync"

// Size classes, one per transform size (coefficient counts).
const (
	Size4x4   = 16
	Size8x8   = 64
	Size16x16 = 256
	Size32x32 = 1024
)

// bucketIndex returns the pool index for a given length.
func bucketIndex(n int) int {
	switch {
	case n <= Size4x4:
		return 0
	case n <= Size8x8:
		return 1
	case n <= Size16x16:
		return 2
	default:
		return 3
	}
}

var sizes = [4]int{Size4x4, Size8x8, Size16x16, Size32x32}

var pools [4]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]int32, sz)
				return &b
			},
		}
	}
}

// GetCoeffs returns a zeroed coefficient buffer of length n from the pool.
// The caller must call PutCoeffs when done.
func GetCoeffs(n int) []int32 {
	idx := bucketIndex(n)
	bp := pools[idx].Get().(*[]int32)
	b := *bp
	if cap(b) < n {
		pools[idx].Put(bp)
		return make([]int32, n)
	}
	b = b[:n]
	clear(b)
	return b
}

// PutCoeffs returns a buffer obtained from GetCoeffs to the pool.
// Buffers whose capacity does not match a size class are dropped.
func PutCoeffs(b []int32) {
	c := cap(b)
	idx := bucketIndex(c)
	if c != sizes[idx] {
		return
	}
	b = b[:c]
	pools[idx].Put(&b)
}
