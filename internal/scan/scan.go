// Package scan builds coefficient scan orders and their context neighbor
// tables.
//
// An Order lists raster positions in the order the token decoder visits
// them. Neighbors holds, for every scan index, the two raster positions
// whose token energy forms the probability context of that index. Both
// neighbors are always visited earlier in the same scan. A position with
// a single usable neighbor repeats it, so the rounded average of the pair
// collapses to that neighbor's value.
package scan

import (
	"fmt"

	"github.com/pkg/errors"
)

// MaxNeighbors is the number of context neighbors stored per scan index.
const MaxNeighbors = 2

// Kind selects the traversal pattern of a generated scan.
type Kind int

const (
	KindDefault Kind = iota // anti-diagonal zig-zag, low frequencies first
	KindRow                 // row by row
	KindCol                 // column by column
	NumKinds
)

// String returns a short name for the scan kind.
func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindRow:
		return "row"
	case KindCol:
		return "col"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Order is an immutable scan order for one square transform.
type Order struct {
	Size      int     // transform width in coefficients
	Scan      []int16 // scan index -> raster position
	IScan     []int16 // raster position -> scan index
	Neighbors []int16 // MaxNeighbors raster positions per scan index, plus one padding pair
}

// Len returns the number of coefficients covered by the order.
func (o *Order) Len() int {
	return len(o.Scan)
}

// New generates the scan of the given kind for a size x size transform.
func New(kind Kind, size int) *Order {
	n := size * size
	o := &Order{
		Size:      size,
		Scan:      make([]int16, 0, n),
		IScan:     make([]int16, n),
		Neighbors: make([]int16, MaxNeighbors*(n+1)),
	}

	switch kind {
	case KindRow:
		for rc := 0; rc < n; rc++ {
			o.Scan = append(o.Scan, int16(rc))
		}
	case KindCol:
		for j := 0; j < size; j++ {
			for i := 0; i < size; i++ {
				o.Scan = append(o.Scan, int16(i*size+j))
			}
		}
	default:
		// Walk anti-diagonals, alternating direction like a zig-zag.
		for d := 0; d < 2*size-1; d++ {
			lo := 0
			if d >= size {
				lo = d - size + 1
			}
			hi := d
			if hi >= size {
				hi = size - 1
			}
			if d&1 == 0 {
				for i := hi; i >= lo; i-- {
					o.Scan = append(o.Scan, int16(i*size+d-i))
				}
			} else {
				for i := lo; i <= hi; i++ {
					o.Scan = append(o.Scan, int16(i*size+d-i))
				}
			}
		}
	}

	for c, rc := range o.Scan {
		o.IScan[rc] = int16(c)
	}
	o.initNeighbors(kind)
	return o
}

// initNeighbors fills the neighbor table. Row scans only look left and
// column scans only look up once both directions are available; the
// default scan averages the position above and the one to the left.
func (o *Order) initNeighbors(kind Kind) {
	l := o.Size
	for c := 1; c < len(o.Scan); c++ {
		rc := int(o.Scan[c])
		i, j := rc/l, rc%l
		var a, b int
		switch {
		case i > 0 && j > 0:
			switch kind {
			case KindCol:
				a = (i-1)*l + j
				b = a
			case KindRow:
				a = i*l + j - 1
				b = a
			default:
				a = (i-1)*l + j
				b = i*l + j - 1
			}
		case i > 0:
			a = (i-1)*l + j
			b = a
		default:
			a = i*l + j - 1
			b = a
		}
		o.Neighbors[MaxNeighbors*c+0] = int16(a)
		o.Neighbors[MaxNeighbors*c+1] = int16(b)
	}
}

// Validate checks that the order is a permutation whose neighbors are all
// visited before the position that uses them. Orders loaded from outside
// the package should pass this before being handed to a decoder.
func (o *Order) Validate() error {
	n := len(o.Scan)
	if n == 0 || len(o.IScan) != n || len(o.Neighbors) < MaxNeighbors*n {
		return errors.Errorf("scan: inconsistent table lengths (scan=%d iscan=%d neighbors=%d)",
			n, len(o.IScan), len(o.Neighbors))
	}
	seen := make([]bool, n)
	for c, rc := range o.Scan {
		if int(rc) < 0 || int(rc) >= n || seen[rc] {
			return errors.Errorf("scan: position %d at index %d is not a permutation entry", rc, c)
		}
		seen[rc] = true
		if int(o.IScan[rc]) != c {
			return errors.Errorf("scan: iscan[%d] = %d, want %d", rc, o.IScan[rc], c)
		}
	}
	for c := 1; c < n; c++ {
		for k := 0; k < MaxNeighbors; k++ {
			nb := int(o.Neighbors[MaxNeighbors*c+k])
			if nb < 0 || nb >= n || int(o.IScan[nb]) >= c {
				return errors.Errorf("scan: neighbor %d of index %d is not decoded earlier", nb, c)
			}
		}
	}
	return nil
}
