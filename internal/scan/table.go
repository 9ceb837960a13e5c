package scan

import "sync"

// NumSizes is the number of square transform sizes (4, 8, 16 and 32).
const NumSizes = 4

// Table holds one order per transform size and scan kind. It is built once
// and shared read-only by every decoder.
type Table struct {
	orders [NumSizes][NumKinds]*Order
}

// NewTable generates the orders for all sizes and kinds.
func NewTable() *Table {
	t := &Table{}
	for s := 0; s < NumSizes; s++ {
		for k := Kind(0); k < NumKinds; k++ {
			t.orders[s][k] = New(k, 4<<uint(s))
		}
	}
	return t
}

// Get returns the order for a 4<<sizeLog2 transform.
func (t *Table) Get(sizeLog2 int, kind Kind) *Order {
	return t.orders[sizeLog2][kind]
}

var defaultTable = sync.OnceValue(NewTable)

// Default returns the process-wide generated table.
func Default() *Table {
	return defaultTable()
}
