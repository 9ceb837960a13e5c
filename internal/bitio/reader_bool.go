// Package bitio provides the boolean (arithmetic) coder used by the VP9
// token partitions.
//
// BoolReader consumes a tile's coefficient partition and BoolWriter is its
// encoding counterpart. Both keep the range in its "minus one" form so that
// the split computation is a single multiply and shift.
package bitio

import (
	"encoding/binary"
	"math/bits"

	"github.com/pkg/errors"
)

// boolBITS is the number of cached look-ahead bits kept in the value register.
// On 64-bit Go this is always 56 (7 bytes at a time).
const boolBITS = 56

var (
	// ErrEmptyInput is returned when a bool decoder is opened on no data.
	ErrEmptyInput = errors.New("vp9: empty bool decoder input")

	// ErrInvalidMarker is returned when the leading marker bit is set.
	ErrInvalidMarker = errors.New("vp9: invalid bool decoder marker bit")
)

// BoolReader implements the VP9 boolean decoder.
//
// The algorithm maintains a probability-weighted interval [0, range] and
// narrows it on every decoded symbol. A 64-bit value register caches up
// to 56 look-ahead bits so that bulk byte loads are amortised over many
// decoded symbols.
type BoolReader struct {
	value  uint64 // current value register (BITS+8 bits active)
	range_ uint32 // current range minus 1, kept in [127, 254]
	bits   int    // number of valid bits remaining in value
	buf    []byte // input byte buffer
	pos    int    // current read position in buf
	eof    bool   // true once a read needed bytes past the end of buf
}

// NewBoolReader opens a BoolReader over data and consumes the marker bit
// that starts every VP9 bool-coded partition.
func NewBoolReader(data []byte) (*BoolReader, error) {
	br := &BoolReader{}
	if err := br.Reset(data); err != nil {
		return nil, err
	}
	return br, nil
}

// Reset re-initialises the reader over data so a pooled reader can be
// reused for the next tile.
func (br *BoolReader) Reset(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	*br = BoolReader{
		range_: 255 - 1,
		bits:   -8, // forces an immediate load of the first bytes
		buf:    data,
	}
	br.loadNewBytes()
	if br.GetBit(0x80) != 0 {
		return ErrInvalidMarker
	}
	return nil
}

// loadNewBytes reads up to 7 bytes (56 bits) from the input buffer into the
// value register. When fewer than 8 bytes remain the slow path
// loadFinalBytes is used instead.
func (br *BoolReader) loadNewBytes() {
	if br.pos+8 <= len(br.buf) {
		// Read 8 bytes big-endian and keep the top 56 bits.
		in := binary.BigEndian.Uint64(br.buf[br.pos:])
		in >>= 64 - boolBITS
		br.value = in | (br.value << boolBITS)
		br.pos += boolBITS >> 3
		br.bits += boolBITS
	} else {
		br.loadFinalBytes()
	}
}

// loadFinalBytes reads one byte at a time when the remaining buffer is too
// short for a bulk load. Past the end the register is fed zeros once and the
// reader is marked exhausted.
func (br *BoolReader) loadFinalBytes() {
	if br.pos < len(br.buf) {
		br.bits += 8
		br.value = uint64(br.buf[br.pos]) | (br.value << 8)
		br.pos++
	} else if !br.eof {
		br.value <<= 8
		br.bits += 8
		br.eof = true
	} else {
		br.bits = 0 // avoid undefined behaviour with shifts
	}
}

// GetBit decodes a single boolean symbol using the given probability
// (1..255) of the symbol being 0.
func (br *BoolReader) GetBit(prob uint8) int {
	range_ := br.range_
	if br.bits < 0 {
		br.loadNewBytes()
	}

	pos := br.bits
	split := (range_ * uint32(prob)) >> 8
	value := uint32(br.value >> uint(pos))

	var bit int
	if value > split {
		bit = 1
		range_ -= split
		br.value -= uint64(split+1) << uint(pos)
	} else {
		range_ = split + 1
	}

	// Normalise: shift range up so that the MSB is in bit 7.
	shift := 7 ^ (bits.Len32(range_) - 1)
	range_ <<= uint(shift)
	br.bits -= shift

	br.range_ = range_ - 1
	return bit
}

// EOF reports whether a decode needed bits beyond the end of the input.
// Once set, every further symbol is decoded from zero padding.
func (br *BoolReader) EOF() bool {
	return br.eof
}
