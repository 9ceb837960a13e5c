package bitio

import (
	"errors"
	"testing"
)

func mustReader(t *testing.T, data []byte) *BoolReader {
	t.Helper()
	br, err := NewBoolReader(data)
	if err != nil {
		t.Fatalf("NewBoolReader: %v", err)
	}
	return br
}

// readUniform reads n bits MSB first at probability 0x80.
func readUniform(br *BoolReader, n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		v = v<<1 | uint32(br.GetBit(0x80))
	}
	return v
}

func TestNewBoolReader_InitialState(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	br := mustReader(t, data)

	if br.eof {
		t.Error("unexpected eof after init")
	}
	if br.range_ < 127 || br.range_ > 254 {
		t.Errorf("range after marker = %d, want within [127, 254]", br.range_)
	}
}

func TestNewBoolReader_Empty(t *testing.T) {
	_, err := NewBoolReader(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}

func TestNewBoolReader_MarkerSet(t *testing.T) {
	// A leading 0xff byte decodes the marker as 1.
	_, err := NewBoolReader([]byte{0xff, 0x00, 0x00})
	if !errors.Is(err, ErrInvalidMarker) {
		t.Fatalf("err = %v, want ErrInvalidMarker", err)
	}
}

func TestBoolReader_GetBit_AllZeroData(t *testing.T) {
	// With all-zero data the value register never exceeds split.
	data := make([]byte, 16)
	br := mustReader(t, data)

	for i := 0; i < 20; i++ {
		if bit := br.GetBit(0x80); bit != 0 {
			t.Errorf("bit %d: got %d, want 0 (all-zero data)", i, bit)
		}
	}
}

func TestBoolReader_GetBit_HighData(t *testing.T) {
	// 0x7f followed by 0xff: the marker decodes as 0 and the
	// remaining symbols at prob 0x80 decode as 1.
	data := make([]byte, 16)
	for i := range data {
		data[i] = 0xff
	}
	data[0] = 0x7f
	br := mustReader(t, data)

	for i := 0; i < 20; i++ {
		if bit := br.GetBit(0x80); bit != 1 {
			t.Errorf("bit %d: got %d, want 1", i, bit)
		}
	}
}

func TestBoolReader_EOF_ShortData(t *testing.T) {
	br := mustReader(t, []byte{0x42})

	for i := 0; i < 16; i++ {
		br.GetBit(0x80)
	}

	if !br.EOF() {
		t.Error("expected eof after exhausting single byte")
	}
}

func TestBoolReader_Reset(t *testing.T) {
	bw := NewBoolWriter(0)
	bw.PutBits(0x5a, 8)
	data := bw.Finish()

	br := mustReader(t, data)
	first := readUniform(br, 8)
	if err := br.Reset(data); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if second := readUniform(br, 8); second != first || first != 0x5a {
		t.Errorf("after Reset got 0x%x, first read 0x%x, want 0x5a", second, first)
	}
}
