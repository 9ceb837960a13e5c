// Package container reads and writes token fixture files: RIFF containers
// of form type "VP9T" carrying a coefficient probability model and one or
// more bool-coded tile partitions together with their block layout.
package container

import "encoding/binary"

// FourCC creates a FourCC value from four bytes (little-endian).
func FourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// Container FourCC values.
var (
	FourCCRIFF = FourCC('R', 'I', 'F', 'F')
	FourCCVP9T = FourCC('V', 'P', '9', 'T')
	FourCCTHDR = FourCC('T', 'H', 'D', 'R')
	FourCCPROB = FourCC('P', 'R', 'O', 'B')
	FourCCTILE = FourCC('T', 'I', 'L', 'E')
)

// Container structure sizes.
const (
	ChunkHeaderSize = 8  // Size of a chunk header
	RIFFHeaderSize  = 12 // Size of the RIFF header ("RIFFnnnnVP9T")
	THDRChunkSize   = 5  // version, bit depth, flags, tile count
	PlaneRecordSize = 8  // cols, rows, visible cols, visible rows
	BlockRecordSize = 14 // see BlockRecord
	TileHeaderSize  = 4 + NumPlanes*PlaneRecordSize
)

// Format parameters.
const (
	Version   = 1
	NumPlanes = 3

	// FlagFrameParallel marks a fixture produced with backward adaptation
	// disabled.
	FlagFrameParallel = 0x01

	// FlagInterBlock is set in BlockRecord.Flags for inter blocks.
	FlagInterBlock = 0x01
)

// Limits.
const (
	MaxChunkPayload = ^uint32(0) - ChunkHeaderSize - 1
	MaxTiles        = 1 << 12
)

// zstdMagic opens every zstd frame.
var zstdMagic = [4]byte{0x28, 0xb5, 0x2f, 0xfd}

// ReadLE16 reads a little-endian uint16 from data.
func ReadLE16(data []byte) uint16 {
	return binary.LittleEndian.Uint16(data)
}

// ReadLE32 reads a little-endian uint32 from data.
func ReadLE32(data []byte) uint32 {
	return binary.LittleEndian.Uint32(data)
}

// PutLE16 writes a little-endian uint16 to data.
func PutLE16(data []byte, v uint16) {
	binary.LittleEndian.PutUint16(data, v)
}

// PutLE32 writes a little-endian uint32 to data.
func PutLE32(data []byte, v uint32) {
	binary.LittleEndian.PutUint32(data, v)
}
