package container

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrInvalidRIFF  = errors.New("vp9t: invalid RIFF header")
	ErrInvalidForm  = errors.New("vp9t: invalid VP9T signature")
	ErrTruncated    = errors.New("vp9t: truncated data")
	ErrInvalidChunk = errors.New("vp9t: invalid chunk")
	ErrTooLarge     = errors.New("vp9t: file too large")
	ErrVersion      = errors.New("vp9t: unsupported version")
)

// Chunk represents a single RIFF chunk with its FourCC tag and payload.
type Chunk struct {
	FourCC  uint32
	Payload []byte
}

// RIFFHeader holds the parsed RIFF container header.
type RIFFHeader struct {
	FileSize uint32 // total RIFF file size (excluding 8-byte RIFF header)
}

// ParseRIFFHeader validates and parses the 12-byte RIFF/VP9T header from
// data. Returns the header and the number of bytes consumed.
func ParseRIFFHeader(data []byte) (RIFFHeader, int, error) {
	if len(data) < RIFFHeaderSize {
		return RIFFHeader{}, 0, ErrTruncated
	}
	if binary.LittleEndian.Uint32(data[0:4]) != FourCCRIFF {
		return RIFFHeader{}, 0, ErrInvalidRIFF
	}

	fileSize := binary.LittleEndian.Uint32(data[4:8])
	if fileSize < 4 {
		return RIFFHeader{}, 0, ErrInvalidRIFF
	}
	if fileSize > MaxChunkPayload {
		return RIFFHeader{}, 0, ErrTooLarge
	}
	if binary.LittleEndian.Uint32(data[8:12]) != FourCCVP9T {
		return RIFFHeader{}, 0, ErrInvalidForm
	}
	return RIFFHeader{FileSize: fileSize}, RIFFHeaderSize, nil
}

// ReadChunkHeader reads a chunk's FourCC tag and payload size from data.
func ReadChunkHeader(data []byte) (fourcc uint32, payloadSize uint32, err error) {
	if len(data) < ChunkHeaderSize {
		return 0, 0, ErrTruncated
	}
	fourcc = binary.LittleEndian.Uint32(data[0:4])
	payloadSize = binary.LittleEndian.Uint32(data[4:8])
	if payloadSize > MaxChunkPayload {
		return 0, 0, ErrTooLarge
	}
	return fourcc, payloadSize, nil
}

// PaddedSize returns the payload size padded to an even number of bytes,
// as required by the RIFF format.
func PaddedSize(size uint32) uint32 {
	return size + (size & 1)
}

// FourCCString returns a human-readable string for a FourCC value.
func FourCCString(fourcc uint32) string {
	b := [4]byte{
		byte(fourcc),
		byte(fourcc >> 8),
		byte(fourcc >> 16),
		byte(fourcc >> 24),
	}
	return string(b[:])
}

// SplitChunks walks the chunk list following a RIFF header. Payloads alias
// data.
func SplitChunks(data []byte) ([]Chunk, error) {
	var chunks []Chunk
	for len(data) > 0 {
		fourcc, size, err := ReadChunkHeader(data)
		if err != nil {
			return nil, err
		}
		padded := int(PaddedSize(size))
		if ChunkHeaderSize+int(size) > len(data) {
			return nil, errors.Wrapf(ErrTruncated, "chunk %s", FourCCString(fourcc))
		}
		chunks = append(chunks, Chunk{
			FourCC:  fourcc,
			Payload: data[ChunkHeaderSize : ChunkHeaderSize+int(size)],
		})
		if ChunkHeaderSize+padded >= len(data) {
			break
		}
		data = data[ChunkHeaderSize+padded:]
	}
	return chunks, nil
}

// ReadChunk reads a complete chunk (header + payload) from an io.Reader.
func ReadChunk(r io.Reader) (Chunk, error) {
	var hdr [ChunkHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Chunk{}, errors.Wrap(err, "vp9t: reading chunk header")
	}

	fourcc := binary.LittleEndian.Uint32(hdr[0:4])
	payloadSize := binary.LittleEndian.Uint32(hdr[4:8])
	if payloadSize > MaxChunkPayload {
		return Chunk{}, ErrTooLarge
	}

	payload := make([]byte, PaddedSize(payloadSize))
	if _, err := io.ReadFull(r, payload); err != nil {
		return Chunk{}, errors.Wrap(err, "vp9t: reading chunk payload")
	}
	return Chunk{FourCC: fourcc, Payload: payload[:payloadSize]}, nil
}

// WriteChunk writes a chunk header, payload and padding byte to w.
func WriteChunk(w io.Writer, fourcc uint32, payload []byte) error {
	var hdr [ChunkHeaderSize]byte
	PutLE32(hdr[0:4], fourcc)
	PutLE32(hdr[4:8], uint32(len(payload)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	if len(payload)&1 != 0 {
		if _, err := w.Write([]byte{0}); err != nil {
			return err
		}
	}
	return nil
}

// ChunkSize returns the encoded size of a chunk with an n-byte payload.
func ChunkSize(n int) int {
	return ChunkHeaderSize + int(PaddedSize(uint32(n)))
}
