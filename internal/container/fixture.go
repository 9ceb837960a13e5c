package container

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// Header is the THDR chunk.
type Header struct {
	Version  uint8
	BitDepth uint8
	Flags    uint8
}

// FrameParallel reports whether FlagFrameParallel is set.
func (h Header) FrameParallel() bool { return h.Flags&FlagFrameParallel != 0 }

// PlaneDims is the context extent and visible edge of one plane of a tile,
// in 4x4 units.
type PlaneDims struct {
	Cols, Rows               uint16
	VisibleCols, VisibleRows uint16
}

// BlockRecord is the fixed-size layout of one transform block:
// plane, tx size, tx type, flags, 2 reserved bytes, x, y, dq[0], dq[1].
type BlockRecord struct {
	Plane   uint8
	TxSize  uint8
	TxType  uint8
	Flags   uint8
	X, Y    uint16
	Dequant [2]int16
}

// Tile is one TILE chunk: the plane layout, the blocks in coding order and
// the bool-coded token partition.
type Tile struct {
	Planes  [NumPlanes]PlaneDims
	Blocks  []BlockRecord
	Payload []byte
}

// Fixture is a parsed VP9T file.
type Fixture struct {
	Header Header
	Probs  []byte
	Tiles  []Tile
}

// Marshal serializes f as an uncompressed RIFF container.
func Marshal(f *Fixture) ([]byte, error) {
	if len(f.Tiles) > MaxTiles {
		return nil, errors.Errorf("vp9t: %d tiles exceeds limit %d", len(f.Tiles), MaxTiles)
	}
	size := 4 + ChunkSize(THDRChunkSize) + ChunkSize(len(f.Probs))
	for i := range f.Tiles {
		size += ChunkSize(tileChunkLen(&f.Tiles[i]))
	}
	if uint64(size) > uint64(MaxChunkPayload) {
		return nil, ErrTooLarge
	}

	var buf bytes.Buffer
	buf.Grow(ChunkHeaderSize + size)
	var riff [RIFFHeaderSize]byte
	PutLE32(riff[0:4], FourCCRIFF)
	PutLE32(riff[4:8], uint32(size))
	PutLE32(riff[8:12], FourCCVP9T)
	buf.Write(riff[:])

	var thdr [THDRChunkSize]byte
	thdr[0] = f.Header.Version
	thdr[1] = f.Header.BitDepth
	thdr[2] = f.Header.Flags
	PutLE16(thdr[3:5], uint16(len(f.Tiles)))
	if err := WriteChunk(&buf, FourCCTHDR, thdr[:]); err != nil {
		return nil, err
	}
	if err := WriteChunk(&buf, FourCCPROB, f.Probs); err != nil {
		return nil, err
	}
	for i := range f.Tiles {
		if err := WriteChunk(&buf, FourCCTILE, marshalTile(&f.Tiles[i])); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func tileChunkLen(t *Tile) int {
	return TileHeaderSize + len(t.Blocks)*BlockRecordSize + len(t.Payload)
}

func marshalTile(t *Tile) []byte {
	out := make([]byte, tileChunkLen(t))
	PutLE32(out[0:4], uint32(len(t.Blocks)))
	p := out[4:]
	for _, pd := range t.Planes {
		PutLE16(p[0:2], pd.Cols)
		PutLE16(p[2:4], pd.Rows)
		PutLE16(p[4:6], pd.VisibleCols)
		PutLE16(p[6:8], pd.VisibleRows)
		p = p[PlaneRecordSize:]
	}
	for _, b := range t.Blocks {
		p[0] = b.Plane
		p[1] = b.TxSize
		p[2] = b.TxType
		p[3] = b.Flags
		PutLE16(p[6:8], b.X)
		PutLE16(p[8:10], b.Y)
		PutLE16(p[10:12], uint16(b.Dequant[0]))
		PutLE16(p[12:14], uint16(b.Dequant[1]))
		p = p[BlockRecordSize:]
	}
	copy(p, t.Payload)
	return out
}

// WriteFixture writes f to w, zstd-compressed when compress is set.
func WriteFixture(w io.Writer, f *Fixture, compress bool) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}
	if compress {
		if data, err = compressZstd(data); err != nil {
			return err
		}
	}
	_, err = w.Write(data)
	return err
}

// ReadFixture reads and parses a fixture from r.
func ReadFixture(r io.Reader) (*Fixture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "vp9t: reading data")
	}
	return Parse(data)
}

// Parse parses a fixture, decompressing it first if it is a zstd frame.
// Tile payloads alias data unless decompression was needed.
func Parse(data []byte) (*Fixture, error) {
	if IsCompressed(data) {
		var err error
		if data, err = decompressZstd(data); err != nil {
			return nil, err
		}
	}

	hdr, consumed, err := ParseRIFFHeader(data)
	if err != nil {
		return nil, err
	}
	riffEnd := int(hdr.FileSize) + ChunkHeaderSize
	if riffEnd > len(data) {
		return nil, ErrTruncated
	}
	chunks, err := SplitChunks(data[consumed:riffEnd])
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 || chunks[0].FourCC != FourCCTHDR {
		return nil, errors.Wrap(ErrInvalidChunk, "missing THDR")
	}

	th := chunks[0].Payload
	if len(th) < THDRChunkSize {
		return nil, errors.Wrap(ErrTruncated, "THDR")
	}
	f := &Fixture{Header: Header{Version: th[0], BitDepth: th[1], Flags: th[2]}}
	if f.Header.Version != Version {
		return nil, errors.Wrapf(ErrVersion, "version %d", f.Header.Version)
	}
	numTiles := int(ReadLE16(th[3:5]))
	f.Tiles = make([]Tile, 0, numTiles)

	for _, c := range chunks[1:] {
		switch c.FourCC {
		case FourCCPROB:
			if f.Probs != nil {
				return nil, errors.Wrap(ErrInvalidChunk, "duplicate PROB")
			}
			f.Probs = c.Payload
		case FourCCTILE:
			t, err := parseTile(c.Payload)
			if err != nil {
				return nil, errors.Wrapf(err, "tile %d", len(f.Tiles))
			}
			f.Tiles = append(f.Tiles, t)
		default:
			// Unknown chunks are skipped.
		}
	}
	if f.Probs == nil {
		return nil, errors.Wrap(ErrInvalidChunk, "missing PROB")
	}
	if len(f.Tiles) != numTiles {
		return nil, errors.Wrapf(ErrInvalidChunk, "header announces %d tiles, found %d", numTiles, len(f.Tiles))
	}
	return f, nil
}

func parseTile(data []byte) (Tile, error) {
	var t Tile
	if len(data) < TileHeaderSize {
		return t, ErrTruncated
	}
	n := ReadLE32(data[0:4])
	p := data[4:]
	for i := range t.Planes {
		t.Planes[i] = PlaneDims{
			Cols:        ReadLE16(p[0:2]),
			Rows:        ReadLE16(p[2:4]),
			VisibleCols: ReadLE16(p[4:6]),
			VisibleRows: ReadLE16(p[6:8]),
		}
		p = p[PlaneRecordSize:]
	}
	if uint64(n)*BlockRecordSize > uint64(len(p)) {
		return t, errors.Wrapf(ErrTruncated, "%d block records", n)
	}
	t.Blocks = make([]BlockRecord, n)
	for i := range t.Blocks {
		b := &t.Blocks[i]
		b.Plane = p[0]
		b.TxSize = p[1]
		b.TxType = p[2]
		b.Flags = p[3]
		b.X = ReadLE16(p[6:8])
		b.Y = ReadLE16(p[8:10])
		b.Dequant[0] = int16(ReadLE16(p[10:12]))
		b.Dequant[1] = int16(ReadLE16(p[12:14]))
		if b.Plane >= NumPlanes {
			return t, errors.Wrapf(ErrInvalidChunk, "block %d: plane %d", i, b.Plane)
		}
		p = p[BlockRecordSize:]
	}
	t.Payload = p
	return t, nil
}
