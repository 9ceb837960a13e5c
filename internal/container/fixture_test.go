package container

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func sampleFixture() *Fixture {
	probs := make([]byte, 1728)
	for i := range probs {
		probs[i] = byte(1 + i%255)
	}
	return &Fixture{
		Header: Header{Version: Version, BitDepth: 10, Flags: FlagFrameParallel},
		Probs:  probs,
		Tiles: []Tile{
			{
				Planes: [NumPlanes]PlaneDims{
					{Cols: 16, Rows: 8, VisibleCols: 15, VisibleRows: 8},
					{Cols: 8, Rows: 4, VisibleCols: 8, VisibleRows: 4},
					{Cols: 8, Rows: 4, VisibleCols: 8, VisibleRows: 4},
				},
				Blocks: []BlockRecord{
					{Plane: 0, TxSize: 2, TxType: 1, X: 4, Y: 0, Dequant: [2]int16{8, 12}},
					{Plane: 2, TxSize: 0, Flags: FlagInterBlock, X: 7, Y: 3, Dequant: [2]int16{-3, 1000}},
				},
				Payload: []byte{0x12, 0x34, 0x56},
			},
			{
				Payload: []byte{0x00},
			},
		},
	}
}

func TestFixture_RoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		var buf bytes.Buffer
		src := sampleFixture()
		require.NoError(t, WriteFixture(&buf, src, compress))
		require.Equal(t, compress, IsCompressed(buf.Bytes()))

		got, err := ReadFixture(&buf)
		require.NoError(t, err)
		require.Equal(t, src.Header, got.Header)
		require.True(t, got.Header.FrameParallel())
		require.Equal(t, src.Probs, got.Probs)
		require.Len(t, got.Tiles, 2)
		require.Equal(t, src.Tiles[0], got.Tiles[0])
		require.Empty(t, got.Tiles[1].Blocks)
		require.Equal(t, []byte{0x00}, got.Tiles[1].Payload)
	}
}

func TestMarshal_Layout(t *testing.T) {
	data, err := Marshal(sampleFixture())
	require.NoError(t, err)

	hdr, n, err := ParseRIFFHeader(data)
	require.NoError(t, err)
	require.Equal(t, len(data)-ChunkHeaderSize, int(hdr.FileSize))

	chunks, err := SplitChunks(data[n:])
	require.NoError(t, err)
	require.Len(t, chunks, 4)
	require.Equal(t, []uint32{FourCCTHDR, FourCCPROB, FourCCTILE, FourCCTILE},
		[]uint32{chunks[0].FourCC, chunks[1].FourCC, chunks[2].FourCC, chunks[3].FourCC})
	require.Equal(t, []byte{Version, 10, FlagFrameParallel, 2, 0}, chunks[0].Payload)
	require.Len(t, chunks[2].Payload, TileHeaderSize+2*BlockRecordSize+3)
}

func TestParse_Errors(t *testing.T) {
	good, err := Marshal(sampleFixture())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(b []byte) []byte
		want   error
	}{
		{
			name:   "truncated",
			mutate: func(b []byte) []byte { return b[:len(b)-10] },
			want:   ErrTruncated,
		},
		{
			name: "bad version",
			mutate: func(b []byte) []byte {
				b[RIFFHeaderSize+ChunkHeaderSize] = Version + 1
				return b
			},
			want: ErrVersion,
		},
		{
			name: "tile count mismatch",
			mutate: func(b []byte) []byte {
				b[RIFFHeaderSize+ChunkHeaderSize+3] = 3
				return b
			},
			want: ErrInvalidChunk,
		},
		{
			name: "first chunk not THDR",
			mutate: func(b []byte) []byte {
				copy(b[RIFFHeaderSize:], "JUNK")
				return b
			},
			want: ErrInvalidChunk,
		},
		{
			name:   "not a fixture",
			mutate: func(b []byte) []byte { return []byte("RIFF\x04\x00\x00\x00WEBP") },
			want:   ErrInvalidForm,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.mutate(bytes.Clone(good)))
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParse_BadPlaneIndex(t *testing.T) {
	f := sampleFixture()
	f.Tiles[0].Blocks[1].Plane = NumPlanes
	data, err := Marshal(f)
	require.NoError(t, err)
	_, err = Parse(data)
	require.True(t, errors.Is(err, ErrInvalidChunk), "got %v", err)
	require.Contains(t, err.Error(), "tile 0")
}

func TestParse_ShortBlockTable(t *testing.T) {
	f := sampleFixture()
	f.Tiles[1].Payload = nil
	data, err := Marshal(f)
	require.NoError(t, err)
	// Claim one block in the second tile, which has no room for it.
	off := len(data) - TileHeaderSize
	PutLE32(data[off:off+4], 1)
	_, err = Parse(data)
	require.True(t, errors.Is(err, ErrTruncated), "got %v", err)
}

func TestParse_CorruptCompressed(t *testing.T) {
	data := append(zstdMagic[:], 0xde, 0xad, 0xbe, 0xef)
	_, err := Parse(data)
	require.Error(t, err)
}

func TestParse_CompressedSizeLimit(t *testing.T) {
	// Frame header announcing one byte more than any fixture may hold:
	// 8-byte content size, 1 MiB window, then an empty last raw block.
	data := append(zstdMagic[:], 0xc0, 0x50)
	var fcs [8]byte
	PutLE32(fcs[0:4], uint32(maxDecompressedSize+1))
	PutLE32(fcs[4:8], uint32((maxDecompressedSize+1)>>32))
	data = append(data, fcs[:]...)
	data = append(data, 0x01, 0x00, 0x00)

	_, err := Parse(data)
	require.True(t, errors.Is(err, zstd.ErrDecoderSizeExceeded), "got %v", err)
}
