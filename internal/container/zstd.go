package container

import (
	"bytes"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

var zstdEncPool = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil)
		return enc
	},
}

// maxDecompressedSize bounds a decompressed fixture to the largest RIFF
// file the container can describe.
const maxDecompressedSize = uint64(ChunkHeaderSize) + uint64(MaxChunkPayload)

var zstdDecPool = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecompressedSize))
		return dec
	},
}

// IsCompressed reports whether data starts with a zstd frame.
func IsCompressed(data []byte) bool {
	return len(data) >= len(zstdMagic) && bytes.Equal(data[:len(zstdMagic)], zstdMagic[:])
}

func compressZstd(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	enc := zstdEncPool.Get().(*zstd.Encoder)
	defer zstdEncPool.Put(enc)
	enc.Reset(&buf)

	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return nil, errors.Wrap(err, "vp9t: compressing")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "vp9t: compressing")
	}
	return buf.Bytes(), nil
}

func decompressZstd(data []byte) ([]byte, error) {
	dec := zstdDecPool.Get().(*zstd.Decoder)
	defer zstdDecPool.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "vp9t: decompressing")
	}
	return out, nil
}
