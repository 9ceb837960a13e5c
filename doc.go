// Package vp9 decodes the residual coefficient tokens of VP9 tiles.
//
// Each tile carries one bool-coded token partition and the list of
// transform blocks coded in it. DecodeTiles decodes independent tiles in
// parallel: every tile owns its bit source, above/left context arrays and
// statistics, and shares the frame's read-only probability model. The
// per-tile statistics are merged into one FrameCounts for backward
// adaptation unless the frame is decoded in frame-parallel mode.
//
// The package supports:
//   - All four transform sizes, intra and inter blocks, luma and chroma
//   - 8, 10 and 12-bit category 6 extra-bit tables
//   - Scan selection by transform type
//   - Context clipping at the visible frame edge
//   - Token fixture files (RIFF "VP9T", optionally zstd-compressed)
//
// Basic usage:
//
//	res, err := vp9.DecodeTiles(fc, tiles, vp9.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	defer res.Release()
package vp9
