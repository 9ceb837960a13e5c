package residual

import "github.com/pkg/errors"

// Decode failures. Block and tile callers wrap these with position context;
// match them with errors.Is.
var (
	// ErrBitstreamExhausted means the token tree asked for bits past the
	// end of the partition.
	ErrBitstreamExhausted = errors.New("vp9: token partition exhausted")

	// ErrInvalidProbability means a zero pivot probability would select a
	// pareto row before the start of the table.
	ErrInvalidProbability = errors.New("vp9: invalid coefficient probability")

	// ErrShortBuffer means the coefficient buffer cannot hold the transform.
	ErrShortBuffer = errors.New("vp9: coefficient buffer too small")

	// ErrBlockOutOfBounds means a transform footprint falls outside the
	// tile's above/left context arrays.
	ErrBlockOutOfBounds = errors.New("vp9: block outside tile context")

	// ErrInvalidBlock means a block descriptor carries an out-of-range
	// transform size, plane type, transform type or context.
	ErrInvalidBlock = errors.New("vp9: invalid block parameters")

	// ErrScanMismatch means the scan order does not cover the transform.
	ErrScanMismatch = errors.New("vp9: scan order does not match transform size")

	// ErrLevelOutOfRange means a level cannot be represented by the
	// category 6 table of the configured bit depth.
	ErrLevelOutOfRange = errors.New("vp9: coefficient level out of range")

	// ErrInvalidBitDepth means the bit depth is not 8, 10 or 12.
	ErrInvalidBitDepth = errors.New("vp9: unsupported bit depth")
)
