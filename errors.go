package vp9

import (
	"github.com/pkg/errors"

	"github.com/deepteams/vp9/internal/bitio"
	"github.com/deepteams/vp9/internal/residual"
)

// Errors returned by the decoder. Returned errors carry tile and block
// context; match them with errors.Is.
var (
	ErrBitstreamExhausted = residual.ErrBitstreamExhausted
	ErrInvalidProbability = residual.ErrInvalidProbability
	ErrShortBuffer        = residual.ErrShortBuffer
	ErrBlockOutOfBounds   = residual.ErrBlockOutOfBounds
	ErrInvalidBlock       = residual.ErrInvalidBlock
	ErrLevelOutOfRange    = residual.ErrLevelOutOfRange
	ErrInvalidBitDepth    = residual.ErrInvalidBitDepth
	ErrEmptyPartition     = bitio.ErrEmptyInput
	ErrInvalidMarker      = bitio.ErrInvalidMarker

	ErrInvalidOptions = errors.New("vp9: invalid options")
	ErrNoTiles        = errors.New("vp9: no tiles")
	ErrLevelCount     = errors.New("vp9: level buffers do not match blocks")
)
