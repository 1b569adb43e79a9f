package header

import (
	"errors"
	"fmt"
)

var (
	ErrBadBuffer            = errors.New("buffer too small for MThd chunk")
	ErrBadMagic             = errors.New("MThd prefix not found")
	ErrBadChunkLength       = errors.New("chunk length must be 6")
	ErrWrongDivisionKind    = errors.New("time division is of the other kind")
	ErrInvalidFormat        = errors.New("invalid MIDI format")
	ErrInvalidFrameRate     = errors.New("invalid SMPTE frame rate")
	ErrInvalidTicksPerFrame = errors.New("invalid ticks per frame")
)

// InvalidFormatError carries the rejected format word.
type InvalidFormatError struct {
	Value uint16
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid MIDI format (%v), format can be 0, 1 or 2 only", e.Value)
}

func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// InvalidFrameRateError carries either the rejected rate passed to a setter
// or the rate code found in the buffer.
type InvalidFrameRateError struct {
	Value float64
}

func (e *InvalidFrameRateError) Error() string {
	return fmt.Sprintf("invalid SMPTE frames value (%v)", e.Value)
}

func (e *InvalidFrameRateError) Is(target error) bool {
	return target == ErrInvalidFrameRate
}

type InvalidTicksPerFrameError struct {
	Value uint16
}

func (e *InvalidTicksPerFrameError) Error() string {
	return fmt.Sprintf("invalid ticks per frame value (%v), must be in [0, 255]", e.Value)
}

func (e *InvalidTicksPerFrameError) Is(target error) bool {
	return target == ErrInvalidTicksPerFrame
}
