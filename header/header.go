// Package header reads and edits the MThd chunk at the start of a standard
// MIDI file. A HeaderChunk is a view over the caller's buffer: every setter
// writes straight into that memory and nothing is copied.
package header

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/slices"
)

const (
	ID          = "MThd"
	ChunkLength = 6
	Size        = 14

	// 120 bpm
	DefaultTempo = 500000
)

const (
	SingleTrack uint16 = 0
	MultiTrack  uint16 = 1
	MultiSong   uint16 = 2
)

const (
	formatOffset   = 8
	tracksOffset   = 10
	divisionOffset = 12
)

var formats = []uint16{SingleTrack, MultiTrack, MultiSong}

type HeaderChunk struct {
	buf []byte
}

// Bind validates the chunk id and length found at offset and returns a view
// over buf[offset:offset+Size]. Format and division are checked on access.
func Bind(buf []byte, offset int) (*HeaderChunk, error) {
	if buf == nil || offset < 0 || len(buf)-offset < Size {
		return nil, ErrBadBuffer
	}
	b := buf[offset : offset+Size : offset+Size]
	if string(b[0:4]) != ID {
		return nil, ErrBadMagic
	}
	if binary.BigEndian.Uint32(b[4:8]) != ChunkLength {
		return nil, ErrBadChunkLength
	}
	return &HeaderChunk{buf: b}, nil
}

// Init writes a complete header into buf at offset and binds it. Nothing is
// written unless every field is valid.
func Init(buf []byte, offset int, format uint16, tracks uint16, d Division) (*HeaderChunk, error) {
	if buf == nil || offset < 0 || len(buf)-offset < Size {
		return nil, ErrBadBuffer
	}
	if err := checkFormat(format); err != nil {
		return nil, err
	}
	hi, lo, err := d.encode()
	if err != nil {
		return nil, err
	}
	b := buf[offset : offset+Size : offset+Size]
	copy(b[0:4], ID)
	binary.BigEndian.PutUint32(b[4:8], ChunkLength)
	binary.BigEndian.PutUint16(b[formatOffset:], format)
	binary.BigEndian.PutUint16(b[tracksOffset:], tracks)
	b[divisionOffset] = hi
	b[divisionOffset+1] = lo
	return &HeaderChunk{buf: b}, nil
}

// Bytes returns the bound 14 bytes. The slice aliases the caller's buffer.
func (h *HeaderChunk) Bytes() []byte {
	return h.buf
}

func checkFormat(format uint16) error {
	if !slices.Contains(formats, format) {
		return &InvalidFormatError{Value: format}
	}
	return nil
}

func (h *HeaderChunk) Format() (uint16, error) {
	format := binary.BigEndian.Uint16(h.buf[formatOffset:])
	if err := checkFormat(format); err != nil {
		return 0, err
	}
	return format, nil
}

func (h *HeaderChunk) SetFormat(format uint16) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	binary.BigEndian.PutUint16(h.buf[formatOffset:], format)
	return nil
}

func (h *HeaderChunk) TrackCount() uint16 {
	return binary.BigEndian.Uint16(h.buf[tracksOffset:])
}

func (h *HeaderChunk) SetTrackCount(n uint16) {
	binary.BigEndian.PutUint16(h.buf[tracksOffset:], n)
}

func (h *HeaderChunk) divisionWord() uint16 {
	return binary.BigEndian.Uint16(h.buf[divisionOffset:])
}

func (h *HeaderChunk) DivisionKind() DivisionKind {
	if h.divisionWord()&smpteFlag != 0 {
		return FramesPerSecond
	}
	return TicksPerBeat
}

func (h *HeaderChunk) TicksPerBeat() (uint16, error) {
	word := h.divisionWord()
	if word&smpteFlag != 0 {
		return 0, ErrWrongDivisionKind
	}
	return word & ticksMask, nil
}

// SetTicksPerBeat switches the division to ticks per beat. Bit 15 of value
// is dropped.
func (h *HeaderChunk) SetTicksPerBeat(value uint16) {
	binary.BigEndian.PutUint16(h.buf[divisionOffset:], value&ticksMask)
}

// SMPTEFrameRate returns the frame rate in frames per second, 29.97 for the
// drop-frame code 29.
func (h *HeaderChunk) SMPTEFrameRate() (float64, error) {
	if h.DivisionKind() != FramesPerSecond {
		return 0, ErrWrongDivisionKind
	}
	return frameRateFromCode(h.buf[divisionOffset] & frameRateMask)
}

func (h *HeaderChunk) TicksPerFrame() (uint8, error) {
	if h.DivisionKind() != FramesPerSecond {
		return 0, ErrWrongDivisionKind
	}
	return h.buf[divisionOffset+1], nil
}

// SetSMPTEDivision switches the division to SMPTE timing. frameRate must be
// one of 24, 25, 29, 29.97 or 30.
func (h *HeaderChunk) SetSMPTEDivision(frameRate float64, ticksPerFrame uint16) error {
	code, err := frameRateCode(frameRate)
	if err != nil {
		return err
	}
	if ticksPerFrame > maxTicksPerFrame {
		return &InvalidTicksPerFrameError{Value: ticksPerFrame}
	}
	h.buf[divisionOffset] = 0x80 | code
	h.buf[divisionOffset+1] = byte(ticksPerFrame)
	return nil
}

func (h *HeaderChunk) Division() (Division, error) {
	return decodeDivision(h.buf[divisionOffset], h.buf[divisionOffset+1])
}

func (h *HeaderChunk) SetDivision(d Division) error {
	hi, lo, err := d.encode()
	if err != nil {
		return err
	}
	h.buf[divisionOffset] = hi
	h.buf[divisionOffset+1] = lo
	return nil
}

// TickResolution returns the length of one tick in microseconds. tempo is
// in microseconds per beat and only used for ticks-per-beat division; zero
// selects DefaultTempo.
func (h *HeaderChunk) TickResolution(tempo uint32) (float64, error) {
	if h.DivisionKind() == FramesPerSecond {
		rate, err := h.SMPTEFrameRate()
		if err != nil {
			return 0, err
		}
		tpf, err := h.TicksPerFrame()
		if err != nil {
			return 0, err
		}
		return 1000000 / (rate * float64(tpf)), nil
	}
	if tempo == 0 {
		tempo = DefaultTempo
	}
	tpb, err := h.TicksPerBeat()
	if err != nil {
		return 0, err
	}
	return float64(tempo) / float64(tpb), nil
}

// Summary is a decoded snapshot of the header fields.
type Summary struct {
	Format     uint16
	TrackCount uint16
	Division   Division
}

func (h *HeaderChunk) Summary() (Summary, error) {
	var s Summary
	format, err := h.Format()
	if err != nil {
		return s, err
	}
	division, err := h.Division()
	if err != nil {
		return s, err
	}
	s.Format = format
	s.TrackCount = h.TrackCount()
	s.Division = division
	return s, nil
}

func (s Summary) String() string {
	return fmt.Sprintf("Format %d, with %d track(s), %s", s.Format, s.TrackCount, s.Division)
}
