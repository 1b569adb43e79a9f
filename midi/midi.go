package midi

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/jsphweid/mthd/header"
	"github.com/jsphweid/mthd/model"
	"github.com/jsphweid/mthd/util"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// File is a MIDI file loaded into memory with its header bound in place.
type File struct {
	Path   string
	Data   []byte
	Header *header.HeaderChunk
}

func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}
	h, err := header.Bind(data, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "error binding header of %s", path)
	}
	return &File{Path: path, Data: data, Header: h}, nil
}

func (f *File) Save() error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(f.Path); err == nil {
		perm = info.Mode().Perm()
	}
	return errors.Wrapf(util.WriteFileAtomic(f.Path, f.Data, perm), "error writing %s", f.Path)
}

func (f *File) Summary() (model.HeaderSummary, error) {
	return Summarize(f.Path, f.Header)
}

func Summarize(path string, h *header.HeaderChunk) (model.HeaderSummary, error) {
	s, err := h.Summary()
	if err != nil {
		return model.HeaderSummary{}, err
	}
	resolution, err := h.TickResolution(0)
	if err != nil {
		return model.HeaderSummary{}, err
	}
	// zero ticks per beat or per frame
	if math.IsInf(resolution, 0) {
		resolution = 0
	}
	return model.NewHeaderSummary(path, s, resolution), nil
}

// ApplyEdit changes every field named in e or none of them.
func ApplyEdit(h *header.HeaderChunk, e model.HeaderEdit) error {
	if e.TicksPerBeat != nil && (e.FrameRate != nil || e.TicksPerFrame != nil) {
		return errors.New("ticks per beat and SMPTE division are exclusive")
	}
	if (e.FrameRate == nil) != (e.TicksPerFrame == nil) {
		return errors.New("frame rate and ticks per frame must be set together")
	}

	scratch := make([]byte, header.Size)
	copy(scratch, h.Bytes())
	tmp, err := header.Bind(scratch, 0)
	if err != nil {
		return err
	}
	if e.Format != nil {
		if err := tmp.SetFormat(*e.Format); err != nil {
			return err
		}
	}
	if e.TrackCount != nil {
		tmp.SetTrackCount(*e.TrackCount)
	}
	if e.TicksPerBeat != nil {
		tmp.SetTicksPerBeat(*e.TicksPerBeat)
	}
	if e.FrameRate != nil {
		if err := tmp.SetSMPTEDivision(*e.FrameRate, *e.TicksPerFrame); err != nil {
			return err
		}
	}
	copy(h.Bytes(), scratch)
	return nil
}

// end of track meta event at delta 0
var emptyTrack = []byte{0x00, 0xFF, 0x2F, 0x00}

// NewFile returns a MIDI file holding the given header followed by tracks
// empty track chunks.
func NewFile(format uint16, tracks uint16, d header.Division) ([]byte, error) {
	buf := make([]byte, header.Size)
	if _, err := header.Init(buf, 0, format, tracks, d); err != nil {
		return nil, err
	}
	out := bytes.NewBuffer(buf)
	for i := 0; i < int(tracks); i++ {
		var length [4]byte
		binary.BigEndian.PutUint32(length[:], uint32(len(emptyTrack)))
		out.WriteString("MTrk")
		out.Write(length[:])
		out.Write(emptyTrack)
	}
	return out.Bytes(), nil
}

func ReadMidiFile(data []byte) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("%v", r)
		}
	}()

	res, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi file")
	}
	return res, nil
}

// checkChunks walks the chunks after the header and checks each declared
// length fits in data.
func checkChunks(data []byte) (int, error) {
	n := 0
	for off := header.Size; off < len(data); n++ {
		if len(data)-off < 8 {
			return n, fmt.Errorf("truncated chunk header at offset %d", off)
		}
		length := binary.BigEndian.Uint32(data[off+4 : off+8])
		off += 8
		if uint64(length) > uint64(len(data)-off) {
			return n, fmt.Errorf("chunk %q at offset %d declares %d bytes, %d left", data[off-8:off-4], off-8, length, len(data)-off)
		}
		off += int(length)
	}
	return n, nil
}

// Verify checks the chunks following the header are well formed. For
// ticks-per-beat files it also parses the whole file with gomidi and checks
// both agree on the time format. SMPTE files are not handed to gomidi: this
// header stores the rate code in the low 7 bits while gomidi reads the high
// byte as a negative frame rate, and its reader only handles metric ticks.
func (f *File) Verify() error {
	if _, err := checkChunks(f.Data); err != nil {
		return err
	}
	if f.Header.DivisionKind() != header.TicksPerBeat {
		return nil
	}
	parsed, err := ReadMidiFile(f.Data)
	if err != nil {
		return err
	}
	want, err := f.Header.TimeFormat()
	if err != nil {
		return err
	}
	if parsed.TimeFormat != want {
		return fmt.Errorf("time format mismatch: header says %v, parser says %v", want, parsed.TimeFormat)
	}
	return nil
}
