package midi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/mthd/header"
	"github.com/jsphweid/mthd/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u16(v uint16) *uint16 { return &v }

func f64(v float64) *float64 { return &v }

func writeTemp(t *testing.T, data []byte) string {
	path := filepath.Join(t.TempDir(), "song.mid")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestNewFileLayout(t *testing.T) {
	data, err := NewFile(header.MultiTrack, 2, header.MetricDivision(96))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(data, header.Size+2*12)
	assert.Equal([]byte{0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x01, 0x00, 0x02, 0x00, 0x60}, data[:14])
	assert.Equal("MTrk", string(data[14:18]))
	assert.Equal([]byte{0, 0, 0, 4, 0x00, 0xFF, 0x2F, 0x00}, data[18:26])
}

func TestNewFileRejectsInvalidHeader(t *testing.T) {
	_, err := NewFile(5, 1, header.MetricDivision(96))
	assert.ErrorIs(t, err, header.ErrInvalidFormat)
}

func TestOpenAndSave(t *testing.T) {
	data, err := NewFile(header.SingleTrack, 1, header.MetricDivision(480))
	require.NoError(t, err)
	path := writeTemp(t, data)

	f, err := Open(path)
	require.NoError(t, err)
	f.Header.SetTrackCount(9)
	require.NoError(t, f.Save())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, uint16(9), reopened.Header.TrackCount())
	assert.Equal(t, len(data), len(reopened.Data))
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)

	_, err = Open(writeTemp(t, []byte("RIFF0000WAVEfmt ")))
	assert.ErrorIs(t, err, header.ErrBadMagic)

	_, err = Open(writeTemp(t, []byte("MThd")))
	assert.ErrorIs(t, err, header.ErrBadBuffer)
}

func TestSummarize(t *testing.T) {
	data, err := NewFile(header.MultiTrack, 2, header.SMPTEDivision(25, 40))
	require.NoError(t, err)
	f, err := Open(writeTemp(t, data))
	require.NoError(t, err)

	s, err := f.Summary()
	require.NoError(t, err)
	assert.Equal(t, model.HeaderSummary{
		Path:           f.Path,
		Format:         1,
		TrackCount:     2,
		DivisionKind:   "frames_per_second",
		FrameRate:      25,
		TicksPerFrame:  40,
		TickResolution: 1000,
	}, s)
}

func TestApplyEdit(t *testing.T) {
	buf, err := NewFile(header.SingleTrack, 1, header.MetricDivision(96))
	require.NoError(t, err)
	h, err := header.Bind(buf, 0)
	require.NoError(t, err)

	err = ApplyEdit(h, model.HeaderEdit{
		Format:        u16(2),
		TrackCount:    u16(4),
		FrameRate:     f64(29.97),
		TicksPerFrame: u16(80),
	})
	require.NoError(t, err)

	assert := assert.New(t)
	format, _ := h.Format()
	assert.Equal(uint16(2), format)
	assert.Equal(uint16(4), h.TrackCount())
	rate, err := h.SMPTEFrameRate()
	assert.NoError(err)
	assert.Equal(29.97, rate)
	assert.Equal([]byte{0x9D, 80}, buf[12:14])
}

func TestApplyEditIsAllOrNothing(t *testing.T) {
	buf, err := NewFile(header.SingleTrack, 1, header.MetricDivision(96))
	require.NoError(t, err)
	before := append([]byte(nil), buf...)
	h, err := header.Bind(buf, 0)
	require.NoError(t, err)

	cases := []struct {
		name string
		edit model.HeaderEdit
		want error
	}{
		{"bad rate after good format", model.HeaderEdit{Format: u16(1), TrackCount: u16(3), FrameRate: f64(26), TicksPerFrame: u16(1)}, header.ErrInvalidFrameRate},
		{"ticks per frame too large", model.HeaderEdit{TrackCount: u16(3), FrameRate: f64(30), TicksPerFrame: u16(256)}, header.ErrInvalidTicksPerFrame},
		{"bad format", model.HeaderEdit{Format: u16(3), TicksPerBeat: u16(480)}, header.ErrInvalidFormat},
		{"both division kinds", model.HeaderEdit{TicksPerBeat: u16(96), FrameRate: f64(30), TicksPerFrame: u16(1)}, nil},
		{"rate without ticks", model.HeaderEdit{FrameRate: f64(30)}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ApplyEdit(h, c.edit)
			require.Error(t, err)
			if c.want != nil {
				assert.ErrorIs(t, err, c.want)
			}
			assert.Equal(t, before, buf)
		})
	}
}

func TestVerifyMetricFile(t *testing.T) {
	data, err := NewFile(header.MultiTrack, 2, header.MetricDivision(96))
	require.NoError(t, err)
	f, err := Open(writeTemp(t, data))
	require.NoError(t, err)

	assert.NoError(t, f.Verify())
}

func TestVerifySMPTEFile(t *testing.T) {
	data, err := NewFile(header.MultiTrack, 2, header.SMPTEDivision(25, 40))
	require.NoError(t, err)
	f, err := Open(writeTemp(t, data))
	require.NoError(t, err)

	assert.NoError(t, f.Verify())
}

func TestVerifyTruncatedTrack(t *testing.T) {
	data, err := NewFile(header.MultiTrack, 2, header.SMPTEDivision(25, 40))
	require.NoError(t, err)
	f, err := Open(writeTemp(t, data[:len(data)-2]))
	require.NoError(t, err)

	assert.Error(t, f.Verify())
}

func TestCheckChunks(t *testing.T) {
	data, err := NewFile(header.MultiTrack, 3, header.MetricDivision(96))
	require.NoError(t, err)

	n, err := checkChunks(data)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = checkChunks(data[:header.Size+5])
	assert.Error(t, err)
}

func TestReadMidiFileGarbage(t *testing.T) {
	_, err := ReadMidiFile([]byte("not a midi file at all"))
	assert.Error(t, err)
}
