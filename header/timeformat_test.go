package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestTimeFormatMetric(t *testing.T) {
	h := mustBind(t, newBuf())
	tf, err := h.TimeFormat()
	require.NoError(t, err)
	assert.Equal(t, smf.MetricTicks(96), tf)

	d, err := DivisionFromTimeFormat(tf)
	assert.NoError(t, err)
	assert.Equal(t, MetricDivision(96), d)
}

func TestTimeFormatDropFrame(t *testing.T) {
	h := mustBind(t, newBuf())
	require.NoError(t, h.SetSMPTEDivision(29.97, 40))
	tf, err := h.TimeFormat()
	require.NoError(t, err)
	assert.Equal(t, smf.TimeCode{FramesPerSecond: 29, SubFrames: 40}, tf)

	d, err := DivisionFromTimeFormat(tf)
	assert.NoError(t, err)
	assert.Equal(t, SMPTEDivision(29.97, 40), d)
}

func TestDivisionFromTimeFormatRejectsUnknownRate(t *testing.T) {
	_, err := DivisionFromTimeFormat(smf.TimeCode{FramesPerSecond: 60, SubFrames: 1})
	assert.ErrorIs(t, err, ErrInvalidFrameRate)
	_, err = DivisionFromTimeFormat(nil)
	assert.Error(t, err)
}

func TestTimeFormatInvalidCode(t *testing.T) {
	h := mustBind(t, newBuf(0xE7, 0x28))
	_, err := h.TimeFormat()
	assert.ErrorIs(t, err, ErrInvalidFrameRate)
}
