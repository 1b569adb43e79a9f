package header

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2/smf"
)

// TimeFormat converts the division into the equivalent gomidi time format.
func (h *HeaderChunk) TimeFormat() (smf.TimeFormat, error) {
	d, err := h.Division()
	if err != nil {
		return nil, err
	}
	return d.TimeFormat()
}

func (d Division) TimeFormat() (smf.TimeFormat, error) {
	switch d.Kind {
	case TicksPerBeat:
		return smf.MetricTicks(d.TicksPerBeat & ticksMask), nil
	case FramesPerSecond:
		code, err := frameRateCode(d.FrameRate)
		if err != nil {
			return nil, err
		}
		return smf.TimeCode{FramesPerSecond: code, SubFrames: d.TicksPerFrame}, nil
	}
	return nil, fmt.Errorf("unknown division kind %v", d.Kind)
}

// DivisionFromTimeFormat is the inverse of Division.TimeFormat.
func DivisionFromTimeFormat(tf smf.TimeFormat) (Division, error) {
	switch v := tf.(type) {
	case smf.MetricTicks:
		return MetricDivision(uint16(v)), nil
	case smf.TimeCode:
		rate, err := frameRateFromCode(v.FramesPerSecond)
		if err != nil {
			return Division{}, err
		}
		return SMPTEDivision(rate, v.SubFrames), nil
	}
	return Division{}, fmt.Errorf("unsupported time format %v", tf)
}
