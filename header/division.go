package header

import (
	"fmt"

	"golang.org/x/exp/slices"
)

type DivisionKind uint8

// Tags returned by HeaderChunk.DivisionKind.
const (
	FramesPerSecond DivisionKind = 1
	TicksPerBeat    DivisionKind = 2
)

func (k DivisionKind) String() string {
	switch k {
	case FramesPerSecond:
		return "frames per second"
	case TicksPerBeat:
		return "ticks per beat"
	}
	return fmt.Sprintf("DivisionKind(%d)", uint8(k))
}

const (
	smpteFlag        = 0x8000
	ticksMask        = 0x7FFF
	frameRateMask    = 0x7F
	dropFrameCode    = 29
	dropFrameRate    = 29.97
	maxTicksPerFrame = 0xFF
)

// frame rate codes as stored in the high byte of the division word
var frameRateCodes = []uint8{24, 25, 29, 30}

// rates accepted by SetSMPTEDivision, 29 and 29.97 both mean drop-frame
var frameRates = []float64{24, 25, 29, dropFrameRate, 30}

// Division is the decoded form of the division word. Only the fields that
// belong to Kind are meaningful.
type Division struct {
	Kind          DivisionKind
	TicksPerBeat  uint16
	FrameRate     float64
	TicksPerFrame uint8
}

func MetricDivision(ticksPerBeat uint16) Division {
	return Division{Kind: TicksPerBeat, TicksPerBeat: ticksPerBeat & ticksMask}
}

func SMPTEDivision(frameRate float64, ticksPerFrame uint8) Division {
	return Division{Kind: FramesPerSecond, FrameRate: frameRate, TicksPerFrame: ticksPerFrame}
}

func (d Division) String() string {
	if d.Kind == FramesPerSecond {
		return fmt.Sprintf("%v frames per second, %d ticks per frame", d.FrameRate, d.TicksPerFrame)
	}
	return fmt.Sprintf("%d ticks per beat", d.TicksPerBeat)
}

func frameRateCode(rate float64) (uint8, error) {
	if !slices.Contains(frameRates, rate) {
		return 0, &InvalidFrameRateError{Value: rate}
	}
	if rate == dropFrameRate {
		return dropFrameCode, nil
	}
	return uint8(rate), nil
}

func frameRateFromCode(code uint8) (float64, error) {
	if !slices.Contains(frameRateCodes, code) {
		return 0, &InvalidFrameRateError{Value: float64(code)}
	}
	if code == dropFrameCode {
		return dropFrameRate, nil
	}
	return float64(code), nil
}

// encode packs d into the two bytes of the division word.
func (d Division) encode() (hi, lo byte, err error) {
	switch d.Kind {
	case TicksPerBeat:
		w := d.TicksPerBeat & ticksMask
		return byte(w >> 8), byte(w), nil
	case FramesPerSecond:
		code, err := frameRateCode(d.FrameRate)
		if err != nil {
			return 0, 0, err
		}
		return 0x80 | code, d.TicksPerFrame, nil
	}
	return 0, 0, fmt.Errorf("unknown division kind %v", d.Kind)
}

func decodeDivision(hi, lo byte) (Division, error) {
	if hi&0x80 == 0 {
		return MetricDivision(uint16(hi)<<8 | uint16(lo)), nil
	}
	rate, err := frameRateFromCode(hi & frameRateMask)
	if err != nil {
		return Division{}, err
	}
	return SMPTEDivision(rate, lo), nil
}
