package model

import "github.com/jsphweid/mthd/header"

type HeaderSummary struct {
	Path         string  `json:"path,omitempty"`
	Format       uint16  `json:"format"`
	TrackCount   uint16  `json:"track_count"`
	DivisionKind string  `json:"division_kind"`
	TicksPerBeat uint16  `json:"ticks_per_beat,omitempty"`
	FrameRate    float64 `json:"frame_rate,omitempty"`
	// NOTE: only meaningful for frames-per-second division
	TicksPerFrame uint8 `json:"ticks_per_frame,omitempty"`
	// microseconds per tick at the default tempo
	TickResolution float64 `json:"tick_resolution"`
}

func NewHeaderSummary(path string, s header.Summary, resolution float64) HeaderSummary {
	hs := HeaderSummary{
		Path:           path,
		Format:         s.Format,
		TrackCount:     s.TrackCount,
		TickResolution: resolution,
	}
	switch s.Division.Kind {
	case header.FramesPerSecond:
		hs.DivisionKind = "frames_per_second"
		hs.FrameRate = s.Division.FrameRate
		hs.TicksPerFrame = s.Division.TicksPerFrame
	default:
		hs.DivisionKind = "ticks_per_beat"
		hs.TicksPerBeat = s.Division.TicksPerBeat
	}
	return hs
}

// HeaderEdit lists the fields to change, nil fields are left alone.
// TicksPerBeat and FrameRate select the division kind and are exclusive.
type HeaderEdit struct {
	Format        *uint16  `json:"format,omitempty"`
	TrackCount    *uint16  `json:"track_count,omitempty"`
	TicksPerBeat  *uint16  `json:"ticks_per_beat,omitempty"`
	FrameRate     *float64 `json:"frame_rate,omitempty"`
	TicksPerFrame *uint16  `json:"ticks_per_frame,omitempty"`
}

func (e HeaderEdit) IsEmpty() bool {
	return e.Format == nil && e.TrackCount == nil && e.TicksPerBeat == nil &&
		e.FrameRate == nil && e.TicksPerFrame == nil
}
