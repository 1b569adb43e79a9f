package model

// Data is base64 in JSON. It may be a whole MIDI file or just the header.
type HeaderRequest struct {
	Data   []byte `json:"data"`
	Offset int    `json:"offset"`
	Tempo  uint32 `json:"tempo"`
}

type EditRequest struct {
	Data   []byte     `json:"data"`
	Offset int        `json:"offset"`
	Edit   HeaderEdit `json:"edit"`
}

type EditResponse struct {
	Header HeaderSummary `json:"header"`
	Data   []byte        `json:"data"`
}

type ResolutionResponse struct {
	Tempo          uint32  `json:"tempo"`
	TickResolution float64 `json:"tick_resolution"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
