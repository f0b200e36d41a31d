package model

// Segment is a timed span of recognized text produced by a loaded
// transcription backend. Start and End are in seconds, Start <= End.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the span length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}
