package transcriber

import "context"

// Segment is one time-aligned slice of a transcript.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type Result struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// Transcriber converts a recorded audio blob into text. Implementations
// surface provider timeouts and malformed responses as ordinary errors.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType, filename string) (*Result, error)
}
