package session

import "github.com/nicksboson/CeriNote/internal/transcriber"

// Clone returns a copy safe to mutate independently of the original.
// Derived artifact pointers are shared; artifacts are written once and
// treated as immutable after that.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	if s.TranscriptionSegments != nil {
		out.TranscriptionSegments = make([]transcriber.Segment, len(s.TranscriptionSegments))
		copy(out.TranscriptionSegments, s.TranscriptionSegments)
	}
	return &out
}
