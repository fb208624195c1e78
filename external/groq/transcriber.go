package groq

import (
	"context"

	"github.com/nicksboson/CeriNote/internal/config"
	"github.com/nicksboson/CeriNote/internal/transcriber"
)

type WhisperTranscriber struct {
	client *Client
	model  string
}

func NewWhisperTranscriber(cfg *config.Config, opts ...Option) transcriber.Transcriber {
	return &WhisperTranscriber{
		client: NewClient(cfg.GroqAPIKey, append([]Option{WithBaseURL(cfg.GroqBaseURL)}, opts...)...),
		model:  cfg.GroqWhisperModel,
	}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte, _ string, filename string) (*transcriber.Result, error) {
	resp, err := t.client.transcribeAudio(ctx, t.model, audio, filename)
	if err != nil {
		return nil, err
	}
	result := &transcriber.Result{
		Text:     resp.Text,
		Segments: make([]transcriber.Segment, 0, len(resp.Segments)),
	}
	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, transcriber.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}
	return result, nil
}
