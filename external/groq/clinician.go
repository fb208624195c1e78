package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nicksboson/CeriNote/internal/clinician"
	"github.com/nicksboson/CeriNote/internal/config"
)

// ClinicianClient implements the dialogue structuring, report, SOAP,
// coding and scale estimation ports on top of the Groq chat API.
type ClinicianClient struct {
	client         *Client
	chatModel      string
	reasoningModel string
	now            func() time.Time
}

func NewClinicianClient(cfg *config.Config, opts ...Option) *ClinicianClient {
	return &ClinicianClient{
		client:         NewClient(cfg.GroqAPIKey, append([]Option{WithBaseURL(cfg.GroqBaseURL)}, opts...)...),
		chatModel:      cfg.GroqChatModel,
		reasoningModel: cfg.GroqReasoningModel,
		now:            time.Now,
	}
}

func (c *ClinicianClient) StructureDialogue(ctx context.Context, transcript string, onChunk func(chunk string)) error {
	return c.client.completeStream(ctx, chatRequest{
		Model: c.reasoningModel,
		Messages: []chatMessage{
			{Role: "user", Content: structuringInstruction},
			{Role: "assistant", Content: structuringExample},
			{Role: "user", Content: fmt.Sprintf(`Transcript: """%s"""`, transcript)},
		},
		Temperature:         1,
		MaxCompletionTokens: 8192,
		TopP:                1,
		ReasoningEffort:     "medium",
	}, onChunk)
}

func (c *ClinicianClient) GenerateReport(ctx context.Context, dialogue string) (string, error) {
	content, err := c.client.complete(ctx, chatRequest{
		Model: c.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: reportSystemPrompt},
			{Role: "user", Content: dialogue},
		},
		Temperature: 0.5,
		MaxTokens:   4096,
		TopP:        1,
	})
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", fmt.Errorf("report completion returned empty content")
	}
	return content, nil
}

func (c *ClinicianClient) GenerateSOAPNote(ctx context.Context, report string) (string, error) {
	content, err := c.client.complete(ctx, chatRequest{
		Model: c.reasoningModel,
		Messages: []chatMessage{
			{Role: "system", Content: soapSystemPrompt},
			{Role: "user", Content: "Transform the following clinical analysis into a professional SOAP Note following the exact template format:\n\n" + report},
		},
		Temperature: 0.3,
		MaxTokens:   4096,
		TopP:        1,
	})
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", fmt.Errorf("soap completion returned empty content")
	}
	return content, nil
}

func (c *ClinicianClient) SuggestCodes(ctx context.Context, clinicalText string) (*clinician.CodeSuggestions, error) {
	content, err := c.client.complete(ctx, chatRequest{
		Model: c.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: codesSystemPrompt},
			{Role: "user", Content: clinicalText},
		},
		Temperature:    0.2,
		MaxTokens:      2048,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	codes, err := parseCodeSuggestions(content)
	if err != nil {
		return nil, err
	}
	if err := clinician.ValidateCodes(codes); err != nil {
		return nil, fmt.Errorf("coding response failed validation: %w", err)
	}
	return &clinician.CodeSuggestions{
		Codes:       codes,
		Disclaimer:  clinician.CodesDisclaimer,
		GeneratedAt: c.now(),
	}, nil
}

// parseCodeSuggestions accepts the shapes the model is known to emit: a
// bare array, or an object wrapping the array under "codes" or
// "suggestions".
func parseCodeSuggestions(raw string) ([]clinician.CodeSuggestion, error) {
	raw = strings.TrimSpace(raw)

	var direct []clinician.CodeSuggestion
	if err := json.Unmarshal([]byte(raw), &direct); err == nil {
		return direct, nil
	}

	var wrapped struct {
		Codes       []clinician.CodeSuggestion `json:"codes"`
		Suggestions []clinician.CodeSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode code suggestions: %w", err)
	}
	if wrapped.Codes != nil {
		return wrapped.Codes, nil
	}
	if wrapped.Suggestions != nil {
		return wrapped.Suggestions, nil
	}

	var single clinician.CodeSuggestion
	if err := json.Unmarshal([]byte(raw), &single); err != nil || single.ICD10 == "" {
		return nil, fmt.Errorf("code suggestions have unrecognized shape")
	}
	return []clinician.CodeSuggestion{single}, nil
}

func (c *ClinicianClient) EstimateScales(ctx context.Context, clinicalText string) (*clinician.ScaleScores, error) {
	content, err := c.client.complete(ctx, chatRequest{
		Model: c.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: scalesSystemPrompt},
			{Role: "user", Content: clinicalText},
		},
		Temperature:    0.1,
		MaxTokens:      2048,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var scales clinician.ScaleScores
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &scales); err != nil {
		return nil, fmt.Errorf("failed to decode scale scores: %w", err)
	}
	if err := clinician.ValidateScales(&scales); err != nil {
		return nil, fmt.Errorf("scales response failed validation: %w", err)
	}
	scales.Disclaimer = clinician.ScalesDisclaimer
	scales.GeneratedAt = c.now()
	return &scales, nil
}
