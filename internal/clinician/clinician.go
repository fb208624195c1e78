package clinician

import (
	"context"
	"fmt"
	"time"
)

const (
	ConfidenceHigh     = "HIGH"
	ConfidenceModerate = "MODERATE"
	ConfidenceLow      = "LOW"

	// CodesDisclaimer and ScalesDisclaimer are attached verbatim to every
	// successful suggestion; they are part of the port contract.
	CodesDisclaimer  = "FOR CLINICAL REVIEW ONLY — Verify codes before use in billing or official documentation."
	ScalesDisclaimer = "ESTIMATED — These scores are derived from clinical documentation and are not a substitute for formal scale administration."

	maxCodeSuggestions = 5
)

// CodeSuggestion is one ICD-10 / DSM-5 alignment proposal.
type CodeSuggestion struct {
	ICD10       string `json:"icd10"`
	DSM5        string `json:"dsm5"`
	Description string `json:"description"`
	Confidence  string `json:"confidence"`
}

type CodeSuggestions struct {
	Codes       []CodeSuggestion `json:"codes"`
	Disclaimer  string           `json:"disclaimer"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

type ScaleScore struct {
	Score    int      `json:"score"`
	Severity string   `json:"severity"`
	Items    []string `json:"items"`
}

type ScaleScores struct {
	PHQ9        ScaleScore `json:"phq9"`
	GAD7        ScaleScore `json:"gad7"`
	YMRS        ScaleScore `json:"ymrs"`
	HAMD        ScaleScore `json:"hamd"`
	Disclaimer  string     `json:"disclaimer"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

// Structurer rewrites a raw transcript as strictly speaker-labeled
// dialogue lines (Doctor:/Patient:/Unknown:, clinician first). The
// implementation streams output; each chunk is handed to onChunk in
// order and the caller concatenates.
type Structurer interface {
	StructureDialogue(ctx context.Context, transcript string, onChunk func(chunk string)) error
}

// ReportWriter synthesizes the structured clinical narrative from
// dialogue text. Mandatory data points absent from the input read
// "Not Reported"; no diagnosis may be inferred.
type ReportWriter interface {
	GenerateReport(ctx context.Context, dialogue string) (string, error)
}

// SOAPWriter transforms a clinical report into a four-section
// psychiatric SOAP note.
type SOAPWriter interface {
	GenerateSOAPNote(ctx context.Context, report string) (string, error)
}

type Coder interface {
	SuggestCodes(ctx context.Context, clinicalText string) (*CodeSuggestions, error)
}

type ScaleEstimator interface {
	EstimateScales(ctx context.Context, clinicalText string) (*ScaleScores, error)
}

// ValidateCodes enforces the coding port schema: at most five entries,
// each with a non-empty ICD-10 code and a recognized confidence level.
func ValidateCodes(codes []CodeSuggestion) error {
	if len(codes) > maxCodeSuggestions {
		return fmt.Errorf("expected at most %d code suggestions, got %d", maxCodeSuggestions, len(codes))
	}
	for i, code := range codes {
		if code.ICD10 == "" {
			return fmt.Errorf("code suggestion %d has empty icd10", i)
		}
		switch code.Confidence {
		case ConfidenceHigh, ConfidenceModerate, ConfidenceLow:
		default:
			return fmt.Errorf("code suggestion %d has invalid confidence %q", i, code.Confidence)
		}
	}
	return nil
}

// ValidateScales enforces per-scale score bounds.
func ValidateScales(s *ScaleScores) error {
	checks := []struct {
		name  string
		score int
		max   int
	}{
		{"phq9", s.PHQ9.Score, 27},
		{"gad7", s.GAD7.Score, 21},
		{"ymrs", s.YMRS.Score, 60},
		{"hamd", s.HAMD.Score, 52},
	}
	for _, c := range checks {
		if c.score < 0 || c.score > c.max {
			return fmt.Errorf("%s score %d out of range 0..%d", c.name, c.score, c.max)
		}
	}
	return nil
}
