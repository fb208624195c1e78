package clinician

import (
	"strings"
	"testing"
)

func TestValidateCodes_Valid(t *testing.T) {
	codes := []CodeSuggestion{
		{ICD10: "F32.1", DSM5: "Major Depressive Disorder, Single Episode, Moderate", Description: "Low mood, anhedonia", Confidence: ConfidenceHigh},
		{ICD10: "F41.1", DSM5: "Generalized Anxiety Disorder", Description: "Persistent worry", Confidence: ConfidenceModerate},
	}
	if err := ValidateCodes(codes); err != nil {
		t.Fatalf("expected valid codes, got %v", err)
	}
}

func TestValidateCodes_TooMany(t *testing.T) {
	codes := make([]CodeSuggestion, 6)
	for i := range codes {
		codes[i] = CodeSuggestion{ICD10: "F32.1", Confidence: ConfidenceLow}
	}
	if err := ValidateCodes(codes); err == nil {
		t.Fatal("expected error for more than five suggestions")
	}
}

func TestValidateCodes_BadConfidence(t *testing.T) {
	codes := []CodeSuggestion{{ICD10: "F32.1", Confidence: "MAYBE"}}
	err := ValidateCodes(codes)
	if err == nil {
		t.Fatal("expected error for unknown confidence")
	}
	if !strings.Contains(err.Error(), "confidence") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCodes_EmptyICD10(t *testing.T) {
	codes := []CodeSuggestion{{Confidence: ConfidenceHigh}}
	if err := ValidateCodes(codes); err == nil {
		t.Fatal("expected error for empty icd10")
	}
}

func TestValidateScales_Bounds(t *testing.T) {
	scores := &ScaleScores{
		PHQ9: ScaleScore{Score: 27},
		GAD7: ScaleScore{Score: 21},
		YMRS: ScaleScore{Score: 60},
		HAMD: ScaleScore{Score: 52},
	}
	if err := ValidateScales(scores); err != nil {
		t.Fatalf("expected max scores to validate, got %v", err)
	}

	scores.GAD7.Score = 22
	if err := ValidateScales(scores); err == nil {
		t.Fatal("expected error for gad7 above range")
	}

	scores.GAD7.Score = 0
	scores.HAMD.Score = -1
	if err := ValidateScales(scores); err == nil {
		t.Fatal("expected error for negative hamd")
	}
}
