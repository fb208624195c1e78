package risk

import "time"

type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityModerate Severity = "MODERATE"
)

// unknownSeverityRank places unrecognized severities after every known one.
const unknownSeverityRank = 99

func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityModerate:
		return 2
	default:
		return unknownSeverityRank
	}
}

// Finding is one matched category within a single scan.
type Finding struct {
	Category string   `json:"category"`
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
	Color    string   `json:"color"`
	Icon     string   `json:"icon"`
	Matches  []string `json:"matches"`
	Count    int      `json:"count"`
}

type Result struct {
	HasRisks        bool      `json:"hasRisks"`
	Flags           []Finding `json:"flags"`
	HighestSeverity Severity  `json:"highestSeverity,omitempty"`
	ScannedAt       time.Time `json:"scannedAt"`
}

// CategoryInfo is the display-facing view of a taxonomy entry.
type CategoryInfo struct {
	Category     string   `json:"category"`
	Label        string   `json:"label"`
	Severity     Severity `json:"severity"`
	Color        string   `json:"color"`
	Icon         string   `json:"icon"`
	PatternCount int      `json:"patternCount"`
}
