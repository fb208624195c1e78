package risk

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Scanner matches free text against a fixed risk taxonomy. It holds no
// mutable state; Scan is deterministic for a given taxonomy and input.
type Scanner struct {
	categories []Category
	now        func() time.Time
}

type Option func(*Scanner)

// WithTaxonomy replaces the built-in taxonomy.
func WithTaxonomy(categories []Category) Option {
	return func(s *Scanner) { s.categories = categories }
}

// WithClock overrides the scan timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) { s.now = now }
}

func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		categories: DefaultTaxonomy(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan reports all taxonomy categories with at least one match in text.
// Findings are ordered by severity rank; categories of equal severity keep
// taxonomy declaration order. Matched substrings are trimmed, lowercased
// and deduplicated in first-seen order.
func (s *Scanner) Scan(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{HasRisks: false, Flags: []Finding{}, ScannedAt: s.now()}
	}

	flags := make([]Finding, 0, len(s.categories))
	for _, cat := range s.categories {
		matches := collectMatches(cat.Patterns, text)
		if len(matches) == 0 {
			continue
		}
		flags = append(flags, Finding{
			Category: cat.Key,
			Label:    cat.Label,
			Severity: cat.Severity,
			Color:    cat.Color,
			Icon:     cat.Icon,
			Matches:  matches,
			Count:    len(matches),
		})
	}

	sort.SliceStable(flags, func(i, j int) bool {
		return flags[i].Severity.Rank() < flags[j].Severity.Rank()
	})

	result := Result{
		HasRisks:  len(flags) > 0,
		Flags:     flags,
		ScannedAt: s.now(),
	}
	if len(flags) > 0 {
		result.HighestSeverity = flags[0].Severity
	}
	return result
}

// Categories returns the display configuration of the loaded taxonomy.
func (s *Scanner) Categories() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(s.categories))
	for _, cat := range s.categories {
		out = append(out, CategoryInfo{
			Category:     cat.Key,
			Label:        cat.Label,
			Severity:     cat.Severity,
			Color:        cat.Color,
			Icon:         cat.Icon,
			PatternCount: len(cat.Patterns),
		})
	}
	return out
}

func collectMatches(patterns []*regexp.Regexp, text string) []string {
	seen := make(map[string]struct{})
	var unique []string
	for _, pattern := range patterns {
		for _, m := range pattern.FindAllString(text, -1) {
			normalized := strings.ToLower(strings.TrimSpace(m))
			if normalized == "" {
				continue
			}
			if _, ok := seen[normalized]; ok {
				continue
			}
			seen[normalized] = struct{}{}
			unique = append(unique, normalized)
		}
	}
	return unique
}
