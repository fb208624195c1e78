package risk

import "regexp"

// Category is one entry of the risk taxonomy: a labeled, ranked group of
// patterns matched case-insensitively against clinical text.
type Category struct {
	Key      string
	Label    string
	Severity Severity
	Color    string
	Icon     string
	Patterns []*regexp.Regexp
}

func mustPatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+expr))
	}
	return out
}

// DefaultTaxonomy returns the built-in psychiatric risk taxonomy.
// Declaration order is the tie-break order for findings of equal severity.
func DefaultTaxonomy() []Category {
	return []Category{
		{
			Key:      "SUICIDE_RISK",
			Label:    "Suicide Risk",
			Severity: SeverityCritical,
			Color:    "#ef4444",
			Icon:     "🚨",
			Patterns: mustPatterns(
				`\bsuicid\w*\b`,
				`\bkill\s*(my)?self\b`,
				`\bend\s*(my)?\s*life\b`,
				`\bwant\s*to\s*die\b`,
				`\bwish\s*i\s*was\s*dead\b`,
				`\bbetter\s*off\s*dead\b`,
				`\bno\s*reason\s*to\s*live\b`,
				`\bdon'?t\s*want\s*to\s*(be|live)\s*(here|anymore)\b`,
				`\bthoughts?\s*of\s*death\b`,
				`\boverdos(e|ing)\b`,
				`\bjump(ing)?\s*(off|from)\b`,
				`\bhang(ing)?\s*my\s*self\b`,
				`\bpassive\s*suicidal\b`,
				`\bactive\s*suicidal\b`,
				`\bsuicidal\s*ideation\b`,
				`\bsi\s*(present|positive|endorses?|reports?)\b`,
			),
		},
		{
			Key:      "SELF_HARM",
			Label:    "Self-Harm",
			Severity: SeverityHigh,
			Color:    "#f97316",
			Icon:     "⚠️",
			Patterns: mustPatterns(
				`\bself[\s-]*harm\w*\b`,
				`\bcutting\s*(my|his|her|their)?\s*(self|arms?|wrists?|legs?)\b`,
				`\bburnin?g?\s*(my|his|her|their)?\s*self\b`,
				`\bhitting\s*(my|his|her|their)?\s*self\b`,
				`\bself[\s-]*injur\w*\b`,
				`\bself[\s-]*mutilat\w*\b`,
				`\bnon[\s-]*suicidal\s*self[\s-]*injur\w*\b`,
				`\bnssi\b`,
				`\bdeliberate\s*self[\s-]*harm\b`,
				`\bscratching\s*(my|his|her|their)?\s*(self|skin)\b`,
			),
		},
		{
			Key:      "HOMICIDAL",
			Label:    "Homicidal Ideation",
			Severity: SeverityCritical,
			Color:    "#dc2626",
			Icon:     "🔴",
			Patterns: mustPatterns(
				`\bhomicid\w*\b`,
				`\bkill\s*(someone|them|him|her|people|others?)\b`,
				`\bhurt\s*(someone|them|him|her|people|others?)\b`,
				`\bwant\s*to\s*(murder|attack|assault)\b`,
				`\bviolent\s*(thoughts?|urges?|impulses?)\b`,
				`\bthoughts?\s*of\s*(hurting|harming|killing)\s*(others?|someone|people)\b`,
				`\bhi\s*(present|positive|endorses?|reports?)\b`,
			),
		},
		{
			Key:      "PSYCHOSIS",
			Label:    "Psychosis Indicators",
			Severity: SeverityHigh,
			Color:    "#a855f7",
			Icon:     "🔮",
			Patterns: mustPatterns(
				`\bhallucinat\w*\b`,
				`\bdelusion\w*\b`,
				`\bparanoi\w*\b`,
				`\bhearing\s*voices?\b`,
				`\bseeing\s*things\b`,
				`\bvoices?\s*(telling|commanding|saying)\b`,
				`\bthought\s*(insertion|broadcasting|withdrawal)\b`,
				`\bideas?\s*of\s*reference\b`,
				`\bpersecutory\b`,
				`\bgrandiose?\b`,
				`\bdisorganized\s*(thinking|speech|thought|behavior)\b`,
				`\bcatatoni\w*\b`,
				`\bpsychotic\w*\b`,
				`\breality\s*testing\b`,
			),
		},
		{
			Key:      "SUBSTANCE_SEVERE",
			Label:    "Severe Substance Dependence",
			Severity: SeverityModerate,
			Color:    "#eab308",
			Icon:     "💊",
			Patterns: mustPatterns(
				`\bsubstance\s*(abuse|dependence|use\s*disorder)\b`,
				`\b(alcohol|drug)\s*(dependenc|addicti|withdr)\w*\b`,
				`\bdetox\w*\b`,
				`\bdts\b`,
				`\bdelirium\s*tremens\b`,
				`\boverdos(e|ed|ing)\b`,
				`\biv\s*(drug|substance)\s*use\b`,
				`\bheroin\b`,
				`\bmethamphetamine\b`,
				`\bfentanyl\b`,
				`\bcocaine\s*(use|abuse|dependence)\b`,
				`\bopioid\s*(use|abuse|dependence|disorder)\b`,
				`\bbinge\s*drinking\b`,
				`\bsevere\s*alcohol\b`,
				`\bwithdrawal\s*(symptoms?|seizures?|syndrome)\b`,
			),
		},
	}
}
