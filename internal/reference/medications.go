// Package reference holds static clinical reference data served to the
// UI: medication monitoring tables and the privacy policy document.
package reference

import "strings"

const (
	MedicationsDisclaimer          = "PSYCHOLOGICAL OVERSIGHT ONLY — This information is for clinical monitoring only."
	MedicationCategoryDisclaimer   = "PSYCHOLOGICAL OVERSIGHT ONLY — This reference is provided for clinical monitoring. All prescribing decisions remain the responsibility of a licensed medical professional."
	MedicationNoCategoryDisclaimer = "PSYCHOLOGICAL OVERSIGHT ONLY — Specify a category (depression, anxiety, psychosis, bipolar, insomnia) for targeted monitoring references."
)

type Medication struct {
	Name        string `json:"name"`
	Class       string `json:"class"`
	DosageRange string `json:"dosageRange"`
	Notes       string `json:"notes"`
}

type MedicationCategory struct {
	FirstLine  []Medication `json:"firstLine"`
	Monitoring []string     `json:"monitoring"`
}

// medicationCategoryOrder keeps the category listing stable.
var medicationCategoryOrder = []string{"depression", "anxiety", "psychosis", "bipolar", "insomnia"}

var medicationReference = map[string]MedicationCategory{
	"depression": {
		FirstLine: []Medication{
			{Name: "Sertraline (Zoloft)", Class: "SSRI", DosageRange: "50-200mg/day", Notes: "FDA-approved for MDD, OCD, PTSD, Panic Disorder. Generally well-tolerated."},
			{Name: "Escitalopram (Lexapro)", Class: "SSRI", DosageRange: "10-20mg/day", Notes: "High selectivity. Minimal drug interactions."},
			{Name: "Fluoxetine (Prozac)", Class: "SSRI", DosageRange: "20-80mg/day", Notes: "Long half-life. FDA-approved for adolescent depression."},
			{Name: "Venlafaxine (Effexor XR)", Class: "SNRI", DosageRange: "75-375mg/day", Notes: "Dual mechanism. Monitor BP at higher doses."},
			{Name: "Bupropion (Wellbutrin)", Class: "NDRI", DosageRange: "150-450mg/day", Notes: "No sexual side effects. Contraindicated with seizure disorders."},
		},
		Monitoring: []string{"CBC at baseline", "Metabolic panel", "Suicidality risk (first 4 weeks)", "Weight monitoring"},
	},
	"anxiety": {
		FirstLine: []Medication{
			{Name: "Sertraline (Zoloft)", Class: "SSRI", DosageRange: "50-200mg/day", Notes: "First-line for GAD, Social Anxiety, PTSD."},
			{Name: "Escitalopram (Lexapro)", Class: "SSRI", DosageRange: "10-20mg/day", Notes: "FDA-approved for GAD."},
			{Name: "Duloxetine (Cymbalta)", Class: "SNRI", DosageRange: "60-120mg/day", Notes: "FDA-approved for GAD. Also treats neuropathic pain."},
			{Name: "Buspirone (BuSpar)", Class: "Azapirone", DosageRange: "15-60mg/day", Notes: "Non-addictive. No withdrawal. Takes 2-4 weeks."},
		},
		Monitoring: []string{"Hepatic function (duloxetine)", "Response assessment at 4-6 weeks"},
	},
	"psychosis": {
		FirstLine: []Medication{
			{Name: "Risperidone (Risperdal)", Class: "Atypical Antipsychotic", DosageRange: "2-8mg/day", Notes: "First-line for schizophrenia. Monitor EPS, prolactin."},
			{Name: "Aripiprazole (Abilify)", Class: "Atypical Antipsychotic", DosageRange: "10-30mg/day", Notes: "Partial D2 agonist. Lower metabolic risk."},
			{Name: "Olanzapine (Zyprexa)", Class: "Atypical Antipsychotic", DosageRange: "5-20mg/day", Notes: "Effective but significant metabolic side effects."},
			{Name: "Quetiapine (Seroquel)", Class: "Atypical Antipsychotic", DosageRange: "150-800mg/day", Notes: "Sedating. Used for bipolar depression and insomnia."},
		},
		Monitoring: []string{"Fasting glucose/lipids", "HbA1c", "Weight/BMI", "EPS assessment", "Prolactin levels"},
	},
	"bipolar": {
		FirstLine: []Medication{
			{Name: "Lithium", Class: "Mood Stabilizer", DosageRange: "600-1200mg/day", Notes: "Gold standard. Narrow therapeutic window (0.6-1.2 mEq/L). Anti-suicidal properties."},
			{Name: "Valproate (Depakote)", Class: "Anticonvulsant", DosageRange: "750-2000mg/day", Notes: "Level monitoring required. Avoid in pregnancy."},
			{Name: "Lamotrigine (Lamictal)", Class: "Anticonvulsant", DosageRange: "100-400mg/day", Notes: "Best for bipolar depression maintenance. Slow titration (SJS risk)."},
		},
		Monitoring: []string{"Lithium levels q3-6mo", "Renal function", "Thyroid function", "Valproate levels", "CBC with valproate"},
	},
	"insomnia": {
		FirstLine: []Medication{
			{Name: "Melatonin", Class: "Hormone", DosageRange: "0.5-5mg at bedtime", Notes: "First-line non-pharmacologic. CBT-I preferred."},
			{Name: "Trazodone", Class: "SARI", DosageRange: "25-100mg at bedtime", Notes: "Low-dose for sleep. Minimal dependency risk."},
			{Name: "Hydroxyzine (Vistaril)", Class: "Antihistamine", DosageRange: "25-100mg at bedtime", Notes: "Non-addictive. Also anxiolytic."},
		},
		Monitoring: []string{"Sleep diary", "Daytime drowsiness assessment"},
	},
}

// CategoryReference is a category lookup result.
type CategoryReference struct {
	Category   string       `json:"category,omitempty"`
	FirstLine  []Medication `json:"firstLine,omitempty"`
	Monitoring []string     `json:"monitoring,omitempty"`
	Categories []string     `json:"categories,omitempty"`
	Disclaimer string       `json:"disclaimer"`
}

// MedicationsByCategory looks up a category by fuzzy name match. An
// unknown or empty category returns the list of available categories.
func MedicationsByCategory(category string) CategoryReference {
	normalized := strings.ToLower(category)
	normalized = strings.NewReplacer(" ", "", "-", "").Replace(normalized)

	if normalized != "" {
		for _, key := range medicationCategoryOrder {
			if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
				data := medicationReference[key]
				return CategoryReference{
					Category:   key,
					FirstLine:  data.FirstLine,
					Monitoring: data.Monitoring,
					Disclaimer: MedicationCategoryDisclaimer,
				}
			}
		}
	}

	return CategoryReference{
		Categories: append([]string(nil), medicationCategoryOrder...),
		Disclaimer: MedicationNoCategoryDisclaimer,
	}
}

// AllMedications returns the full reference table.
func AllMedications() map[string]MedicationCategory {
	return medicationReference
}
