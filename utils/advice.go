package utils

import "strings"

// Rule-based dietary advice over one day of diary entries. Kept
// deliberately simple: each rule fires at most once per day, and the
// output order is fixed.

type AdviceSeverity string

const (
	AdviceInfo    AdviceSeverity = "info"
	AdviceCaution AdviceSeverity = "caution"
)

// Advice is a structured finding you can show in the API / email body.
type Advice struct {
	Code     string         `json:"code"`
	Severity AdviceSeverity `json:"severity"`
	Message  string         `json:"message"`
}

const (
	lowWaterThreshold = 4 // cups/day below which we nudge
	riceMealThreshold = 3 // rice-containing meals per day at which we nudge

	lowWaterMessage = "Your water intake today was low. Consider drinking coconut water, zobo, or eating watermelon."
	riceMessage     = "You've had rice multiple times today. Try adding more vegetables like efo riro or okra."
)

// AssessDay applies the daily advisory rules to a day's water total and
// meal descriptions. Rules fire in a fixed order: water first, rice second.
func AssessDay(waterTotal int, descriptions []string) []Advice {
	advice := []Advice{}

	if waterTotal < lowWaterThreshold {
		advice = append(advice, Advice{
			Code:     "water_low",
			Severity: AdviceCaution,
			Message:  lowWaterMessage,
		})
	}

	riceMeals := 0
	for _, d := range descriptions {
		if strings.Contains(strings.ToLower(d), "rice") {
			riceMeals++
		}
	}
	if riceMeals >= riceMealThreshold {
		advice = append(advice, Advice{
			Code:     "rice_repeat",
			Severity: AdviceInfo,
			Message:  riceMessage,
		})
	}

	return advice
}

// AdviceMessages keeps the original plain-strings signature for callers
// that only render text.
func AdviceMessages(waterTotal int, descriptions []string) []string {
	as := AssessDay(waterTotal, descriptions)
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, a.Message)
	}
	return out
}
