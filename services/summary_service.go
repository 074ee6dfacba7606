package services

import (
	"fmt"
	"strings"

	"github.com/PleasantH/NutriPal-Chatbot/models"
	"github.com/PleasantH/NutriPal-Chatbot/utils"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

func ParseGranularity(s string) (Granularity, bool) {
	switch Granularity(s) {
	case GranularityDay, GranularityMonth:
		return Granularity(s), true
	}
	return "", false
}

// SummaryBucket is one time bucket of a summary: a day or a month,
// its rendered meal lines in entry order, and the summed water cups.
type SummaryBucket struct {
	Label      string   `json:"label"`
	MealLines  []string `json:"meal_lines"`
	WaterTotal int      `json:"water_total"`
}

// Summarize folds entries into buckets keyed by day or month. Buckets
// keep first-seen order; lines within a bucket keep entry order. Never
// re-sorted by label.
func Summarize(entries []models.LogEntry, g Granularity) ([]SummaryBucket, error) {
	var buckets []SummaryBucket
	index := make(map[string]int)

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		label := e.Date
		if g == GranularityMonth {
			label = e.Month()
		}
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, SummaryBucket{Label: label})
		}
		buckets[i].MealLines = append(buckets[i].MealLines,
			fmt.Sprintf("%s: %s", e.MealType, e.Description))
		buckets[i].WaterTotal += e.Water
	}
	return buckets, nil
}

// RenderSummary turns buckets into the text block shown in the app and
// mailed by the daily job: a header per bucket, bulleted meal lines and
// a water total, buckets separated by a blank line.
func RenderSummary(buckets []SummaryBucket) string {
	var b strings.Builder
	for i, bucket := range buckets {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Summary for %s\n", bucket.Label)
		for _, line := range bucket.MealLines {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		fmt.Fprintf(&b, "Total water: %d cups\n", bucket.WaterTotal)
	}
	return b.String()
}

// TodaySummary renders the single-day variant used for the scheduled
// email: today's bucket followed by the advisory lines. The second
// return value is false when the day has no entries, in which case
// nothing should be sent.
func TodaySummary(entries []models.LogEntry, today string) (string, bool, error) {
	var todays []models.LogEntry
	for _, e := range entries {
		if e.Date == today {
			todays = append(todays, e)
		}
	}
	if len(todays) == 0 {
		return "", false, nil
	}

	buckets, err := Summarize(todays, GranularityDay)
	if err != nil {
		return "", false, err
	}
	bucket := buckets[0]

	descriptions := make([]string, 0, len(todays))
	for _, e := range todays {
		descriptions = append(descriptions, e.Description)
	}

	var b strings.Builder
	b.WriteString(RenderSummary(buckets))
	for _, msg := range utils.AdviceMessages(bucket.WaterTotal, descriptions) {
		b.WriteString("\n")
		b.WriteString(msg)
	}
	return b.String(), true, nil
}
