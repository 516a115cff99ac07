package schema

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatHours converts decimal hours back to "H:MM" for display and export.
// Sub-minute remainders are rounded to the nearest minute.
func FormatHours(hours float64) string {
	if hours <= 0 || math.IsNaN(hours) {
		return "0:00"
	}
	totalMinutes := int(math.Round(hours * 60))
	return fmt.Sprintf("%d:%02d", totalMinutes/60, totalMinutes%60)
}

// MonthKey formats a date as "YYYY-MM", the month grouping key used across
// windowing and display. Zero dates yield an empty key.
func MonthKey(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format("2006-01")
}

// NormalizeName canonicalizes a person name for use as an aggregation key:
// surrounding whitespace is trimmed and interior runs collapse to one space.
// Matching stays exact after normalization. There is no fuzzy merging, so
// distinct people are never silently combined.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// TotalEntryHours sums the hours of a canonical sequence. Aggregation must
// preserve this sum exactly; tests lean on it for the conservation check.
func TotalEntryHours(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	return total
}

// TotalAggregateHours sums the hours of an aggregate table.
func TotalAggregateHours(rows []AggregateRow) float64 {
	var total float64
	for _, r := range rows {
		total += r.TotalHours
	}
	return total
}
