// Package core has the worklog processing pipeline: parsing, normalization,
// metric computation, cost allocation and cached orchestration.
package core

import (
	"strconv"
	"strings"

	"github.com/lukaszwojcik89/worklog/schema"
)

// ParseTime converts a logged-time field into decimal hours.
//
// Accepted forms:
//   - "10:30" -> 10.5 (hours may exceed 24, e.g. "36:00")
//   - "3"     -> 3.0
//   - "2.5h"  -> 2.5 (trailing unit marker)
//
// Empty, negative, or otherwise unparseable input fails with a parse error.
// Callers skip the row and count it; a bad value never becomes a silent zero.
func ParseTime(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, schema.NewParseError("time", raw, "empty value")
	}

	if strings.Contains(s, ":") {
		parts := strings.SplitN(s, ":", 3)
		if len(parts) > 2 {
			return 0, schema.NewParseError("time", raw, "expected HH:MM")
		}
		hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, schema.NewParseError("time", raw, "invalid hour component")
		}
		minutes := 0
		if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
			minutes, err = strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return 0, schema.NewParseError("time", raw, "invalid minute component")
			}
		}
		if hours < 0 || minutes < 0 || minutes > 59 {
			return 0, schema.NewParseError("time", raw, "negative or out-of-range component")
		}
		return float64(hours) + float64(minutes)/60, nil
	}

	// Decimal fallback, with an optional trailing unit marker ("h").
	s = strings.TrimSuffix(strings.TrimSuffix(s, "h"), "H")
	s = strings.TrimSpace(s)
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, schema.NewParseError("time", raw, "not a number or HH:MM")
	}
	if value < 0 {
		return 0, schema.NewParseError("time", raw, "negative hours")
	}
	return value, nil
}

// Markers the source uses for "no percentage recorded". Matched
// case-insensitively as substrings after trimming.
var noPctMarkers = []string{"no procent", "brak danych", "none", "nan"}

// ParsePercent extracts a creative-work percentage from a raw field.
//
// It returns ok=false (and no error) when the field is empty or carries one
// of the known "no data" markers: an absent percentage is valid data, not a
// defect. Out-of-range values are rejected with a validation error rather
// than clamped, since clamping would corrupt every downstream creative
// metric.
func ParsePercent(raw string) (pct float64, ok bool, err error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false, nil
	}
	lower := strings.ToLower(s)
	for _, marker := range noPctMarkers {
		if strings.Contains(lower, marker) {
			return 0, false, nil
		}
	}

	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	value, parseErr := strconv.ParseFloat(s, 64)
	if parseErr != nil {
		return 0, false, schema.NewParseError("creative_pct", raw, "not a number")
	}
	if value < 0 || value > 100 {
		return 0, false, schema.NewValidationError("creative_pct", raw, "outside [0,100]")
	}
	return value, true, nil
}
