package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestFormatHours tests conversion of decimal hours into H:MM.
func TestFormatHours(t *testing.T) {
	tests := []struct {
		name     string
		hours    float64
		expected string
	}{
		{name: "zero", hours: 0, expected: "0:00"},
		{name: "negative", hours: -2, expected: "0:00"},
		{name: "half hour", hours: 10.5, expected: "10:30"},
		{name: "whole hours", hours: 3, expected: "3:00"},
		{name: "rounding", hours: 1.999, expected: "2:00"},
		{name: "over a day", hours: 25.25, expected: "25:15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatHours(tt.hours))
		})
	}
}

// TestNormalizeName verifies exact-match-after-normalization semantics.
func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "clean", input: "Jan Kowalski", expected: "Jan Kowalski"},
		{name: "padded", input: "  Jan Kowalski  ", expected: "Jan Kowalski"},
		{name: "interior runs", input: "Jan \t Kowalski", expected: "Jan Kowalski"},
		{name: "empty", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}

	// Distinct people must stay distinct.
	assert.NotEqual(t, NormalizeName("Jan Kowalski"), NormalizeName("Jan Kowalsky"))
}

// TestMonthKey checks month derivation including the zero-date case.
func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2026-01", MonthKey(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", MonthKey(time.Time{}))
}

// TestWindowKey covers both window variants.
func TestWindowKey(t *testing.T) {
	assert.Equal(t, "all", AllWindow().Key())
	assert.Equal(t, "2025-12", MonthWindow(2025, time.December).Key())
}

// TestWindowContains verifies month matching and the legacy zero-date rule.
func TestWindowContains(t *testing.T) {
	dated := Entry{Date: time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC), Month: "2026-02"}
	legacy := Entry{}

	assert.True(t, AllWindow().Contains(dated))
	assert.True(t, AllWindow().Contains(legacy))
	assert.True(t, MonthWindow(2026, time.February).Contains(dated))
	assert.False(t, MonthWindow(2026, time.March).Contains(dated))
	assert.False(t, MonthWindow(2026, time.February).Contains(legacy))
}

// TestEntryCreativeHours checks the row-level creative hours derivation.
func TestEntryCreativeHours(t *testing.T) {
	withPct := Entry{Hours: 10, Pct: 90, HasPct: true}
	assert.InDelta(t, 9.0, withPct.CreativeHours(), 1e-9)

	noPct := Entry{Hours: 10}
	assert.Zero(t, noPct.CreativeHours())
}
