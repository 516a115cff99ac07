package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszwojcik89/worklog/schema"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		InputFileStr:    "worklogs.csv",
		Limit:           DefaultResultLimit,
		Precision:       DefaultPrecision,
		Output:          "text",
		Emoji:           "no",
		Color:           "yes",
		CacheBackend:    "sqlite",
		AnalysisBackend: "none",
		Window:          "all",
	}
}

// TestProcessAndValidateDefaults checks the happy path with defaults.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validRawInput()))

	assert.Equal(t, "worklogs.csv", cfg.InputFile)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.True(t, cfg.Window.All)
	assert.InDelta(t, float64(DefaultMonthlyHours), cfg.MonthlyHours, 1e-9)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.UseEmojis)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
}

// TestProcessAndValidateErrors covers the rejection paths.
func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{name: "zero limit", mutate: func(in *ConfigRawInput) { in.Limit = 0 }},
		{name: "huge limit", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }},
		{name: "bad precision", mutate: func(in *ConfigRawInput) { in.Precision = 5 }},
		{name: "bad output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }},
		{name: "bad emoji", mutate: func(in *ConfigRawInput) { in.Emoji = "maybe" }},
		{name: "bad window", mutate: func(in *ConfigRawInput) { in.Window = "january" }},
		{name: "window month 13", mutate: func(in *ConfigRawInput) { in.Window = "2026-13" }},
		{name: "negative gross", mutate: func(in *ConfigRawInput) { in.Gross = -100 }},
		{name: "negative monthly hours", mutate: func(in *ConfigRawInput) { in.MonthlyHours = -1 }},
		{name: "bad cache backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "oracle" }},
		{name: "mysql without connect", mutate: func(in *ConfigRawInput) { in.CacheBackend = "mysql" }},
		{name: "unknown category", mutate: func(in *ConfigRawInput) {
			in.Categories = map[string][]string{"Gardening": {"plant"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

// TestParseWindow parses both variants and rejects malformed values.
func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("all")
	require.NoError(t, err)
	assert.True(t, w.All)

	w, err = ParseWindow("")
	require.NoError(t, err)
	assert.True(t, w.All)

	w, err = ParseWindow("2026-02")
	require.NoError(t, err)
	assert.False(t, w.All)
	assert.Equal(t, 2026, w.Year)
	assert.Equal(t, time.February, w.Month)

	for _, bad := range []string{"2026", "2026-00", "2026-13", "abcd-ef"} {
		_, err = ParseWindow(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

// TestCategoryExtensions lower-cases and trims configured keywords.
func TestCategoryExtensions(t *testing.T) {
	input := validRawInput()
	input.Categories = map[string][]string{
		"Development": {" Sprint Work ", ""},
	}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []string{"sprint work"}, cfg.ExtraKeywords[schema.CategoryDev])
}

// TestBackendConflict rejects cache and analysis sharing one SQLite file.
func TestBackendConflict(t *testing.T) {
	input := validRawInput()
	input.CacheBackend = "sqlite"
	input.AnalysisBackend = "sqlite"
	input.CacheDBConnect = "/tmp/same.db"
	input.AnalysisDBConnect = "/tmp/same.db"

	assert.Error(t, ProcessAndValidate(&Config{}, input))

	input.AnalysisDBConnect = "/tmp/other.db"
	assert.NoError(t, ProcessAndValidate(&Config{}, input))
}
