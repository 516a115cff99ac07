package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/lukaszwojcik89/worklog/schema"
)

// Creative-percentage band label constants.
const (
	HighBandValue = "High"   // pct > 80
	MidBandValue  = "Medium" // 50 < pct <= 80
	LowBandValue  = "Low"    // pct <= 50
	NoBandValue   = "-"      // no percentage recorded
)

// Color variables for console output.
var (
	HighBandColor = color.New(color.FgGreen, color.Bold) // highBandColor marks strongly creative work.
	MidBandColor  = color.New(color.FgYellow)            // midBandColor marks the middle band.
	LowBandColor  = color.New(color.FgCyan)              // lowBandColor marks routine work.
)

// GetPlainPctLabel returns a plain text band label for a creative percentage.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainPctLabel(pct float64, hasPct bool) string {
	if !hasPct {
		return NoBandValue
	}
	switch {
	case pct > schema.PctBandHigh:
		return HighBandValue
	case pct > schema.PctBandLow:
		return MidBandValue
	default:
		return LowBandValue
	}
}

// GetColorPctLabel returns a colored band label for console output (table).
// It uses GetPlainPctLabel to determine the string, and then applies the
// appropriate color.
func GetColorPctLabel(pct float64, hasPct bool) string {
	text := GetPlainPctLabel(pct, hasPct)

	switch text {
	case HighBandValue:
		return HighBandColor.Sprint(text)
	case MidBandValue:
		return MidBandColor.Sprint(text)
	case LowBandValue:
		return LowBandColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for report cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".worklog_cache.db"
	}
	return filepath.Join(homeDir, ".worklog_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".worklog_analysis.db"
	}
	return filepath.Join(homeDir, ".worklog_analysis.db")
}

// TruncateText truncates a text cell to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is space for both the "..." and at least one
// character of content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
