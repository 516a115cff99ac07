package outwriter

import (
	"os"

	"github.com/lukaszwojcik89/worklog/internal/contract"
	"golang.org/x/term"
)

// getMaxTableSummaryWidth calculates the maximum width for task summaries in
// table output based on terminal width and the fixed columns around them.
func getMaxTableSummaryWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns: person, task key, hours, pct,
	// creative hours, band label, plus borders, separators and padding
	baseWidth := 60

	// Calculate available space for the summary text
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable summary width
		return 15
	}
	if available > 70 {
		// Maximum summary width to prevent overly wide tables
		return 70
	}
	return available
}
