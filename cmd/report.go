package cmd

import (
	"github.com/lukaszwojcik89/worklog/core"
	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd aggregates worklog entries per (person, task).
var reportCmd = &cobra.Command{
	Use:   "report <input-file>",
	Short: "Show the per-(person, task) rollup ranked by hours.",
	Long: `Normalize a worklog CSV export and rank (person, task) pairs by total hours.

Each entry's HH:MM duration and creative percentage are validated, mojibake in
Polish names is repaired, and entries for the same person and task key are
merged into one row with:
- Total hours, preserved exactly across aggregation
- Hours-weighted creative percentage
- Creative hours (hours x pct/100) and the quadratic creative score
- A task category derived from keywords in the task summary

Rejected rows are tallied per reason on stderr so redirected output stays clean.

Examples:
  # Rank the top 20 tasks
  worklog report worklogs.csv --limit 20

  # Export the full rollup to CSV for tracking
  worklog report worklogs.csv --output csv --output-file rollup.csv

  # Columnar export for DuckDB/pandas
  worklog report worklogs.csv --output parquet --output-file rollup.parquet

  # Read the older hierarchical export layout
  worklog report legacy.csv --legacy`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run report", err)
		}
	},
}
