package cmd

import (
	"github.com/lukaszwojcik89/worklog/core"
	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/spf13/cobra"
)

// personCmd summarizes productivity per person.
var personCmd = &cobra.Command{
	Use:   "person <input-file>",
	Short: "Show per-person summaries ranked by creative score.",
	Long: `Summarize logged work per person across the whole export.

For every person the summary shows:
- Task count and total hours
- Creative hours and the creative score
- Hours-weighted average creative percentage with its band
- Coverage: the share of hours carrying a creative percentage
- The top task, by creative score when percentages exist, by hours otherwise

Examples:
  # Rank everyone by creative score
  worklog person worklogs.csv

  # Inspect a single person
  worklog person worklogs.csv --person "Jan Kowalski"

  # Export summaries to CSV
  worklog person worklogs.csv --output csv --output-file people.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePerson(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run person summary", err)
		}
	},
}
