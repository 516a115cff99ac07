package cmd

import (
	"github.com/lukaszwojcik89/worklog/core"
	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/spf13/cobra"
)

// categoriesCmd breaks the dataset down per task category.
var categoriesCmd = &cobra.Command{
	Use:   "categories <input-file>",
	Short: "Show the hours breakdown per task category.",
	Long: `Break the whole export down by task category.

Task summaries are matched against an ordered keyword table (bugfixes before
development, meetings before admin work, and so on); the first matching
category wins and unmatched tasks land in Other. Every category appears in the
breakdown, zero rows included, so the table shape never shifts between runs.

Keyword extensions can be added per category in the .worklog.yaml config file:

  categories:
    Bug/Hotfix: [incydent, awaria]
    Meetings: [retro]

Examples:
  # Hours per category
  worklog categories worklogs.csv

  # Share analysis in CSV
  worklog categories worklogs.csv --output csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCategories(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run category breakdown", err)
		}
	},
}
