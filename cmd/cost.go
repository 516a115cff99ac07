package cmd

import (
	"github.com/lukaszwojcik89/worklog/core"
	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/spf13/cobra"
)

// costCmd allocates one person's gross compensation across their work.
var costCmd = &cobra.Command{
	Use:   "cost <input-file>",
	Short: "Allocate gross compensation across a person's tasks.",
	Long: `Split one person's gross compensation across their tasks and categories.

Two window modes drive the allocation:
- A month window ('YYYY-MM') distributes the whole gross proportionally to the
  hours logged inside that month.
- The 'all' window prices every logged hour at gross divided by the monthly
  hours basis (168 by default).

Each task and category gets its cost plus a creative cost share, and the most
and least expensive tasks are called out.

Examples:
  # Allocate a January salary
  worklog cost worklogs.csv --person "Jan Kowalski" --gross 16000 --window 2026-01

  # Price the full history at an hourly rate
  worklog cost worklogs.csv --person "Jan Kowalski" --gross 16000 --window all

  # Custom monthly hours basis for part-time contracts
  worklog cost worklogs.csv --person "Anna Nowak" --gross 8000 --monthly-hours 84

  # Machine-readable allocation
  worklog cost worklogs.csv --person "Jan Kowalski" --gross 16000 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCost(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run cost allocation", err)
		}
	},
}
