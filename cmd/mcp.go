package cmd

import (
	"github.com/lukaszwojcik89/worklog/internal/iocache"
	"github.com/lukaszwojcik89/worklog/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Worklog MCP server",
	Long:  `Launch an MCP server that allows AI agents to run worklog reports, summaries and cost allocations via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The protocol runs over stdio, so setup must stay quiet on stdout.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, iocache.Manager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
