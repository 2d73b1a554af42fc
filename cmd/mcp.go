package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rotnitxe/kpknfit/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the KPKN MCP server",
	Long:    `Launch an MCP server on stdio that lets AI agents recommend volume, analyze sessions and compute tanks.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
