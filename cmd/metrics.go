package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rotnitxe/kpknfit/core"
	"github.com/rotnitxe/kpknfit/internal/contract"
)

// metricsCmd displays the lookup tables and formulas of the engine.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the lookup tables and formulas of the training-load model",
	Long: `Show the band ranges, phase and intensity factors, role weights, tank
baselines and drain curves the engine uses.

No athlete data is read - this is purely informational.

Examples:
  kpkn metrics
  kpkn metrics --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
