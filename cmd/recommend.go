package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rotnitxe/kpknfit/core"
	"github.com/rotnitxe/kpknfit/internal/contract"
)

// recommendCmd prints weekly volume targets.
var recommendCmd = &cobra.Command{
	Use:   "recommend [muscle...]",
	Short: "Recommend weekly set volume per muscle.",
	Long: `Compute the minimum effective, maximum adaptive and maximum recoverable
weekly volume of each muscle from the athlete profile.

The profile sub-scores place the athlete in a capacity band. The band range is
then scaled by the periodization phase, the proximity-to-failure tier and the
small-muscle bonus, and capped by the weekly frequency. Recent DOMS and strength
feedback from the settings store nudge the result up or down.

Muscle names may be given in English or Spanish; with no names every canonical
muscle is listed.

Examples:
  # Targets for every muscle
  kpkn recommend

  # Chest and back during a deload, trained three times a week
  kpkn recommend pecho espalda --phase deload --frequency 3

  # Use an athlete file instead of the settings store
  kpkn recommend --athlete-file ana.yaml --output xlsx --output-file ana.xlsx`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteRecommend(rootCtx, cfg, storeManager, args); err != nil {
			contract.LogFatal("Cannot recommend volume", err)
		}
	},
}

// planCmd compares a program template with the recommendations.
var planCmd = &cobra.Command{
	Use:   "plan <program-file>",
	Short: "Compare a program template with the recommended volume.",
	Long: `Credit every planned set to its target muscle and, at half a set, to the
target's synergists. The planned weekly volume of each muscle is then compared
with the athlete's recommendation, and every planned session is checked against
the per-session set limit.

Examples:
  kpkn plan upper-lower.yaml
  kpkn plan ppl.yaml --phase transformation --output csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecutePlan(rootCtx, cfg, storeManager, args[0]); err != nil {
			contract.LogFatal("Cannot compare plan", err)
		}
	},
}
