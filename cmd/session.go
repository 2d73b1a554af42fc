package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rotnitxe/kpknfit/core"
	"github.com/rotnitxe/kpknfit/internal/contract"
)

// sessionCmd evaluates one training session.
var sessionCmd = &cobra.Command{
	Use:   "session <session-file>",
	Short: "Measure the CNS, muscular and spinal drain of a session.",
	Long: `Evaluate every working set of a session against the athlete's capacity tanks.

Each set drains the CNS, muscular and spinal tanks according to its reps, load,
effort, rest and the fatigue profile of the exercise. Volume alerts fire when a
muscle crosses its per-session limit, and the exercise that pushed it over is
named as the culprit. Alerts are echoed to stderr as they happen.

Exercises without an inline profile are looked up in the catalog; with
--infer-missing the remaining ones get a profile inferred from their name.

Examples:
  kpkn session monday.yaml
  kpkn session monday.yaml --infer-missing --output json
  kpkn session monday.yaml --output parquet --output-file monday.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteSession(rootCtx, cfg, storeManager, args[0]); err != nil {
			contract.LogFatal("Cannot evaluate session", err)
		}
	},
}

// weekCmd evaluates several sessions as one week.
var weekCmd = &cobra.Command{
	Use:   "week <session-file>...",
	Short: "Evaluate the sessions of a week in order.",
	Long: `Evaluate several sessions in the order given. Each session sees the weekly
volume accumulated by the sessions before it, so weekly limits fire on the
session that crosses them.

With --history, the daily stress loads before the week are combined with the
week's session stress to compute the acute:chronic workload ratio.

Examples:
  kpkn week mon.yaml wed.yaml fri.yaml
  kpkn week *.yaml --history loads.yaml --output xlsx --output-file week.xlsx`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteWeek(rootCtx, cfg, storeManager, args); err != nil {
			contract.LogFatal("Cannot evaluate week", err)
		}
	},
}

// tanksCmd shows the capacity tanks.
var tanksCmd = &cobra.Command{
	Use:   "tanks",
	Short: "Show the athlete's personalized capacity tanks.",
	Long: `Show the CNS, muscular and spinal tank sizes derived from bodyweight, calorie
goal, life stress and calibration, next to the 75 kg baseline.

Examples:
  kpkn tanks --athlete ana`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTanks(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot compute tanks", err)
		}
	},
}
