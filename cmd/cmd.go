// Package cmd defines the command-line interface for kpkn.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(tanksCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(memoCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the catalog subcommands to the parent catalog command
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogStatusCmd)
	catalogCmd.AddCommand(catalogMigrateCmd)

	settingsCmd.AddCommand(settingsImportCmd)

	// Add the memo subcommands to the parent memo command
	memoCmd.AddCommand(memoStatusCmd)
	memoCmd.AddCommand(memoClearCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or xlsx or parquet")
	rootCmd.PersistentFlags().StringP("output-file", "o", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("athlete", contract.DefaultAthleteID, "Athlete ID in the settings store")
	rootCmd.PersistentFlags().String("athlete-file", "", "YAML or JSON athlete file that overrides the settings store")
	rootCmd.PersistentFlags().String("phase", string(schema.AccumulationPhase), "Periodization phase: accumulation or transformation or realization or deload")
	rootCmd.PersistentFlags().String("intensity", string(schema.RPE89Tier), "Proximity to failure: failure or rpe_8_9 or rpe_6_7")
	rootCmd.PersistentFlags().Int("frequency", contract.DefaultFrequency, "Sessions per week that train each muscle")
	rootCmd.PersistentFlags().Float64("session-limit", 0, "Per-session effective set limit for muscles without their own (0 = default)")
	rootCmd.PersistentFlags().Float64("weekly-mrv", 0, "Weekly flat set limit for muscles without their own (0 = default)")
	rootCmd.PersistentFlags().Int("rest", 0, "Rest seconds for exercises that do not state one (0 = default)")
	rootCmd.PersistentFlags().Bool("infer-missing", false, "Infer fatigue profiles from exercise names when the catalog has none")
	rootCmd.PersistentFlags().String("catalog-backend", string(schema.SQLiteBackend), "Catalog and settings backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("catalog-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("memo-backend", string(schema.SQLiteBackend), "Memo backend: sqlite or mysql or postgresql or redis or memory or none")
	rootCmd.PersistentFlags().String("memo-db-connect", "", "Connection string for the memo backend (SQLite files must differ from catalog-db-connect)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of weekCmd to Viper
	weekCmd.Flags().String("history", "", "YAML or JSON file with the daily stress loads before the week, oldest first")
	if err := viper.BindPFlags(weekCmd.Flags()); err != nil {
		contract.LogFatal("Error binding week flags", err)
	}

	// Bind all flags of catalogMigrateCmd to Viper
	catalogMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(catalogMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding catalog migrate flags", err)
	}
}
