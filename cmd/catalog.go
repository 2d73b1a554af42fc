package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rotnitxe/kpknfit/core"
	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/internal/iocache"
	"github.com/rotnitxe/kpknfit/schema"
)

// catalogSetup loads minimal configuration needed for catalog and settings operations.
// This is used by commands that need store access without full shared setup.
func catalogSetup() error {
	configureConfigFile()
	if err := readConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("catalog-backend"))
	connStr := viper.GetString("catalog-db-connect")
	if backend == schema.NoneBackend {
		return errors.New("the catalog backend is 'none'; choose sqlite, mysql or postgresql")
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid catalog backend '%s'", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the catalog with the loaded config (no memo for catalog commands)
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}

	cfg.CatalogBackend = backend
	cfg.CatalogDBConnect = connStr
	cfg.AthleteID = viper.GetString("athlete")
	return nil
}

// catalogSetupWrapper wraps catalogSetup to provide PreRunE for catalog commands.
func catalogSetupWrapper(_ *cobra.Command, _ []string) error {
	return catalogSetup()
}

// catalogCmd focused on the exercise catalog.
//
// Note: Catalog subcommands use minimal initialization instead of the full
// sharedSetup used by evaluation commands.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the exercise fatigue catalog",
	Long: `Manage the catalog of exercise fatigue profiles (EFC, CNC, SSC and involved muscles).

Session files may refer to exercises by ID or name; the engine resolves their
fatigue profile from this catalog.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  import  - Load a YAML or JSON catalog file
  list    - Print the catalog
  status  - Show catalog statistics and connection info
  migrate - Move the catalog schema to a given version

Examples:
  kpkn catalog import exercises.yaml
  kpkn catalog status`,
}

// catalogImportCmd loads a catalog file.
var catalogImportCmd = &cobra.Command{
	Use:     "import <catalog-file>",
	Short:   "Import exercise profiles from a YAML or JSON file",
	Args:    cobra.ExactArgs(1),
	PreRunE: catalogSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		n, err := core.ExecuteCatalogImport(rootCtx, storeManager, args[0])
		if err != nil {
			contract.LogFatal("Failed to import catalog", err)
		}
		fmt.Printf("Imported %d exercises.\n", n)
	},
}

// catalogListCmd prints the catalog.
var catalogListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the exercises in the catalog",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCatalogList(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Failed to list catalog", err)
		}
	},
}

// catalogStatusCmd shows catalog status.
var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display catalog statistics and connection details",
	Long: `Show the backend, schema version, number of exercises and athletes, and
table sizes of the catalog database.`,
	PreRunE: catalogSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := storeManager.GetCatalogStore()
		if store == nil {
			contract.LogFatal("Failed to get catalog status", errors.New("catalog store is not configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get catalog status", err)
		}
		iocache.PrintCatalogStatus(os.Stdout, status)
	},
}

// catalogMigrateCmd runs schema migrations.
var catalogMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the catalog schema",
	Long: `Apply or roll back the embedded catalog migrations.

Examples:
  # Migrate to the latest schema
  kpkn catalog migrate

  # Roll back every migration
  kpkn catalog migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		configureConfigFile()
		return readConfigFile()
	},
	Run: func(_ *cobra.Command, _ []string) {
		backend := schema.DatabaseBackend(viper.GetString("catalog-backend"))
		connStr := viper.GetString("catalog-db-connect")
		if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
			contract.LogFatal("Invalid catalog backend", err)
		}
		if err := iocache.MigrateCatalog(backend, connStr, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to migrate catalog", err)
		}
	},
}

// settingsCmd groups the settings store commands.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage athlete profiles, settings and feedback",
}

// settingsImportCmd stores an athlete file.
var settingsImportCmd = &cobra.Command{
	Use:   "import <athlete-file>",
	Short: "Import an athlete file into the settings store",
	Long: `Store the profile, settings and feedback of an athlete file. The athlete ID
comes from --athlete, or from the file when --athlete is left at its default.

Examples:
  kpkn settings import ana.yaml
  kpkn settings import coach-export.json --athlete ana`,
	Args:    cobra.ExactArgs(1),
	PreRunE: catalogSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteSettingsImport(rootCtx, cfg, storeManager, args[0]); err != nil {
			contract.LogFatal("Failed to import athlete", err)
		}
		fmt.Println("Athlete imported successfully.")
	},
}
