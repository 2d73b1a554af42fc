package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/internal/iocache"
	"github.com/rotnitxe/kpknfit/schema"
)

// memoSetup loads minimal configuration needed for memo operations.
func memoSetup() error {
	configureConfigFile()
	if err := readConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("memo-backend"))
	connStr := viper.GetString("memo-db-connect")
	if _, ok := schema.ValidMemoBackends[backend]; !ok {
		return fmt.Errorf("invalid memo backend '%s'", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize memo: %w", err)
	}

	cfg.MemoBackend = backend
	cfg.MemoDBConnect = connStr
	return nil
}

// memoSetupWrapper wraps memoSetup to provide PreRunE for memo commands.
func memoSetupWrapper(_ *cobra.Command, _ []string) error {
	return memoSetup()
}

// memoCmd focused on memo management.
var memoCmd = &cobra.Command{
	Use:   "memo",
	Short: "Manage memoized evaluations",
	Long: `Manage the memo of recommendation and session results.

Evaluations are pure functions of their inputs, so identical requests are
answered from the memo. Entries expire after a week and are ignored after an
engine version change.

Supported backends: SQLite (default), MySQL, PostgreSQL, Redis, Memory, or None

Subcommands:
  status - Show memo statistics and connection info
  clear  - Remove all memoized data

Examples:
  kpkn memo status
  KPKN_MEMO_BACKEND=redis KPKN_MEMO_DB_CONNECT=localhost:6379 kpkn memo clear`,
}

// memoClearCmd clears the memo.
var memoClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Remove all memoized results",
	PreRunE: memoSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := storeManager.GetMemoStore()
		if store == nil {
			contract.LogFatal("Failed to clear memo", errors.New("memo store is not configured"))
		}
		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear memo", err)
		}
		fmt.Println("Memo cleared successfully.")
	},
}

// memoStatusCmd shows memo status.
var memoStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display memo statistics and connection details",
	PreRunE: memoSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := storeManager.GetMemoStore()
		if store == nil {
			contract.LogFatal("Failed to get memo status", errors.New("memo store is not configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get memo status", err)
		}
		iocache.PrintMemoStatus(os.Stdout, status)
	},
}
