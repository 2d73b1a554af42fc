// Package main is the entry point of the kpkn CLI.
package main

import (
	"fmt"
	"os"

	"github.com/rotnitxe/kpknfit/cmd"
	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/internal/iocache"
)

func main() {
	cmd.SetStoreManager(iocache.Manager)
	defer iocache.CloseStores()
	defer contract.SyncLogger()

	err := cmd.Execute()
	if perr := cmd.StopProfiling(); perr != nil {
		_, _ = fmt.Fprintln(os.Stderr, perr)
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1) //nolint:gocritic // deferred cleanup is best effort
	}
}
