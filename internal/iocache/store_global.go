package iocache

import (
	"fmt"
	"sync"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetCatalogDBFilePath returns the path to the SQLite DB file for the catalog and settings.
func GetCatalogDBFilePath() string {
	return contract.GetCatalogDBFilePath()
}

// GetMemoDBFilePath returns the path to the SQLite DB file for memoized results.
func GetMemoDBFilePath() string {
	return contract.GetMemoDBFilePath()
}

// InitStores initializes the global manager. The catalog and settings stores
// share catalogBackend; an empty backend leaves the matching store unset.
func InitStores(catalogBackend schema.DatabaseBackend, catalogConnStr string, memoBackend schema.DatabaseBackend, memoConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		var catalog *CatalogStoreImpl
		var settings *SettingsStoreImpl
		var memo contract.CacheStore
		var err error

		if catalogBackend != "" {
			catalog, err = NewCatalogStore(catalogBackend, catalogConnStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize exercise catalog: %w", err)
				return
			}
			settings, err = NewSettingsStore(catalogBackend, catalogConnStr)
			if err != nil {
				_ = catalog.Close()
				initErr = fmt.Errorf("failed to initialize settings store: %w", err)
				return
			}
		}

		if memoBackend != "" {
			memo, err = NewMemoStore(memoTable, memoBackend, memoConnStr)
			if err != nil {
				if catalog != nil {
					_ = catalog.Close()
					_ = settings.Close()
				}
				initErr = fmt.Errorf("failed to initialize memoization: %w", err)
				return
			}
		}

		Manager.Lock()
		defer Manager.Unlock()
		if catalog != nil {
			Manager.catalog = catalog
			Manager.settings = settings
		}
		Manager.memo = memo
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.catalog != nil {
			_ = Manager.catalog.Close()
		}
		if Manager.settings != nil {
			_ = Manager.settings.Close()
		}
		if Manager.memo != nil {
			_ = Manager.memo.Close()
		}
	})
}
