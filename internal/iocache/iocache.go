package iocache

import (
	"sync"

	"github.com/rotnitxe/kpknfit/internal/contract"
)

// StoreManagerImpl holds the catalog, settings and memo stores.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	catalog      contract.CatalogStore
	settings     contract.SettingsStore
	memo         contract.CacheStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetCatalogStore returns the exercise catalog.
func (mgr *StoreManagerImpl) GetCatalogStore() contract.CatalogStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.catalog
}

// GetSettingsStore returns the athlete settings store.
func (mgr *StoreManagerImpl) GetSettingsStore() contract.SettingsStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.settings
}

// GetMemoStore returns the memo CacheStore.
func (mgr *StoreManagerImpl) GetMemoStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.memo
}
