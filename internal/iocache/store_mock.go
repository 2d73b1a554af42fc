package iocache

import (
	"github.com/stretchr/testify/mock"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetCatalogStore implements the StoreManager interface.
func (m *MockStoreManager) GetCatalogStore() contract.CatalogStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CatalogStore)
	return store
}

// GetSettingsStore implements the StoreManager interface.
func (m *MockStoreManager) GetSettingsStore() contract.SettingsStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SettingsStore)
	return store
}

// GetMemoStore implements the StoreManager interface.
func (m *MockStoreManager) GetMemoStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Clear implements the CacheStore interface.
func (m *MockCacheStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockCatalogStore is a mock implementation of CatalogStore for testing.
type MockCatalogStore struct {
	mock.Mock
}

var _ contract.CatalogStore = &MockCatalogStore{} // Compile-time check

// Lookup implements the CatalogStore interface.
func (m *MockCatalogStore) Lookup(id, name string) (schema.ExerciseFatigueProfile, error) {
	args := m.Called(id, name)
	return args.Get(0).(schema.ExerciseFatigueProfile), args.Error(1)
}

// List implements the CatalogStore interface.
func (m *MockCatalogStore) List() ([]schema.ExerciseFatigueProfile, error) {
	args := m.Called()
	list, _ := args.Get(0).([]schema.ExerciseFatigueProfile)
	return list, args.Error(1)
}

// Import implements the CatalogStore interface.
func (m *MockCatalogStore) Import(exercises []schema.ExerciseFatigueProfile) (int, error) {
	args := m.Called(exercises)
	return args.Int(0), args.Error(1)
}

// GetStatus implements the CatalogStore interface.
func (m *MockCatalogStore) GetStatus() (schema.CatalogStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CatalogStatus), args.Error(1)
}

// Close implements the CatalogStore interface.
func (m *MockCatalogStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSettingsStore is a mock implementation of SettingsStore for testing.
type MockSettingsStore struct {
	mock.Mock
}

var _ contract.SettingsStore = &MockSettingsStore{} // Compile-time check

// GetProfile implements the SettingsStore interface.
func (m *MockSettingsStore) GetProfile(athleteID string) (schema.AthleteProfile, error) {
	args := m.Called(athleteID)
	return args.Get(0).(schema.AthleteProfile), args.Error(1)
}

// GetSettings implements the SettingsStore interface.
func (m *MockSettingsStore) GetSettings(athleteID string) (schema.Settings, error) {
	args := m.Called(athleteID)
	return args.Get(0).(schema.Settings), args.Error(1)
}

// GetFeedback implements the SettingsStore interface.
func (m *MockSettingsStore) GetFeedback(athleteID string) (map[string][]schema.Feedback, error) {
	args := m.Called(athleteID)
	feedback, _ := args.Get(0).(map[string][]schema.Feedback)
	return feedback, args.Error(1)
}

// PutAthlete implements the SettingsStore interface.
func (m *MockSettingsStore) PutAthlete(athleteID string, athlete schema.AthleteFile) error {
	args := m.Called(athleteID, athlete)
	return args.Error(0)
}

// Close implements the SettingsStore interface.
func (m *MockSettingsStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
