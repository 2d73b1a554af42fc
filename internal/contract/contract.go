// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"errors"

	"github.com/rotnitxe/kpknfit/schema"
)

// ErrNotFound is returned by stores when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// StoreManager defines the interface for managing the persistent stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetCatalogStore() CatalogStore
	GetSettingsStore() SettingsStore
	GetMemoStore() CacheStore
}

// CatalogStore is the read-only source of exercise fatigue profiles.
type CatalogStore interface {
	// Lookup finds an exercise by id, falling back to a case-insensitive name match.
	Lookup(id, name string) (schema.ExerciseFatigueProfile, error)

	// List returns every exercise ordered by name.
	List() ([]schema.ExerciseFatigueProfile, error)

	// Import upserts exercises and returns how many were written.
	Import(exercises []schema.ExerciseFatigueProfile) (int, error)

	// GetStatus returns status information about the catalog store.
	GetStatus() (schema.CatalogStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// SettingsStore is the read-only source of athlete profiles and settings.
type SettingsStore interface {
	// GetProfile returns the capability profile of an athlete.
	GetProfile(athleteID string) (schema.AthleteProfile, error)

	// GetSettings returns the engine settings of an athlete.
	GetSettings(athleteID string) (schema.Settings, error)

	// GetFeedback returns the feedback history of an athlete, keyed by muscle.
	GetFeedback(athleteID string) (map[string][]schema.Feedback, error)

	// PutAthlete stores the profile, settings and feedback of an athlete.
	PutAthlete(athleteID string, athlete schema.AthleteFile) error

	// Close closes the underlying connection.
	Close() error
}
