package iocache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

var athleteColumns = []string{"id", "profile", "settings", "feedback", "updated_at"}

// SettingsStoreImpl serves athlete profiles, settings and feedback from a SQL database.
// It shares the database of the catalog.
type SettingsStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.SettingsStore = &SettingsStoreImpl{} // Compile-time check

// NewSettingsStore opens the settings database and migrates it to the latest schema.
func NewSettingsStore(backend schema.DatabaseBackend, connStr string) (*SettingsStoreImpl, error) {
	if backend == schema.NoneBackend {
		return &SettingsStoreImpl{backend: backend}, nil
	}
	db, err := openDB(backend, connStr, GetCatalogDBFilePath())
	if err != nil {
		return nil, err
	}
	if _, _, err := migrateDB(db, backend, -1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare settings schema: %w", err)
	}
	return &SettingsStoreImpl{db: db, backend: backend}, nil
}

// GetProfile returns the capability profile of an athlete.
func (ss *SettingsStoreImpl) GetProfile(athleteID string) (schema.AthleteProfile, error) {
	var profile schema.AthleteProfile
	raw, err := ss.column(athleteID, "profile")
	if err != nil {
		return profile, err
	}
	if !raw.Valid || raw.String == "" || raw.String == "null" {
		return profile, fmt.Errorf("profile of athlete %q: %w", athleteID, contract.ErrNotFound)
	}
	if err := json.Unmarshal([]byte(raw.String), &profile); err != nil {
		return profile, fmt.Errorf("corrupt profile for athlete %q: %w", athleteID, err)
	}
	return profile, nil
}

// GetSettings returns the engine settings of an athlete.
func (ss *SettingsStoreImpl) GetSettings(athleteID string) (schema.Settings, error) {
	var settings schema.Settings
	raw, err := ss.column(athleteID, "settings")
	if err != nil {
		return settings, err
	}
	if err := json.Unmarshal([]byte(raw.String), &settings); err != nil {
		return settings, fmt.Errorf("corrupt settings for athlete %q: %w", athleteID, err)
	}
	settings.AthleteID = athleteID
	return settings, nil
}

// GetFeedback returns the feedback history of an athlete, keyed by muscle.
func (ss *SettingsStoreImpl) GetFeedback(athleteID string) (map[string][]schema.Feedback, error) {
	raw, err := ss.column(athleteID, "feedback")
	if err != nil {
		return nil, err
	}
	feedback := map[string][]schema.Feedback{}
	if raw.String == "" {
		return feedback, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &feedback); err != nil {
		return nil, fmt.Errorf("corrupt feedback for athlete %q: %w", athleteID, err)
	}
	return feedback, nil
}

// PutAthlete stores the profile, settings and feedback of an athlete.
func (ss *SettingsStoreImpl) PutAthlete(athleteID string, athlete schema.AthleteFile) error {
	if ss.db == nil {
		return fmt.Errorf("cannot store athletes in the %s settings backend", ss.backend)
	}
	if athleteID == "" {
		return fmt.Errorf("athlete id cannot be empty")
	}

	var profile any
	if athlete.Profile != nil {
		data, err := json.Marshal(athlete.Profile)
		if err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		profile = string(data)
	}
	athlete.Settings.AthleteID = athleteID
	settings, err := json.Marshal(athlete.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if athlete.Feedback == nil {
		athlete.Feedback = map[string][]schema.Feedback{}
	}
	feedback, err := json.Marshal(athlete.Feedback)
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}

	query := upsertQuery(ss.backend, athletesTable, "id", athleteColumns)
	if _, err := ss.db.Exec(query, athleteID, profile, string(settings), string(feedback), time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to store athlete %q: %w", athleteID, err)
	}
	return nil
}

// Close closes the underlying DB connection.
func (ss *SettingsStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}

// column reads one JSON column of an athlete row.
func (ss *SettingsStoreImpl) column(athleteID, column string) (sql.NullString, error) {
	var raw sql.NullString
	if ss.db == nil {
		return raw, fmt.Errorf("athlete %q: %w", athleteID, contract.ErrNotFound)
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = %s", column, quoteTableName(athletesTable, ss.backend), placeholder(ss.backend))
	err := ss.db.QueryRow(query, athleteID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return raw, fmt.Errorf("athlete %q: %w", athleteID, contract.ErrNotFound)
	}
	if err != nil {
		return raw, fmt.Errorf("failed to read %s of athlete %q: %w", column, athleteID, err)
	}
	return raw, nil
}
