package schema

import "time"

// CacheStatus represents the status of the memo cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// CatalogStatus represents the status of the exercise catalog and settings store.
type CatalogStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalExercises int              `json:"total_exercises"`
	TotalAthletes  int              `json:"total_athletes"`
	SchemaVersion  uint             `json:"schema_version"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}
