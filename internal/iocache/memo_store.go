package iocache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

// memoTable is the name of the table for memoized results.
const memoTable = "memo_cache"

// MemoStoreImpl handles memo storage using the SQL backends.
type MemoStoreImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
	connStr   string
}

var _ contract.CacheStore = &MemoStoreImpl{} // Compile-time check

// NewMemoStore initializes and returns a new CacheStore based on the backend type.
func NewMemoStore(tableName string, backend schema.DatabaseBackend, connStr string) (contract.CacheStore, error) {
	// Validate table name to prevent SQL injection
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	switch backend {
	case schema.NoneBackend:
		// No-op store for disabled memoization
		return &MemoStoreImpl{tableName: tableName, backend: backend}, nil
	case schema.MemoryBackend:
		return NewMemoryStore(), nil
	case schema.RedisBackend:
		return NewRedisStore(connStr, tableName)
	}

	db, err := openDB(backend, connStr, GetMemoDBFilePath())
	if err != nil {
		return nil, err
	}

	query := getCreateMemoTableQuery(tableName, backend)
	if _, err := db.Exec(query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &MemoStoreImpl{
		db:        db,
		tableName: tableName,
		backend:   backend,
		connStr:   connStr,
	}, nil
}

// getCreateMemoTableQuery returns the CREATE TABLE query for the given backend.
func getCreateMemoTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key VARCHAR(255) PRIMARY KEY,
				cache_value BLOB NOT NULL,
				cache_version INT NOT NULL,
				cache_timestamp BIGINT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key TEXT PRIMARY KEY,
				cache_value BYTEA NOT NULL,
				cache_version INTEGER NOT NULL,
				cache_timestamp BIGINT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key TEXT PRIMARY KEY,
				cache_value BLOB NOT NULL,
				cache_version INTEGER NOT NULL,
				cache_timestamp INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// Get retrieves a value by key from the store.
func (ms *MemoStoreImpl) Get(key string) ([]byte, int, int64, error) {
	if ms.db == nil {
		return nil, 0, 0, contract.ErrNotFound
	}

	var value []byte
	var version int
	var ts int64

	query := fmt.Sprintf(`SELECT cache_value, cache_version, cache_timestamp FROM %s WHERE cache_key = %s`,
		quoteTableName(ms.tableName, ms.backend), placeholder(ms.backend))
	err := ms.db.QueryRow(query, key).Scan(&value, &version, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, 0, contract.ErrNotFound
	}
	if err != nil {
		return nil, 0, 0, err
	}
	return value, version, ts, nil
}

// Set inserts or replaces a key/value pair in the store.
func (ms *MemoStoreImpl) Set(key string, value []byte, version int, timestamp int64) error {
	if ms.db == nil {
		return nil
	}
	query := upsertQuery(ms.backend, ms.tableName, "cache_key",
		[]string{"cache_key", "cache_value", "cache_version", "cache_timestamp"})
	_, err := ms.db.Exec(query, key, value, version, timestamp)
	return err
}

// Clear removes every memoized entry.
func (ms *MemoStoreImpl) Clear() error {
	if ms.db == nil {
		return nil
	}
	query := fmt.Sprintf("DELETE FROM %s", quoteTableName(ms.tableName, ms.backend))
	if _, err := ms.db.Exec(query); err != nil {
		return fmt.Errorf("failed to clear %s: %w", ms.tableName, err)
	}
	return nil
}

// Close closes the underlying DB connection.
func (ms *MemoStoreImpl) Close() error {
	if ms.db != nil {
		return ms.db.Close()
	}
	return nil
}

// GetStatus returns status information about the memo store.
func (ms *MemoStoreImpl) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(ms.backend),
		Connected: ms.db != nil,
	}
	if ms.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(ms.tableName, ms.backend)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := ms.db.QueryRow(countQuery).Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}

	var lastTs, oldestTs int64
	rangeQuery := fmt.Sprintf("SELECT MAX(cache_timestamp), MIN(cache_timestamp) FROM %s", quotedTableName)
	if err := ms.db.QueryRow(rangeQuery).Scan(&lastTs, &oldestTs); err != nil {
		return status, fmt.Errorf("failed to get entry times: %w", err)
	}
	status.LastEntryTime = time.Unix(lastTs, 0)
	status.OldestEntryTime = time.Unix(oldestTs, 0)
	status.TableSizeBytes = tableSize(ms.db, ms.backend, ms.connStr, ms.tableName, status.TotalEntries)
	return status, nil
}
