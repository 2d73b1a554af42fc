package iocache

import (
	"sync"
	"time"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

type memoEntry struct {
	value   []byte
	version int
	ts      int64
}

// MemoryStore is a process-local CacheStore. Entries are lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoEntry
}

var _ contract.CacheStore = &MemoryStore{} // Compile-time check

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoEntry)}
}

// Get retrieves a value by key from the store.
func (s *MemoryStore) Get(key string) ([]byte, int, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, 0, 0, contract.ErrNotFound
	}
	return append([]byte(nil), e.value...), e.version, e.ts, nil
}

// Set inserts or replaces a key/value pair in the store.
func (s *MemoryStore) Set(key string, value []byte, version int, timestamp int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoEntry{value: append([]byte(nil), value...), version: version, ts: timestamp}
	return nil
}

// Clear removes every entry.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
	return nil
}

// GetStatus returns status information about the store.
func (s *MemoryStore) GetStatus() (schema.CacheStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := schema.CacheStatus{
		Backend:      string(schema.MemoryBackend),
		Connected:    true,
		TotalEntries: len(s.entries),
	}
	first := true
	for _, e := range s.entries {
		status.TableSizeBytes += int64(len(e.value))
		ts := time.Unix(e.ts, 0)
		if first || ts.After(status.LastEntryTime) {
			status.LastEntryTime = ts
		}
		if first || ts.Before(status.OldestEntryTime) {
			status.OldestEntryTime = ts
		}
		first = false
	}
	return status, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
