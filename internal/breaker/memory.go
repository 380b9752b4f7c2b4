package breaker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// MemoryStore is the in-process Store used for development, tests, and as
// the fallback when no Redis client is configured. State held here does not
// survive a restart and is invisible to other instances.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Get returns the value for key, honoring TTL expiry lazily
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if entry.expired(time.Now()) {
		delete(s.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set stores a value under key with an optional TTL
func (s *MemoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	encoded, err := encodeValue(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}

	entry := memoryEntry{value: encoded}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
	return nil
}

// Incr atomically increments the integer stored at key
func (s *MemoryStore) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	if entry, ok := s.entries[key]; ok && !entry.expired(time.Now()) {
		parsed, err := strconv.ParseInt(string(entry.value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value at %s is not an integer: %w", key, err)
		}
		current = parsed
	}

	current++
	s.entries[key] = memoryEntry{value: []byte(strconv.FormatInt(current, 10))}
	return current, nil
}

// Delete removes key from the store
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}
