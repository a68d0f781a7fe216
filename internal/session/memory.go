package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process session store for tests and test mode, where
// no Redis is available. Same contract as RedisStore, including expiry.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	records map[string]memoryEntry
}

type memoryEntry struct {
	rec       Record
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, records: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sessionID] = memoryEntry{rec: rec, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.records[sessionID]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.records, sessionID)
		return nil, nil
	}
	rec := entry.rec
	return &rec, nil
}

var _ Store = (*MemoryStore)(nil)
