package store

import (
	"context"
	"fmt"
	"sync"

	"contactpsi/internal/domain"
)

// MemoryStore keeps session records in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[domain.SessionID]domain.SessionRecord
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[domain.SessionID]domain.SessionRecord)}
}

// Get returns a copy of the record stored under id.
func (m *MemoryStore) Get(ctx context.Context, id domain.SessionID) (domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionRecord{}, err
	}
	m.mu.RLock()
	rec, ok := m.records[id]
	m.mu.RUnlock()
	if !ok {
		return domain.SessionRecord{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return cloneRecord(rec), nil
}

// Put stores a copy of rec.
func (m *MemoryStore) Put(ctx context.Context, rec domain.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.records[rec.Meta.ID] = cloneRecord(rec)
	m.mu.Unlock()
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

func cloneRecord(rec domain.SessionRecord) domain.SessionRecord {
	rec.State = append([]byte(nil), rec.State...)
	return rec
}

var _ domain.SessionStore = (*MemoryStore)(nil)
