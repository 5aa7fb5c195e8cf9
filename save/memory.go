package save

import (
	"context"
	"sync"
)

// MemoryStore keeps the snapshot in process memory, for tests and ephemeral runs
type MemoryStore struct {
	mu   sync.RWMutex
	snap *Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Copy to avoid races if the caller keeps mutating
	s.snap = snap.Clone()
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, ErrNoSave
	}
	return s.snap.Clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context) error {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error {
	return s.Delete(context.Background())
}
