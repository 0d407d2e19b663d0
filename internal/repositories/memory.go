package repositories

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/desertthunder/ytlink/internal/shared"
)

// MemorySyncStore keeps the document in process memory; it is lost on restart.
type MemorySyncStore struct {
	mu   sync.RWMutex
	data json.RawMessage
}

func NewMemorySyncStore() *MemorySyncStore {
	return &MemorySyncStore{}
}

func (s *MemorySyncStore) Store(ctx context.Context, data json.RawMessage) error {
	if err := validDocument(data); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = clone(data)
	return nil
}

func (s *MemorySyncStore) Retrieve(ctx context.Context) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, shared.ErrNothingStored
	}
	return clone(s.data), nil
}

func (s *MemorySyncStore) Close() error { return nil }
