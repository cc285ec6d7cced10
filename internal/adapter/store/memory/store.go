package memory

import (
	"context"
	"sync"

	"basaegochi/internal/app/ports"
	"basaegochi/internal/domain/pet"
)

// Store keeps pet records in process memory. Used by tests and by the demo
// mode when no database is configured.
type Store struct {
	mu   sync.RWMutex
	pets map[string]pet.Record
}

func NewStore() *Store {
	return &Store{pets: make(map[string]pet.Record)}
}

func (s *Store) Get(_ context.Context, ownerID string) (pet.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.pets[ownerID]
	if !ok {
		return pet.Record{}, ports.ErrNotFound
	}
	return rec, nil
}

func (s *Store) Save(_ context.Context, ownerID string, rec pet.Record, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.pets[ownerID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		s.pets[ownerID] = rec
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	s.pets[ownerID] = rec
	return nil
}

var _ ports.PetStore = (*Store)(nil)

// TxManager serializes use-case work against the in-memory store.
type TxManager struct {
	store *Store
	mu    sync.Mutex
}

func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (t *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

var _ ports.TxManager = (*TxManager)(nil)
