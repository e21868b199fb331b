package store

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/corecraft/worldkit/world"
)

type inMemory struct {
	mu      sync.RWMutex
	storage map[string][]byte
}

// NewMemoryStore returns a WorldStore backed by process memory. Worlds are
// stored as JSON snapshots, so each Load hands out an independent copy.
func NewMemoryStore() WorldStore {
	return &inMemory{}
}

func (m *inMemory) Load(_ context.Context, sessionID string) (*world.World, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.storage[sessionID]
	if !ok {
		return nil, errors.WithStack(ErrNotFound)
	}
	return world.FromJSON(data)
}

func (m *inMemory) Save(_ context.Context, sessionID string, w *world.World) error {
	data, err := w.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "failed to marshal world")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage == nil {
		// create on first use
		m.storage = make(map[string][]byte)
	}
	m.storage[sessionID] = data
	return nil
}

func (m *inMemory) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage != nil {
		delete(m.storage, sessionID)
	}
	return nil
}

func (m *inMemory) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.storage))
	for id := range m.storage {
		ids = append(ids, id)
	}
	return ids, nil
}
