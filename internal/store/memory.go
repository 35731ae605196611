package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/breakwater-app/breakwater/internal/detect"
)

// MemoryStore implements Store with in-memory storage, for local development
// and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	subs map[string]*detect.Candidate

	// now is swappable in tests.
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subs: make(map[string]*detect.Candidate),
		now:  time.Now,
	}
}

func (m *MemoryStore) List(ctx context.Context) ([]*detect.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*detect.Candidate, 0, len(m.subs))
	for _, s := range m.subs {
		copied := *s
		out = append(out, &copied)
	}
	sortForList(out)
	return out, nil
}

func (m *MemoryStore) UpsertMany(ctx context.Context, incoming []*detect.Candidate) ([]*detect.Candidate, error) {
	m.mu.Lock()
	now := m.now()
	for _, s := range incoming {
		if s == nil || s.ID == "" {
			continue
		}
		copied := *s
		m.subs[s.ID] = merge(m.subs[s.ID], &copied, now)
	}
	m.mu.Unlock()

	return m.List(ctx)
}

func (m *MemoryStore) Update(ctx context.Context, id string, patch Patch) (*detect.Candidate, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.subs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next := applyPatch(sub, patch, m.now())
	m.subs[id] = next

	copied := *next
	return &copied, nil
}
