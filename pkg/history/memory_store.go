package history

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps history in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	records  []Record // newest first
	maxItems int
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := newOptions(opts)
	return &MemoryStore{maxItems: o.maxItems}
}

func (m *MemoryStore) Append(ctx context.Context, r Record) error {
	if err := r.validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = slices.Insert(m.records, 0, r.clone())
	if len(m.records) > m.maxItems {
		clear(m.records[m.maxItems:])
		m.records = m.records[:m.maxItems]
	}
	return nil
}

func (m *MemoryStore) List(ctx context.Context, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.records)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]Record, 0, n)
	for _, r := range m.records[:n] {
		out = append(out, r.clone())
	}
	return out, nil
}

func (m *MemoryStore) Remove(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.records, func(r Record) bool { return r.ID == id })
	if i < 0 {
		return ErrRecordNotFound
	}
	m.records = slices.Delete(m.records, i, i+1)
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = nil
	return nil
}
