package history

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-memory implementation of Repository. Records are lost on
// restart.
type Memory struct {
	mu   sync.RWMutex
	data []Record
}

// NewMemory creates a new in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		data: []Record{},
	}
}

// Save stores the record in memory.
func (m *Memory) Save(_ context.Context, record Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = append(m.data, record)
	return nil
}

// Get returns the record with the given id.
func (m *Memory) Get(_ context.Context, id uuid.UUID) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.data {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, ErrNotFound
}

// List returns up to limit records, newest first. A non-positive limit
// returns everything.
func (m *Memory) List(_ context.Context, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.data)
	if limit > 0 && limit < n {
		n = limit
	}
	records := make([]Record, 0, n)
	for i := len(m.data) - 1; i >= 0 && len(records) < n; i-- {
		records = append(records, m.data[i])
	}
	return records, nil
}

// Storage implements Repository.
func (m *Memory) Storage() string {
	return "memory"
}
