package kvstore

import (
	"context"
	"maps"
	"sync"
)

type memory struct {
	values map[string]string
	lock   sync.Mutex
}

func NewMemory() *memory {
	return &memory{
		values: make(map[string]string),
	}
}

func (m *memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memory) Set(ctx context.Context, key, value string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.values[key] = value
	return nil
}

// Values returns a copy of everything stored
func (m *memory) Values() map[string]string {
	m.lock.Lock()
	defer m.lock.Unlock()

	return maps.Clone(m.values)
}
