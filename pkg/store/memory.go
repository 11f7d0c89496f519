package store

import "sync"

// MemoryKV keeps values in process memory. It is used by tests and by
// ephemeral runs that should leave nothing on disk.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryKV returns an empty in-memory backend.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Apply(ops ...Op) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	applyTo(m.data, ops)
	return nil
}
