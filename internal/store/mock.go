package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps records in process memory. It backs the "memory" store
// option and doubles as a test fake: the error fields make every call of the
// corresponding method fail.
type MemoryBackend struct {
	mu      sync.Mutex
	records map[string][]byte

	LoadError  error
	SaveError  error
	ClearError error

	// Saves counts successful Save calls.
	Saves int
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string][]byte)}
}

// Seed stores a raw record directly, bypassing encoding.
func (m *MemoryBackend) Seed(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records == nil {
		m.records = make(map[string][]byte)
	}
	m.records[key] = append([]byte(nil), value...)
}

// Raw returns the stored record for key.
func (m *MemoryBackend) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.records[key]
	return v, ok
}

func (m *MemoryBackend) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadError != nil {
		return nil, false, m.LoadError
	}
	v, ok := m.records[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryBackend) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	if m.records == nil {
		m.records = make(map[string][]byte)
	}
	m.records[key] = append([]byte(nil), value...)
	m.Saves++
	return nil
}

func (m *MemoryBackend) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearError != nil {
		return m.ClearError
	}
	m.records = make(map[string][]byte)
	return nil
}

func (m *MemoryBackend) Close() error { return nil }

func (m *MemoryBackend) Name() string { return "memory" }
