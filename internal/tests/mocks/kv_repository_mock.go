package mocks

import (
	"context"
	"sort"
	"sync"
)

type KVRepositoryMock struct {
	GetFunc    func(ctx context.Context, key string) ([]byte, bool, error)
	PutFunc    func(ctx context.Context, key string, value []byte) error
	DeleteFunc func(ctx context.Context, key string) error

	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryKV returns a mock that keeps values in memory unless a Func
// field overrides the operation.
func NewMemoryKV() *KVRepositoryMock {
	return &KVRepositoryMock{data: map[string][]byte{}}
}

func (m *KVRepositoryMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte{}, v...), true, nil
}

func (m *KVRepositoryMock) Put(ctx context.Context, key string, value []byte) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = append([]byte{}, value...)
	return nil
}

func (m *KVRepositoryMock) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys lists the stored keys in sorted order.
func (m *KVRepositoryMock) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Raw returns the stored bytes for key.
func (m *KVRepositoryMock) Raw(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}
