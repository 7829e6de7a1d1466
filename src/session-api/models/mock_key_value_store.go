package models

import (
	"context"
	"sync"
)

type MockKeyValueStore struct {
	mutex  sync.Mutex
	values map[string]string
	GetErr error
	SetErr error
	writes []string
}

func (m *MockKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.GetErr != nil {
		return "", false, m.GetErr
	}

	value, found := m.values[key]
	return value, found, nil
}

func (m *MockKeyValueStore) Set(ctx context.Context, key, value string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.SetErr != nil {
		return m.SetErr
	}

	m.values[key] = value
	m.writes = append(m.writes, key)
	return nil
}

// Writes returns the keys passed to Set, in call order.
func (m *MockKeyValueStore) Writes() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return append([]string(nil), m.writes...)
}

func (m *MockKeyValueStore) Value(key string) (string, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	value, found := m.values[key]
	return value, found
}

func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{
		values: make(map[string]string),
	}
}
