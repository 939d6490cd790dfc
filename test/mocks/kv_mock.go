// Package mocks provides mock implementations of port interfaces for testing.
// In hexagonal architecture, ports define the contracts between the core domain
// and external adapters. Mocks implement these interfaces to enable isolated testing.
package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
)

// MockKeyValue implements ports.KeyValue in memory.
// Services are tested against it instead of a real state file or Redis.
type MockKeyValue struct {
	mu   sync.RWMutex
	data map[string]string

	// Call tracking for verification
	GetCalls    []string
	SetCalls    []string
	DeleteCalls [][]string
	UpdateCalls []string
	ClearCalls  int

	// Error injection for testing error scenarios
	GetError    error
	SetError    error
	DeleteError error
	UpdateError error
	ClearError  error
	PingError   error
}

// Ensure MockKeyValue implements ports.KeyValue at compile time.
var _ ports.KeyValue = (*MockKeyValue)(nil)

func NewMockKeyValue() *MockKeyValue {
	return &MockKeyValue{data: make(map[string]string)}
}

// Seed stores a value without recording a call, for test setup.
func (m *MockKeyValue) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Value reads a stored value without recording a call, for assertions.
func (m *MockKeyValue) Value(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key]
}

func (m *MockKeyValue) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, key)
	m.mu.Unlock()

	if m.GetError != nil {
		return "", m.GetError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return "", ports.ErrKeyNotFound
	}
	return value, nil
}

func (m *MockKeyValue) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls = append(m.SetCalls, key+"="+value)

	if m.SetError != nil {
		return m.SetError
	}
	m.data[key] = value
	return nil
}

func (m *MockKeyValue) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, keys)

	if m.DeleteError != nil {
		return m.DeleteError
	}
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *MockKeyValue) Update(ctx context.Context, key string, fn func(current string) (string, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls = append(m.UpdateCalls, key)

	if m.UpdateError != nil {
		return m.UpdateError
	}
	next, err := fn(m.data[key])
	if err != nil {
		return err
	}
	m.data[key] = next
	return nil
}

func (m *MockKeyValue) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++

	if m.ClearError != nil {
		return m.ClearError
	}
	m.data = make(map[string]string)
	return nil
}

func (m *MockKeyValue) Ping(ctx context.Context) error {
	return m.PingError
}

// SetCallsFor filters the recorded Set calls down to one key.
func (m *MockKeyValue) SetCallsFor(key string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var calls []string
	for _, c := range m.SetCalls {
		if strings.HasPrefix(c, key+"=") {
			calls = append(calls, strings.TrimPrefix(c, key+"="))
		}
	}
	return calls
}
