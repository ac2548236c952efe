package mocks

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/kamal-hamza/assetkit/internal/core/ports"
)

// MockPacker is a mock implementation of the Packer interface for testing.
// It collapses whitespace so bundles stay predictable.
type MockPacker struct {
	mu         sync.Mutex
	calls      []string
	opts       []ports.PackOptions
	shouldFail bool
	failError  error
}

// NewMockPacker creates a new mock packer
func NewMockPacker() *MockPacker {
	return &MockPacker{}
}

func (m *MockPacker) Pack(src []byte, opts ports.PackOptions) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, string(src))
	m.opts = append(m.opts, opts)
	if m.shouldFail {
		if m.failError != nil {
			return nil, m.failError
		}
		return nil, fmt.Errorf("pack failed")
	}
	return bytes.Join(bytes.Fields(src), nil), nil
}

func (m *MockPacker) SetShouldFail(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFail = fail
	m.failError = err
}

// GetCalls returns the sources passed to Pack, in order
func (m *MockPacker) GetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// GetOptions returns the options passed to Pack, in order
func (m *MockPacker) GetOptions() []ports.PackOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	opts := make([]ports.PackOptions, len(m.opts))
	copy(opts, m.opts)
	return opts
}

func (m *MockPacker) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.opts = nil
	m.shouldFail = false
	m.failError = nil
}
