package generate

import (
	"context"
	"sync"
)

// Mock implements Transport for testing.
type Mock struct {
	// GenerateFunc is called when Generate is invoked.
	GenerateFunc func(ctx context.Context, req Request) (string, error)

	// NameOverride replaces the default name.
	NameOverride string

	mu       sync.Mutex
	requests []Request
}

// Generate calls GenerateFunc and records the request.
func (m *Mock) Generate(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return "", WrapError("mock", ErrNoTransport)
}

// Name returns the mock's name.
func (m *Mock) Name() string {
	if m.NameOverride != "" {
		return m.NameOverride
	}
	return "mock"
}

// Requests returns the recorded requests.
func (m *Mock) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

var _ Transport = (*Mock)(nil)
