package tts

import (
	"context"
	"sync"
)

// Mock implements Provider for testing. It records spoken strings.
type Mock struct {
	// SpeakFunc overrides the default success behavior.
	SpeakFunc func(ctx context.Context, text string) error

	mu     sync.Mutex
	spoken []string
}

// Speak records the text and calls SpeakFunc if set.
func (m *Mock) Speak(ctx context.Context, text string) error {
	m.mu.Lock()
	m.spoken = append(m.spoken, text)
	m.mu.Unlock()

	if m.SpeakFunc != nil {
		return m.SpeakFunc(ctx, text)
	}
	return nil
}

// Name returns "mock".
func (m *Mock) Name() string {
	return "mock"
}

// Close releases resources.
func (m *Mock) Close() error {
	return nil
}

// Spoken returns everything spoken so far.
func (m *Mock) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.spoken...)
}

var _ Provider = (*Mock)(nil)
