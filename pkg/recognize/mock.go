package recognize

import "sync"

// Mock implements Recognizer for testing. Feed pops scripted results in
// order; after the script drains it keeps returning non-final empties.
type Mock struct {
	// FeedFunc overrides scripted behavior when set.
	FeedFunc func(frame []byte) (Result, error)

	mu      sync.Mutex
	script  []Result
	fed     int
	resets  int
	closed  bool
}

// NewMock creates a mock recognizer that plays back the given results.
func NewMock(script ...Result) *Mock {
	return &Mock{script: script}
}

// Feed returns the next scripted result.
func (m *Mock) Feed(frame []byte) (Result, error) {
	if m.FeedFunc != nil {
		return m.FeedFunc(frame)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Result{}, ErrRecognizerClosed
	}
	m.fed++
	if len(m.script) == 0 {
		return Result{}, nil
	}
	res := m.script[0]
	m.script = m.script[1:]
	return res, nil
}

// Reset records the call.
func (m *Mock) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets++
	return nil
}

// Close marks the mock closed.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// FedFrames returns how many frames were fed.
func (m *Mock) FedFrames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fed
}

// Resets returns how many times Reset was called.
func (m *Mock) Resets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}

var _ Recognizer = (*Mock)(nil)
