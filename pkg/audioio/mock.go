package audioio

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// MockSource is a scripted audio source for testing. It delivers a fixed
// sequence of frames to the handler, optionally paced by an interval, then
// goes quiet.
type MockSource struct {
	cfg     Config
	handler FrameHandler
	logger  *slog.Logger

	mu       sync.Mutex
	running  bool
	closed   bool
	fatal    error
	script   []Frame
	interval time.Duration
	stopCh   chan struct{}
	done     chan struct{}
}

// MockSourceOption configures a MockSource.
type MockSourceOption func(*MockSource)

// WithScript sets the frames the mock will deliver, in order.
func WithScript(frames ...Frame) MockSourceOption {
	return func(m *MockSource) { m.script = frames }
}

// WithInterval paces frame delivery. Zero delivers as fast as possible.
func WithInterval(d time.Duration) MockSourceOption {
	return func(m *MockSource) { m.interval = d }
}

// WithFatal makes the mock report a fatal backend error after the script.
func WithFatal(err error) MockSourceOption {
	return func(m *MockSource) { m.fatal = err }
}

// NewMockSource creates a new mock audio source.
func NewMockSource(cfg Config, handler FrameHandler, logger *slog.Logger, opts ...MockSourceOption) *MockSource {
	if logger == nil {
		logger = slog.Default()
	}
	m := &MockSource{
		cfg:     cfg,
		handler: handler,
		logger:  logger.With("component", "audioio.mock"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins delivering scripted frames.
func (m *MockSource) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return io.ErrClosedPipe
	}
	if m.running {
		return nil
	}

	m.running = true
	m.stopCh = make(chan struct{})
	m.done = make(chan struct{})

	go m.deliverLoop(ctx)

	return nil
}

func (m *MockSource) deliverLoop(ctx context.Context) {
	defer close(m.done)

	for _, f := range m.script {
		if m.interval > 0 {
			select {
			case <-ctx.Done():
				return
			case <-m.stopCh:
				return
			case <-time.After(m.interval):
			}
		} else {
			select {
			case <-ctx.Done():
				return
			case <-m.stopCh:
				return
			default:
			}
		}
		m.handler(f)
	}
}

// Err returns the configured fatal error once the script has drained.
func (m *MockSource) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done == nil {
		return nil
	}
	select {
	case <-m.done:
		return m.fatal
	default:
		return nil
	}
}

// Stop halts frame delivery.
func (m *MockSource) Stop() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = false
	close(m.stopCh)
	done := m.done
	m.mu.Unlock()

	<-done
	return nil
}

// Config returns the audio configuration.
func (m *MockSource) Config() Config {
	return m.cfg
}

// Name returns "mock".
func (m *MockSource) Name() string {
	return "mock"
}

// Close releases resources.
func (m *MockSource) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	return m.Stop()
}

var _ Source = (*MockSource)(nil)
