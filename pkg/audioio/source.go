package audioio

import (
	"context"
	"io"
)

// FrameHandler receives captured frames from the capture goroutine.
// Implementations must not block; push into a FrameQueue and return.
type FrameHandler func(Frame)

// Source captures audio from a microphone or other input device and
// delivers fixed-size frames to a single registered handler.
type Source interface {
	// Start begins audio capture. The handler registered at construction
	// receives frames until Stop or ctx cancellation.
	Start(ctx context.Context) error

	// Stop halts audio capture.
	// It is safe to call Stop multiple times.
	Stop() error

	// Err returns the first fatal backend error observed since Start,
	// or nil. A non-nil value means capture has died and the caller
	// should surface it rather than keep waiting for frames.
	Err() error

	// Config returns the current audio configuration.
	Config() Config

	// Name returns the backend name (e.g., "ffmpeg", "mock").
	Name() string

	// Close releases all resources.
	// After Close, the source cannot be restarted.
	io.Closer
}

// New creates a Source for the configured backend.
func New(cfg Config, handler FrameHandler) (Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendMock:
		return NewMockSource(cfg, handler, nil), nil
	default:
		return NewFFmpegSource(cfg, handler, nil), nil
	}
}
