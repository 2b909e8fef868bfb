// Package recognize provides incremental speech recognition for the
// dialogue loop.
//
// The decoder itself is an opaque capability behind the Recognizer
// interface: feed it PCM frames, and per frame it reports whether enough
// acoustic evidence accumulated to finalize an utterance. The Listener
// drives a Recognizer from a frame queue and implements the utterance
// boundary state machine.
package recognize

import (
	"errors"
)

// Recognizer errors.
var (
	// ErrRecognizerClosed is returned when feeding a closed recognizer.
	ErrRecognizerClosed = errors.New("recognize: recognizer closed")
)

// Result is one recognition event for a fed frame.
type Result struct {
	// Final reports that the frame completed an utterance.
	Final bool

	// Text is the recognized text. For final results it is the full
	// utterance (possibly empty for silence or noise); for non-final
	// results it is an advisory partial hypothesis.
	Text string
}

// Recognizer is a stateful incremental decoder. Implementations are not
// safe for concurrent use; the listener feeds frames from one goroutine.
type Recognizer interface {
	// Feed consumes one PCM frame and reports whether it finalized an
	// utterance. Partial results must be drained without blocking.
	Feed(frame []byte) (Result, error)

	// Reset clears utterance state so the next Feed starts a new one.
	Reset() error

	// Close releases decoder resources.
	Close() error
}
