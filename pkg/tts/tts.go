// Package tts provides text-to-speech output for the dialogue loop.
//
// Providers speak one string at a time. The loop treats any TTS failure
// as recoverable: a turn completes without audible output rather than
// aborting. Chain composes providers with ordered fallback.
package tts

import (
	"context"
	"errors"
)

// Sentinel errors for common conditions.
var (
	// ErrProviderUnavailable is returned when no providers are available.
	ErrProviderUnavailable = errors.New("tts: provider unavailable")

	// ErrEmptyText is returned when asked to speak nothing.
	ErrEmptyText = errors.New("tts: empty text")
)

// Provider defines the TTS provider interface.
type Provider interface {
	// Speak renders and plays the text, blocking until playback ends
	// or ctx is cancelled.
	Speak(ctx context.Context, text string) error

	// Name returns the backend name (e.g., "espeak", "mock").
	Name() string

	// Close releases any resources held by the provider.
	Close() error
}
