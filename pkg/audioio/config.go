// Package audioio provides microphone capture for the dialogue loop.
//
// A Source delivers fixed-size PCM16 frames to a registered handler from
// its own capture goroutine. The handler must never block; pair the source
// with a FrameQueue to decouple capture timing from recognition.
//
// Backends:
//   - FFmpeg - exec-based capture, works anywhere ffmpeg can open a mic
//   - Mock   - scripted frames for CI/testing without hardware
package audioio

import (
	"fmt"
	"time"
)

// Backend represents the audio capture backend type.
type Backend string

const (
	// BackendFFmpeg captures by running an ffmpeg subprocess.
	BackendFFmpeg Backend = "ffmpeg"
	// BackendMock uses a scripted implementation for testing.
	BackendMock Backend = "mock"
)

// Config holds audio capture configuration.
type Config struct {
	// Backend specifies which capture backend to use.
	Backend Backend `json:"backend"`

	// SampleRate is the audio sample rate in Hz.
	// Default: 16000 (what most offline recognizers expect)
	SampleRate int `json:"sample_rate"`

	// Channels is the number of audio channels.
	// Default: 1 (mono)
	Channels int `json:"channels"`

	// FrameSamples is the number of samples per captured frame.
	// Default: 8000 (500ms at 16kHz)
	FrameSamples int `json:"frame_samples"`

	// Device is the capture device identifier.
	// Examples: "default", "hw:1,0", a PulseAudio source name.
	Device string `json:"device"`

	// InputFormat is the ffmpeg input format ("pulse", "alsa", "avfoundation").
	InputFormat string `json:"input_format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:      BackendFFmpeg,
		SampleRate:   16000,
		Channels:     1,
		FrameSamples: 8000,
		Device:       "default",
		InputFormat:  "pulse",
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("channels must be positive, got %d", c.Channels)
	}
	if c.FrameSamples <= 0 {
		return fmt.Errorf("frame_samples must be positive, got %d", c.FrameSamples)
	}
	return nil
}

// FrameBytes returns the size of one frame in bytes (PCM16).
func (c *Config) FrameBytes() int {
	return c.FrameSamples * c.Channels * 2
}

// FrameDuration returns the nominal duration of one frame.
func (c *Config) FrameDuration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(c.FrameSamples) / float64(c.SampleRate) * float64(time.Second))
}
