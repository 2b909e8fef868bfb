package tts

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultSpeakTimeout bounds one synthesis-and-playback invocation.
const DefaultSpeakTimeout = 60 * time.Second

// CommandProvider speaks by running a local synthesis command with the
// text as its final argument (espeak-style). Extra arguments may be
// configured before the text.
type CommandProvider struct {
	binary  string
	args    []string
	timeout time.Duration
	logger  *slog.Logger
}

// CommandOption configures a CommandProvider.
type CommandOption func(*CommandProvider)

// WithArgs sets arguments placed before the spoken text.
func WithArgs(args ...string) CommandOption {
	return func(p *CommandProvider) { p.args = args }
}

// WithSpeakTimeout bounds one invocation.
func WithSpeakTimeout(d time.Duration) CommandOption {
	return func(p *CommandProvider) { p.timeout = d }
}

// NewCommandProvider creates a command-backed provider.
// binary defaults to "espeak".
func NewCommandProvider(binary string, logger *slog.Logger, opts ...CommandOption) *CommandProvider {
	if binary == "" {
		binary = "espeak"
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &CommandProvider{
		binary:  binary,
		timeout: DefaultSpeakTimeout,
		logger:  logger.With("component", "tts.command", "binary", binary),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Speak runs the command synchronously.
func (p *CommandProvider) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := append(append([]string(nil), p.args...), text)
	cmd := exec.CommandContext(cctx, p.binary, args...)
	// Engines fork playback helpers that inherit the output pipes; without
	// WaitDelay the timeout kill leaves CombinedOutput blocked on them.
	cmd.WaitDelay = time.Second

	start := time.Now()
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("tts [%s]: %w: %s", p.binary, err, strings.TrimSpace(string(out)))
	}

	p.logger.Debug("spoke",
		"chars", len(text),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Name returns the binary name.
func (p *CommandProvider) Name() string {
	return p.binary
}

// Close releases resources.
func (p *CommandProvider) Close() error {
	return nil
}

var _ Provider = (*CommandProvider)(nil)
