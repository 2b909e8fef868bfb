package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

const transportCLI = "cli"

// CLINotFoundReply is returned in place of a reply when the fallback tool
// is not installed. A visible failure string lets the loop proceed and
// surface the problem to the user instead of crashing.
const CLINotFoundReply = "[ERROR: ollama CLI not found]"

// CLITransport is the fallback transport. It invokes the local tool as
// `<tool> query <model> <prompt>` and returns the combined standard
// output and standard error, trimmed.
type CLITransport struct {
	tool    string
	timeout time.Duration
	logger  *slog.Logger
}

// NewCLITransport creates the process-invocation transport.
func NewCLITransport(tool string, timeout time.Duration, logger *slog.Logger) *CLITransport {
	if tool == "" {
		tool = "ollama"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CLITransport{
		tool:    tool,
		timeout: timeout,
		logger:  logger.With("component", "generate.cli"),
	}
}

// Name returns "cli".
func (t *CLITransport) Name() string {
	return transportCLI
}

// Generate runs the tool synchronously, bounded by the configured
// timeout. A missing binary yields CLINotFoundReply with a nil error; a
// timed-out invocation is a failure and is not retried.
func (t *CLITransport) Generate(ctx context.Context, req Request) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, t.tool, "query", req.Model, req.Prompt)
	// The kill on deadline reaches only the direct child. A helper the
	// tool forked keeps the output pipes open past it; WaitDelay stops
	// the pipe copy so the timeout actually bounds this call.
	cmd.WaitDelay = time.Second
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if errors.Is(err, exec.ErrNotFound) {
		t.logger.Warn("fallback tool not installed", "tool", t.tool)
		return CLINotFoundReply, nil
	}
	if cctx.Err() != nil {
		return "", WrapError(transportCLI, fmt.Errorf("%s timed out after %v", t.tool, t.timeout))
	}

	combined := strings.TrimSpace(out.String())
	if err != nil && combined == "" {
		return "", WrapError(transportCLI, fmt.Errorf("run %s: %w", t.tool, err))
	}

	// A nonzero exit with output still carries a usable message.
	return combined, nil
}

var _ Transport = (*CLITransport)(nil)
