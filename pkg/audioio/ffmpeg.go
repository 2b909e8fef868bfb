package audioio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrBackendUnavailable wraps fatal capture failures: missing binary,
// unopenable device, capture process death. These are not recoverable at
// the turn boundary; the process should report and exit.
var ErrBackendUnavailable = errors.New("audioio: capture backend unavailable")

// FFmpegSource captures microphone PCM by running an ffmpeg subprocess
// that writes raw s16le to stdout. The read goroutine slices stdout into
// fixed-size frames and hands each to the registered handler.
type FFmpegSource struct {
	cfg     Config
	handler FrameHandler
	logger  *slog.Logger
	binary  string

	mu      sync.Mutex
	running bool
	closed  bool
	cmd     *exec.Cmd
	stderr  *bytes.Buffer
	cancel  context.CancelFunc
	fatal   error
	done    chan struct{}
}

// NewFFmpegSource creates an ffmpeg-backed capture source.
func NewFFmpegSource(cfg Config, handler FrameHandler, logger *slog.Logger) *FFmpegSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FFmpegSource{
		cfg:     cfg,
		handler: handler,
		logger:  logger.With("component", "audioio.ffmpeg"),
		binary:  "ffmpeg",
	}
}

// SetBinary overrides the ffmpeg binary path. Useful for tests.
func (s *FFmpegSource) SetBinary(path string) {
	s.binary = path
}

// Start launches the capture process and the frame reader goroutine.
// A failure to open the device surfaces here with diagnostics; run the
// devices command to enumerate usable inputs.
func (s *FFmpegSource) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return io.ErrClosedPipe
	}
	if s.running {
		return nil
	}

	cctx, cancel := context.WithCancel(ctx)

	args := []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "warning",
		"-f", s.cfg.InputFormat,
		"-i", s.cfg.Device,
		"-ac", strconv.Itoa(s.cfg.Channels),
		"-ar", strconv.Itoa(s.cfg.SampleRate),
		"-f", "s16le",
		"-",
	}

	cmd := exec.CommandContext(cctx, s.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("%w: stdout pipe: %v", ErrBackendUnavailable, err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("%w: start %s: %v (is ffmpeg installed?)", ErrBackendUnavailable, s.binary, err)
	}

	// ffmpeg reports an unopenable device by exiting almost immediately.
	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
	}()
	select {
	case err := <-waitErr:
		cancel()
		return fmt.Errorf("%w: %s exited before capture started: %v: %s (check the device with the devices command)",
			ErrBackendUnavailable, s.binary, err, strings.TrimSpace(stderr.String()))
	case <-time.After(250 * time.Millisecond):
	}

	s.cmd = cmd
	s.stderr = &stderr
	s.cancel = cancel
	s.running = true
	s.done = make(chan struct{})

	go s.readLoop(cctx, stdout, waitErr)

	s.logger.Info("capture started",
		"device", s.cfg.Device,
		"sample_rate", s.cfg.SampleRate,
		"frame_bytes", s.cfg.FrameBytes(),
	)

	return nil
}

func (s *FFmpegSource) readLoop(ctx context.Context, stdout io.Reader, waitErr <-chan error) {
	defer close(s.done)

	frameBytes := s.cfg.FrameBytes()
	for {
		buf := make([]byte, frameBytes)
		if _, err := io.ReadFull(stdout, buf); err != nil {
			if ctx.Err() != nil {
				return
			}
			procErr := <-waitErr
			s.setFatal(fmt.Errorf("%w: capture process died: %v: %s",
				ErrBackendUnavailable, procErr, strings.TrimSpace(s.stderr.String())))
			return
		}
		s.handler(buf)
	}
}

func (s *FFmpegSource) setFatal(err error) {
	s.mu.Lock()
	if s.fatal == nil {
		s.fatal = err
	}
	s.mu.Unlock()
	s.logger.Error("capture failed", "error", err)
}

// Err returns the first fatal capture error, or nil.
func (s *FFmpegSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fatal
}

// Stop halts capture.
func (s *FFmpegSource) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()
	<-done

	s.logger.Info("capture stopped")
	return nil
}

// Config returns the audio configuration.
func (s *FFmpegSource) Config() Config {
	return s.cfg
}

// Name returns "ffmpeg".
func (s *FFmpegSource) Name() string {
	return "ffmpeg"
}

// Close releases resources.
func (s *FFmpegSource) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.Stop()
}

var _ Source = (*FFmpegSource)(nil)
