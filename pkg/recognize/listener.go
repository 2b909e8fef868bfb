package recognize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/parleylabs/go-parley/pkg/audioio"
)

// State of the utterance boundary machine.
type State int

const (
	// StateIdle means no utterance is in flight.
	StateIdle State = iota
	// StateAccumulating means frames are being fed but no finalize yet.
	StateAccumulating
	// StateFinalized means the recognizer emitted a completed utterance.
	StateFinalized
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAccumulating:
		return "accumulating"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// DefaultPollInterval bounds how long a queue pop blocks so the listener
// can check stop and timeout conditions.
const DefaultPollInterval = 500 * time.Millisecond

// Listener drives a Recognizer from a FrameQueue, one utterance at a time.
// Exactly one utterance is in flight through recognition at any moment.
type Listener struct {
	queue  *audioio.FrameQueue
	rec    Recognizer
	src    audioio.Source
	logger *slog.Logger

	// Poll is the bounded queue wait between stop checks.
	Poll time.Duration

	// Timeout bounds one utterance. Zero means listen forever.
	Timeout time.Duration

	mu    sync.Mutex
	state State
}

// NewListener creates a listener. src may be nil when no fatal backend
// check is wanted (e.g. tests feeding the queue directly).
func NewListener(queue *audioio.FrameQueue, rec Recognizer, src audioio.Source, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{
		queue:  queue,
		rec:    rec,
		src:    src,
		logger: logger.With("component", "recognize.listener"),
		Poll:   DefaultPollInterval,
	}
}

// State returns the current utterance state.
func (l *Listener) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Listener) setState(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

// ListenOnce blocks until the recognizer finalizes one utterance and
// returns its text. An empty string means no speech was detected, either
// because the recognizer finalized silence or because the per-utterance
// timeout elapsed. Partial results are drained and discarded. Fatal audio
// backend errors and ctx cancellation are returned as errors.
func (l *Listener) ListenOnce(ctx context.Context) (string, error) {
	l.setState(StateIdle)
	defer l.setState(StateIdle)

	start := time.Now()
	poll := l.Poll
	if poll <= 0 {
		poll = DefaultPollInterval
	}

	for {
		if l.src != nil {
			if err := l.src.Err(); err != nil {
				return "", err
			}
		}

		frame, err := l.queue.Pop(ctx, poll)
		switch {
		case errors.Is(err, audioio.ErrNoFrame):
			if l.Timeout > 0 && time.Since(start) > l.Timeout {
				l.logger.Debug("listen timed out", "elapsed", time.Since(start))
				if rerr := l.rec.Reset(); rerr != nil {
					l.logger.Warn("recognizer reset failed", "error", rerr)
				}
				return "", nil
			}
			continue
		case err != nil:
			return "", err
		}

		if l.State() == StateIdle {
			l.setState(StateAccumulating)
		}

		res, err := l.rec.Feed(frame)
		if err != nil {
			return "", fmt.Errorf("recognize: feed: %w", err)
		}
		if !res.Final {
			continue
		}

		l.setState(StateFinalized)
		if err := l.rec.Reset(); err != nil {
			l.logger.Warn("recognizer reset failed", "error", err)
		}
		return res.Text, nil
	}
}
