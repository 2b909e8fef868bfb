package dialogue

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/parleylabs/go-parley/pkg/generate"
	"github.com/parleylabs/go-parley/pkg/sanitize"
	"github.com/parleylabs/go-parley/pkg/tts"
)

// DefaultApology replaces the assistant's reply when every generation
// transport fails, so the conversation keeps moving instead of aborting.
const DefaultApology = "Sorry, I couldn't produce a response."

// ErrNoListener is returned when a loop is constructed without a listener.
var ErrNoListener = errors.New("dialogue: listener is required")

// ErrNoGenerator is returned when a loop is constructed without a generator.
var ErrNoGenerator = errors.New("dialogue: generator is required")

// Listener produces one finalized utterance per call. An empty string
// means no speech was detected.
type Listener interface {
	ListenOnce(ctx context.Context) (string, error)
}

// Generator produces one reply for one request.
type Generator interface {
	Generate(ctx context.Context, req generate.Request) (string, error)
}

// Loop runs the turn cycle: listen, generate, sanitize, speak. One
// utterance and one generation request are in flight at any time;
// generation and TTS block the loop on purpose.
type Loop struct {
	listener Listener
	gen      Generator
	speaker  tts.Provider
	history  *History
	logger   *slog.Logger

	model    string
	apology  string
	sanitize bool
	onTurn   func(Turn)
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithSpeaker sets the TTS provider. Without one, replies are not spoken.
func WithSpeaker(p tts.Provider) LoopOption {
	return func(l *Loop) { l.speaker = p }
}

// WithModel sets the model name sent with each generation request.
func WithModel(model string) LoopOption {
	return func(l *Loop) { l.model = model }
}

// WithApology sets the reply used when generation fails entirely.
func WithApology(text string) LoopOption {
	return func(l *Loop) { l.apology = text }
}

// WithoutSanitize disables the reply cleaning pass.
func WithoutSanitize() LoopOption {
	return func(l *Loop) { l.sanitize = false }
}

// WithHistory supplies a shared history instead of the loop's own empty
// one, letting a status server read the transcript the loop writes.
func WithHistory(h *History) LoopOption {
	return func(l *Loop) {
		if h != nil {
			l.history = h
		}
	}
}

// WithOnTurn registers a callback invoked after each turn is appended to
// the history. The status server uses this to track activity.
func WithOnTurn(fn func(Turn)) LoopOption {
	return func(l *Loop) { l.onTurn = fn }
}

// WithLoopLogger sets the logger.
func WithLoopLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) { l.logger = logger }
}

// NewLoop creates a dialogue loop with an empty history.
func NewLoop(listener Listener, gen Generator, opts ...LoopOption) (*Loop, error) {
	if listener == nil {
		return nil, ErrNoListener
	}
	if gen == nil {
		return nil, ErrNoGenerator
	}
	l := &Loop{
		listener: listener,
		gen:      gen,
		history:  NewHistory(),
		logger:   slog.Default(),
		apology:  DefaultApology,
		sanitize: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "dialogue.loop")
	return l, nil
}

// History returns the loop's turn log.
func (l *Loop) History() *History {
	return l.history
}

// Run executes turn cycles until ctx is cancelled, which is a clean
// exit. Any other error from a cycle is fatal and returned.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("dialogue loop started", "model", l.model)
	for {
		if err := l.RunOnce(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				l.logger.Info("dialogue loop stopped", "turns", l.history.Len())
				return nil
			}
			return err
		}
	}
}

// RunOnce executes a single turn cycle. A cycle with no detected speech
// returns nil and leaves the history unchanged.
func (l *Loop) RunOnce(ctx context.Context) error {
	text, err := l.listener.ListenOnce(ctx)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		l.logger.Debug("no speech detected, listening again")
		return nil
	}

	// Snapshot before appending so the new utterance appears exactly
	// once in the prompt, as the trailing User line.
	prior := l.history.Window(PromptWindow)
	userTurn := l.history.Append(RoleUser, text)
	l.notify(userTurn)
	l.logger.Info("user turn", "text", text)

	prompt := BuildPrompt(prior, text)

	reply, err := l.gen.Generate(ctx, generate.Request{Model: l.model, Prompt: prompt})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.logger.Error("generation failed, substituting apology", "error", err)
		reply = l.apology
	}
	// An empty reply is a failure too: the user hears something either way.
	if strings.TrimSpace(reply) == "" {
		l.logger.Warn("empty reply, substituting apology")
		reply = l.apology
	}

	if l.sanitize {
		reply = sanitize.Clean(reply)
	}

	assistantTurn := l.history.Append(RoleAssistant, reply)
	l.notify(assistantTurn)
	l.logger.Info("assistant turn", "text", reply)

	if l.speaker != nil {
		if err := l.speaker.Speak(ctx, reply); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.logger.Warn("speech output failed", "provider", l.speaker.Name(), "error", err)
		}
	}
	return nil
}

func (l *Loop) notify(turn Turn) {
	if l.onTurn != nil {
		l.onTurn(turn)
	}
}
