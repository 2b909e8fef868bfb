package recognize

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// redialTimeout bounds the reconnect performed by a flushing Reset.
const redialTimeout = 10 * time.Second

// VoskClient feeds frames to a vosk-server over its websocket protocol:
// one binary PCM message out, one JSON result message back. A result with
// a "text" field is final; a "partial" field is an advisory hypothesis.
type VoskClient struct {
	url        string
	sampleRate int
	logger     *slog.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
	// pending is true while fed audio has not been closed out by a final
	// result. The server buffers that audio; a reset must flush it or it
	// bleeds into the next utterance.
	pending bool
}

type voskResult struct {
	Text    *string `json:"text"`
	Partial *string `json:"partial"`
}

// DialVosk connects to a vosk-server endpoint (e.g. ws://localhost:2700)
// and announces the sample rate.
func DialVosk(ctx context.Context, url string, sampleRate int, logger *slog.Logger) (*VoskClient, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := dialVoskConn(ctx, url, sampleRate)
	if err != nil {
		return nil, err
	}
	return &VoskClient{
		url:        url,
		sampleRate: sampleRate,
		conn:       conn,
		logger:     logger.With("component", "recognize.vosk"),
	}, nil
}

func dialVoskConn(ctx context.Context, url string, sampleRate int) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("recognize: dial %s: %w", url, err)
	}
	cfg := map[string]map[string]int{"config": {"sample_rate": sampleRate}}
	if err := conn.WriteJSON(cfg); err != nil {
		conn.Close()
		return nil, fmt.Errorf("recognize: send config: %w", err)
	}
	return conn, nil
}

// Feed sends one PCM frame and reads the server's decision for it.
func (c *VoskClient) Feed(frame []byte) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Result{}, ErrRecognizerClosed
	}

	if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return Result{}, fmt.Errorf("recognize: write frame: %w", err)
	}
	c.pending = true

	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return Result{}, fmt.Errorf("recognize: read result: %w", err)
	}

	var res voskResult
	if err := json.Unmarshal(msg, &res); err != nil {
		return Result{}, fmt.Errorf("recognize: parse result %q: %w", msg, err)
	}

	if res.Text != nil {
		// A final result closes out the utterance server-side.
		c.pending = false
		return Result{Final: true, Text: *res.Text}, nil
	}
	if res.Partial != nil {
		return Result{Text: *res.Partial}, nil
	}
	return Result{}, nil
}

// Reset prepares the decoder for a new utterance. After a final result
// the server has already reset itself and this is a no-op. After a
// timeout mid-utterance the server still buffers the fed audio, so the
// decoder is flushed and the connection reopened; otherwise the stale
// audio would surface in the next utterance's result.
func (c *VoskClient) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.pending {
		return nil
	}

	// Ask for the buffered audio's final result and discard it. The
	// server closes the connection after eof.
	if err := c.conn.WriteJSON(map[string]int{"eof": 1}); err != nil {
		c.logger.Debug("flush write failed", "error", err)
	} else {
		for {
			_, msg, err := c.conn.ReadMessage()
			if err != nil {
				break
			}
			var res voskResult
			if json.Unmarshal(msg, &res) == nil && res.Text != nil {
				c.logger.Debug("discarded stale utterance", "text", *res.Text)
				break
			}
		}
	}
	c.conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), redialTimeout)
	defer cancel()

	conn, err := dialVoskConn(ctx, c.url, c.sampleRate)
	if err != nil {
		return fmt.Errorf("recognize: reset: %w", err)
	}
	c.conn = conn
	c.pending = false
	return nil
}

// Close flushes the decoder and closes the connection.
func (c *VoskClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	// Best effort: ask the server to flush before closing.
	if err := c.conn.WriteJSON(map[string]int{"eof": 1}); err != nil {
		c.logger.Debug("eof write failed", "error", err)
	}
	return c.conn.Close()
}

var _ Recognizer = (*VoskClient)(nil)
