package recognize

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gorilla/websocket"
)

// newVoskTestServer speaks just enough of the vosk-server protocol for the
// client: a config message per connection, a scripted JSON reply per
// binary frame, and a final result followed by connection close on eof.
func newVoskTestServer(t *testing.T, connCount *int32) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer c.Close()
		n := atomic.AddInt32(connCount, 1)

		for {
			mt, msg, err := c.ReadMessage()
			if err != nil {
				return
			}
			if mt == websocket.BinaryMessage {
				// First connection never finalizes on its own; later
				// connections finalize immediately.
				reply := `{"partial":"stale audio"}`
				if n > 1 {
					reply = `{"text":"fresh"}`
				}
				if err := c.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
					return
				}
				continue
			}
			if strings.Contains(string(msg), "eof") {
				c.WriteMessage(websocket.TextMessage, []byte(`{"text":"stale audio"}`))
				return
			}
			// Config message: acknowledged silently.
		}
	}))
}

func TestVoskClientFeed(t *testing.T) {
	var conns int32
	srv := newVoskTestServer(t, &conns)
	defer srv.Close()

	client, err := DialVosk(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), 16000, nil)
	if err != nil {
		t.Fatalf("DialVosk: %v", err)
	}
	defer client.Close()

	res, err := client.Feed([]byte{0, 0})
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if res.Final || res.Text != "stale audio" {
		t.Errorf("result = %+v, want partial", res)
	}
}

func TestVoskClientResetFlushesBufferedAudio(t *testing.T) {
	var conns int32
	srv := newVoskTestServer(t, &conns)
	defer srv.Close()

	client, err := DialVosk(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), 16000, nil)
	if err != nil {
		t.Fatalf("DialVosk: %v", err)
	}
	defer client.Close()

	// Feed audio that never finalizes, as a timed-out utterance does.
	if _, err := client.Feed([]byte{0, 0}); err != nil {
		t.Fatalf("Feed: %v", err)
	}

	if err := client.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got := atomic.LoadInt32(&conns); got != 2 {
		t.Fatalf("reset after buffered audio should reconnect, conns = %d", got)
	}

	// The next utterance must not carry the flushed audio.
	res, err := client.Feed([]byte{0, 0})
	if err != nil {
		t.Fatalf("Feed after reset: %v", err)
	}
	if !res.Final || res.Text != "fresh" {
		t.Errorf("result after reset = %+v, want fresh final", res)
	}
}

func TestVoskClientResetAfterFinalIsNoop(t *testing.T) {
	var conns int32
	srv := newVoskTestServer(t, &conns)
	defer srv.Close()

	client, err := DialVosk(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), 16000, nil)
	if err != nil {
		t.Fatalf("DialVosk: %v", err)
	}
	defer client.Close()

	// Drive the client onto a connection that finalizes.
	if _, err := client.Feed([]byte{0, 0}); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if err := client.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	res, err := client.Feed([]byte{0, 0})
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if !res.Final {
		t.Fatalf("result = %+v, want final", res)
	}

	before := atomic.LoadInt32(&conns)
	if err := client.Reset(); err != nil {
		t.Fatalf("Reset after final: %v", err)
	}
	if got := atomic.LoadInt32(&conns); got != before {
		t.Errorf("reset after a final result reconnected: %d -> %d", before, got)
	}
}
