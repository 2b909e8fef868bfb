package generate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const transportStream = "stream"

// StreamTransport is the primary transport. It posts the request to an
// Ollama-style /api/generate endpoint and aggregates the streamed
// newline-delimited fragments into one reply.
type StreamTransport struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewStreamTransport creates the streaming transport.
func NewStreamTransport(baseURL string, client *http.Client, logger *slog.Logger) *StreamTransport {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamTransport{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    client,
		logger:  logger.With("component", "generate.stream"),
	}
}

// Name returns "stream".
func (t *StreamTransport) Name() string {
	return transportStream
}

// fragment is one unit of the streamed response. Response contributes
// text; Done terminates the stream early.
type fragment struct {
	Response *string `json:"response"`
	Done     bool    `json:"done"`
}

// Generate sends the request and aggregates fragments in arrival order
// until a done marker or end of stream. A fragment that fails to parse as
// JSON is appended verbatim; the backend may emit non-JSON control lines.
// Any transport error before a terminator fails the whole attempt and the
// partial aggregate is discarded.
func (t *StreamTransport) Generate(ctx context.Context, req Request) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"model":  req.Model,
		"prompt": req.Prompt,
	})
	if err != nil {
		return "", WrapError(transportStream, fmt.Errorf("marshal payload: %w", err))
	}

	url := t.baseURL + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", WrapError(transportStream, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := t.http.Do(httpReq)
	if err != nil {
		return "", WrapError(transportStream, fmt.Errorf("post %s: %w", url, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Transport:  transportStream,
		}
	}

	var pieces strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	fragments := 0
	for scanner.Scan() {
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		fragments++

		var frag fragment
		if err := json.Unmarshal([]byte(raw), &frag); err != nil {
			// Valid JSON that is not a fragment object is control noise
			// and is skipped; only non-JSON lines carry literal text.
			if json.Valid([]byte(raw)) {
				continue
			}
			pieces.WriteString(raw)
			continue
		}
		if frag.Response != nil {
			pieces.WriteString(*frag.Response)
		}
		if frag.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		// Partial aggregate from a failed attempt is discarded, never
		// merged with a fallback transport's result.
		return "", WrapError(transportStream, fmt.Errorf("read stream: %w", err))
	}

	t.logger.Debug("stream complete",
		"fragments", fragments,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return strings.TrimSpace(pieces.String()), nil
}

var _ Transport = (*StreamTransport)(nil)
