package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const transportOpenAI = "openai"

// OpenAITransport generates through an OpenAI-compatible chat completions
// endpoint, streaming deltas and aggregating them like the primary
// transport. It participates in the fallback chain when an API key is
// configured.
type OpenAITransport struct {
	client *openai.Client
	logger *slog.Logger
}

// NewOpenAITransport creates the OpenAI-compatible transport. baseURL may
// be empty to use the public endpoint.
func NewOpenAITransport(apiKey, baseURL string, logger *slog.Logger) *OpenAITransport {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAITransport{
		client: openai.NewClientWithConfig(cfg),
		logger: logger.With("component", "generate.openai"),
	}
}

// Name returns "openai".
func (t *OpenAITransport) Name() string {
	return transportOpenAI
}

// Generate streams a chat completion and concatenates the deltas. Any
// stream error before completion fails the attempt; the partial aggregate
// is discarded.
func (t *OpenAITransport) Generate(ctx context.Context, req Request) (string, error) {
	stream, err := t.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Stream: true,
	})
	if err != nil {
		return "", WrapError(transportOpenAI, fmt.Errorf("open stream: %w", err))
	}
	defer stream.Close()

	var pieces strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", WrapError(transportOpenAI, fmt.Errorf("read stream: %w", err))
		}
		if len(resp.Choices) > 0 {
			pieces.WriteString(resp.Choices[0].Delta.Content)
		}
	}

	return strings.TrimSpace(pieces.String()), nil
}

var _ Transport = (*OpenAITransport)(nil)
