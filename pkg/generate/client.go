package generate

import (
	"context"
	"log/slog"
	"strings"

	"github.com/parleylabs/go-parley/internal/httpc"
)

// Client is the generation client used by the dialogue loop. It owns the
// transport chain: streaming HTTP first, then the optional
// OpenAI-compatible transport, then the CLI fallback.
type Client struct {
	chain  *Chain
	config *Config
	logger *slog.Logger
}

// NewClient creates a generation client.
func NewClient(opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	logger := cfg.Logger.With("component", "generate.client")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = httpc.NewClient(cfg.Timeout)
	}

	transports := []Transport{
		NewStreamTransport(cfg.BaseURL, httpClient, cfg.Logger),
	}
	if cfg.OpenAIKey != "" {
		transports = append(transports, NewOpenAITransport(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.Logger))
	}
	transports = append(transports, NewCLITransport(cfg.CLITool, cfg.CLITimeout, cfg.Logger))

	chain, err := NewChainWithLogger(cfg.Logger, transports...)
	if err != nil {
		return nil, err
	}

	return &Client{
		chain:  chain,
		config: cfg,
		logger: logger,
	}, nil
}

// Generate returns a reply for the request, trying each transport in
// order. Exactly one request is in flight per loop turn; callers do not
// issue concurrent requests. The returned string may be a visible error
// sentinel from the CLI fallback; an error means every transport failed
// structurally.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", ErrEmptyPrompt
	}
	if req.Model == "" {
		req.Model = c.config.Model
	}

	return c.chain.Generate(ctx, req)
}

// Model returns the default model name.
func (c *Client) Model() string {
	return c.config.Model
}
