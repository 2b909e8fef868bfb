package generate

import (
	"log/slog"
	"net/http"
	"time"
)

// Config holds client configuration.
type Config struct {
	// BaseURL is the Ollama-style API base URL.
	BaseURL string

	// Model is the default model name.
	Model string

	// Timeout bounds one streaming request, body read included.
	Timeout time.Duration

	// CLITool is the fallback command name.
	CLITool string

	// CLITimeout bounds one fallback invocation.
	CLITimeout time.Duration

	// OpenAIKey enables the OpenAI-compatible transport when set.
	OpenAIKey string

	// OpenAIBaseURL overrides the OpenAI-compatible endpoint.
	OpenAIBaseURL string

	// HTTPClient overrides the streaming transport's HTTP client.
	HTTPClient *http.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithBaseURL sets the API base URL.
// Example: "http://localhost:11434"
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithModel sets the default model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithTimeout sets the per-request timeout for both transports.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
		c.CLITimeout = d
	}
}

// WithCLITool sets the fallback command name.
func WithCLITool(tool string) Option {
	return func(c *Config) { c.CLITool = tool }
}

// WithOpenAI enables the OpenAI-compatible transport. baseURL may be
// empty to use the public endpoint.
func WithOpenAI(apiKey, baseURL string) Option {
	return func(c *Config) {
		c.OpenAIKey = apiKey
		c.OpenAIBaseURL = baseURL
	}
}

// WithHTTPClient overrides the streaming transport's HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) { c.HTTPClient = client }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns sensible defaults for a local Ollama server.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "http://localhost:11434",
		Model:      "tinyllama:1.1b",
		Timeout:    60 * time.Second,
		CLITool:    "ollama",
		CLITimeout: 60 * time.Second,
		Logger:     slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
