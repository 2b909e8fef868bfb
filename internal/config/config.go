// Package config provides configuration helpers for go-parley commands.
package config

import "os"

// Default service endpoints and models.
const (
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "tinyllama:1.1b"
	DefaultVoskURL     = "ws://localhost:2700"
	DefaultCLITool     = "ollama"
)

// OllamaURL returns the generation endpoint from OLLAMA_URL.
// Falls back to the local default if not set.
func OllamaURL() string {
	if url := os.Getenv("OLLAMA_URL"); url != "" {
		return url
	}
	return DefaultOllamaURL
}

// OllamaModel returns the model name from OLLAMA_MODEL or the default.
func OllamaModel() string {
	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		return model
	}
	return DefaultOllamaModel
}

// VoskURL returns the recognizer endpoint from VOSK_URL or the default.
func VoskURL() string {
	if url := os.Getenv("VOSK_URL"); url != "" {
		return url
	}
	return DefaultVoskURL
}

// OpenAIKey returns the API key from OPENAI_API_KEY, empty when unset.
// An empty key disables the OpenAI-compatible generation transport.
func OpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// OpenAIBaseURL returns an OpenAI-compatible endpoint override from
// OPENAI_BASE_URL, empty when unset.
func OpenAIBaseURL() string {
	return os.Getenv("OPENAI_BASE_URL")
}
