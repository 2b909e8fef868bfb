// Package generate provides the text-generation client for the dialogue
// loop.
//
// A Client aggregates a streamed reply from an Ollama-style NDJSON
// endpoint, falling back through a chain of transports when one fails:
// the streaming HTTP transport first, then an optional OpenAI-compatible
// transport, then the local CLI. The fallback policy is an explicit,
// testable decision point rather than exception flow.
//
// Example usage:
//
//	client, _ := generate.NewClient(
//	    generate.WithBaseURL("http://localhost:11434"),
//	    generate.WithModel("tinyllama:1.1b"),
//	)
//	reply, err := client.Generate(ctx, generate.Request{Prompt: prompt})
package generate

import "context"

// Request is one immutable, single-use generation request.
type Request struct {
	// Model names the backend model. Empty uses the client default.
	Model string

	// Prompt is the full rendered prompt, history included.
	Prompt string
}

// Transport produces a complete reply for a request. A transport either
// returns the aggregated text or an error; it never returns a partial
// aggregate from a failed attempt.
type Transport interface {
	// Name identifies the transport in logs and errors.
	Name() string

	// Generate sends the request and returns the full reply text.
	Generate(ctx context.Context, req Request) (string, error)
}
