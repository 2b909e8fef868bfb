// Package sanitize cleans generated replies before they are spoken.
//
// Backends sometimes wrap output in a JSON envelope, echo the prompt's
// role framing back into their continuation, or pad with whitespace.
// Clean strips these artifacts. It is pure and idempotent.
package sanitize

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Envelope keys tried, in order, when the whole reply parses as JSON.
var envelopeKeys = []string{"response", "output", "text", "result"}

var (
	leadingRole   = regexp.MustCompile(`(?m)^(?:AI|Assistant|User|System):\s*`)
	inlineRole    = regexp.MustCompile(`\b(?:User|Assistant|AI|System):\s*`)
	assistantCue  = regexp.MustCompile(`\bAssistant:\s*`)
	blankLines    = regexp.MustCompile(`\n{2,}`)
	hspaceRuns    = regexp.MustCompile(`[ \t]{2,}`)
)

// Clean normalizes a raw model reply. Steps run in order and each is
// independent: envelope unwrap, echoed-prompt cut, role-label strip,
// whitespace collapse, trim.
func Clean(raw string) string {
	if raw == "" {
		return raw
	}

	text := unwrapEnvelope(raw)

	// A backend that echoes the prompt's role framing repeats the trailing
	// "Assistant:" cue; only what follows the last cue is the reply.
	if locs := assistantCue.FindAllStringIndex(text, -1); len(locs) > 0 {
		text = text[locs[len(locs)-1][1]:]
	}

	text = leadingRole.ReplaceAllString(text, "")
	text = inlineRole.ReplaceAllString(text, "")
	text = blankLines.ReplaceAllString(text, "\n")
	text = hspaceRuns.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// unwrapEnvelope replaces the text with the first known string field when
// the entire input parses as a single JSON object. Anything else passes
// through untouched.
func unwrapEnvelope(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return raw
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return raw
	}

	for _, key := range envelopeKeys {
		if v, ok := obj[key].(string); ok {
			return v
		}
	}
	return raw
}
