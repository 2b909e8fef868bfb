package dialogue

import "strings"

// PromptWindow is how many prior turns a prompt may include. Older turns
// stay in the history but are excluded from prompt construction to bound
// prompt size.
const PromptWindow = 10

// BuildPrompt renders the last PromptWindow turns as "<Role>: <text>"
// lines in chronological order, appends the new user line, then a
// trailing "Assistant:" cue for the model to continue from. Pure; the
// history is not mutated.
func BuildPrompt(turns []Turn, userText string) string {
	if n := len(turns); n > PromptWindow {
		turns = turns[n-PromptWindow:]
	}

	var b strings.Builder
	for _, t := range turns {
		b.WriteString(string(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Text)
		b.WriteByte('\n')
	}
	b.WriteString(string(RoleUser))
	b.WriteString(": ")
	b.WriteString(userText)
	b.WriteByte('\n')
	b.WriteString(string(RoleAssistant))
	b.WriteByte(':')
	return b.String()
}
