package dialogue

import (
	"fmt"
	"strings"
	"testing"
)

func TestBuildPromptFormat(t *testing.T) {
	turns := []Turn{
		{Role: RoleUser, Text: "hello"},
		{Role: RoleAssistant, Text: "hi there"},
	}

	got := BuildPrompt(turns, "how are you?")
	want := "User: hello\nAssistant: hi there\nUser: how are you?\nAssistant:"
	if got != want {
		t.Errorf("BuildPrompt =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildPromptEmptyHistory(t *testing.T) {
	got := BuildPrompt(nil, "hello")
	want := "User: hello\nAssistant:"
	if got != want {
		t.Errorf("BuildPrompt = %q, want %q", got, want)
	}
}

func TestBuildPromptWindowsHistory(t *testing.T) {
	var turns []Turn
	for i := 0; i < 25; i++ {
		turns = append(turns, Turn{Role: RoleUser, Text: fmt.Sprintf("turn %d", i)})
	}

	got := BuildPrompt(turns, "latest")

	if !strings.HasSuffix(got, "Assistant:") {
		t.Errorf("prompt does not end with Assistant: cue: %q", got)
	}

	lines := strings.Split(got, "\n")
	// 10 history lines, the new user line, the cue.
	if len(lines) != PromptWindow+2 {
		t.Errorf("prompt has %d lines, want %d", len(lines), PromptWindow+2)
	}
	if lines[0] != "User: turn 15" {
		t.Errorf("oldest included turn = %q, want %q", lines[0], "User: turn 15")
	}
	if lines[len(lines)-2] != "User: latest" {
		t.Errorf("new user line = %q, want %q", lines[len(lines)-2], "User: latest")
	}
}

func TestHistoryWindow(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 5; i++ {
		h.Append(RoleUser, fmt.Sprintf("t%d", i))
	}

	if got := h.Window(3); len(got) != 3 || got[0].Text != "t2" {
		t.Errorf("Window(3) = %v", got)
	}
	if got := h.Window(10); len(got) != 5 {
		t.Errorf("Window(10) returned %d turns, want 5", len(got))
	}
	if got := h.Window(0); got != nil {
		t.Errorf("Window(0) = %v, want nil", got)
	}
}

func TestHistoryAppendAssignsIDs(t *testing.T) {
	h := NewHistory()
	a := h.Append(RoleUser, "one")
	b := h.Append(RoleAssistant, "two")

	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Errorf("turn IDs not unique: %q, %q", a.ID, b.ID)
	}
	if a.At.IsZero() {
		t.Error("turn timestamp not set")
	}

	turns := h.Turns()
	if len(turns) != 2 || turns[0].Text != "one" || turns[1].Text != "two" {
		t.Errorf("Turns() = %v", turns)
	}
}
