package sanitize

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "echoed prompt framing",
			in:   "User: hi Assistant:  Hello   there\n\n\nfriend",
			want: "Hello there\nfriend",
		},
		{
			name: "json envelope result",
			in:   `{"result": "Hi!"}`,
			want: "Hi!",
		},
		{
			name: "json envelope response",
			in:   `{"response": "All good."}`,
			want: "All good.",
		},
		{
			name: "leading role label",
			in:   "Assistant: Sure, here you go.",
			want: "Sure, here you go.",
		},
		{
			name: "line start labels",
			in:   "AI: one\nSystem: two",
			want: "one\ntwo",
		},
		{
			name: "whitespace collapse",
			in:   "a  b\t\tc\n\n\n\nd",
			want: "a b c\nd",
		},
		{
			name: "plain text untouched",
			in:   "Nothing to do here.",
			want: "Nothing to do here.",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "non-json braces pass through",
			in:   "{not json",
			want: "{not json",
		},
		{
			name: "envelope without known key",
			in:   `{"foo": "bar"}`,
			want: `{"foo": "bar"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"User: hi Assistant:  Hello   there\n\n\nfriend",
		`{"result": "Hi!"}`,
		"Assistant: Sure.",
		"plain",
		"",
		"a  b\n\n\nc",
	}

	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
