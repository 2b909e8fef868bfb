package tts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestChainFallsBack(t *testing.T) {
	failing := &Mock{SpeakFunc: func(ctx context.Context, text string) error {
		return errors.New("synthesis failed")
	}}
	working := &Mock{}

	chain, err := NewChain(failing, working)
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}

	if err := chain.Speak(context.Background(), "hello"); err != nil {
		t.Fatalf("Speak: %v", err)
	}

	if got := working.Spoken(); len(got) != 1 || got[0] != "hello" {
		t.Errorf("fallback spoke %v, want [hello]", got)
	}
}

func TestChainPrimaryWins(t *testing.T) {
	primary := &Mock{}
	fallback := &Mock{}

	chain, err := NewChain(primary, fallback)
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}

	if err := chain.Speak(context.Background(), "hi"); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if len(fallback.Spoken()) != 0 {
		t.Errorf("fallback was invoked: %v", fallback.Spoken())
	}
}

func TestChainAllFail(t *testing.T) {
	fail := func(msg string) *Mock {
		return &Mock{SpeakFunc: func(ctx context.Context, text string) error {
			return errors.New(msg)
		}}
	}

	chain, err := NewChain(fail("first"), fail("second"))
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}

	err = chain.Speak(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error when all providers fail")
	}

	var chainErr *ChainError
	if !errors.As(err, &chainErr) {
		t.Fatalf("expected ChainError, got %T: %v", err, err)
	}
	if len(chainErr.Errors) != 2 {
		t.Errorf("ChainError has %d errors, want 2", len(chainErr.Errors))
	}
}

func TestChainRequiresProvider(t *testing.T) {
	if _, err := NewChain(); !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("NewChain() error = %v, want ErrProviderUnavailable", err)
	}
}

func TestCommandProviderEmptyText(t *testing.T) {
	p := NewCommandProvider("true", nil)
	if err := p.Speak(context.Background(), "   "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("Speak(blank) error = %v, want ErrEmptyText", err)
	}
}

func TestCommandProviderRuns(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	script := filepath.Join(dir, "speak.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nprintf '%s' \"$*\" > "+out+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	p := NewCommandProvider(script, nil, WithArgs("-v", "en"))
	if err := p.Speak(context.Background(), "hello world"); err != nil {
		t.Fatalf("Speak: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "-v en hello world"; got != want {
		t.Errorf("command saw %q, want %q", got, want)
	}
}

func TestCommandProviderFailure(t *testing.T) {
	p := NewCommandProvider("false", nil)
	if err := p.Speak(context.Background(), "hello"); err == nil {
		t.Error("expected error from failing command")
	}
}

func TestCommandProviderTimeout(t *testing.T) {
	// The forked sleep inherits the output pipes and outlives the kill of
	// the wrapper, the worst case for bounding the invocation.
	dir := t.TempDir()
	script := filepath.Join(dir, "slow.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nsleep 5 &\nwait\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	p := NewCommandProvider(script, nil, WithSpeakTimeout(50*time.Millisecond))

	start := time.Now()
	err := p.Speak(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %v, want well under 2s", elapsed)
	}
}
