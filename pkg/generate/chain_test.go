package generate

import (
	"context"
	"errors"
	"testing"
)

func TestChainFallsBack(t *testing.T) {
	primary := &Mock{
		NameOverride: "primary",
		GenerateFunc: func(ctx context.Context, req Request) (string, error) {
			return "", WrapError("primary", errors.New("connection refused"))
		},
	}
	fallback := &Mock{
		NameOverride: "fallback",
		GenerateFunc: func(ctx context.Context, req Request) (string, error) {
			return "ok", nil
		},
	}

	chain, err := NewChain(primary, fallback)
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}

	reply, err := chain.Generate(context.Background(), Request{Model: "m", Prompt: "p"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "ok" {
		t.Errorf("reply = %q, want %q", reply, "ok")
	}
	if len(primary.Requests()) != 1 || len(fallback.Requests()) != 1 {
		t.Error("both transports should have been tried once")
	}
}

func TestChainPrimaryWins(t *testing.T) {
	primary := &Mock{
		GenerateFunc: func(ctx context.Context, req Request) (string, error) {
			return "first", nil
		},
	}
	fallback := &Mock{
		GenerateFunc: func(ctx context.Context, req Request) (string, error) {
			t.Error("fallback should not run when primary succeeds")
			return "", nil
		},
	}

	chain, _ := NewChain(primary, fallback)
	reply, err := chain.Generate(context.Background(), Request{Model: "m", Prompt: "p"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "first" {
		t.Errorf("reply = %q", reply)
	}
}

func TestChainAllFail(t *testing.T) {
	boom := func(ctx context.Context, req Request) (string, error) {
		return "", WrapError("x", errors.New("boom"))
	}
	chain, _ := NewChain(&Mock{GenerateFunc: boom}, &Mock{GenerateFunc: boom})

	_, err := chain.Generate(context.Background(), Request{Model: "m", Prompt: "p"})
	var chainErr *ChainError
	if !errors.As(err, &chainErr) {
		t.Fatalf("expected ChainError, got %v", err)
	}
	if len(chainErr.Errors) != 2 {
		t.Errorf("recorded %d errors, want 2", len(chainErr.Errors))
	}
}

func TestChainRequiresTransport(t *testing.T) {
	if _, err := NewChain(); !errors.Is(err, ErrNoTransport) {
		t.Fatalf("expected ErrNoTransport, got %v", err)
	}
}

func TestClientDefaultsModel(t *testing.T) {
	client, err := NewClient(WithModel("test-model"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.Model() != "test-model" {
		t.Errorf("Model = %q", client.Model())
	}

	if _, err := client.Generate(context.Background(), Request{}); !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("expected ErrEmptyPrompt, got %v", err)
	}
}
