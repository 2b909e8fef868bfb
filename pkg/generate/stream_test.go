package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStreamTransportAggregates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected /api/generate, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		fmt.Fprintln(w, `{"response":"Hel"}`)
		fmt.Fprintln(w, `{"response":"lo"}`)
		fmt.Fprintln(w, `{"done":true}`)
	}))
	defer server.Close()

	tr := NewStreamTransport(server.URL, nil, nil)
	reply, err := tr.Generate(context.Background(), Request{Model: "m", Prompt: "p"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "Hello" {
		t.Errorf("reply = %q, want %q", reply, "Hello")
	}
}

func TestStreamTransportDoneStopsEarly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"response":"yes"}`)
		fmt.Fprintln(w, `{"done":true}`)
		fmt.Fprintln(w, `{"response":" ignored"}`)
	}))
	defer server.Close()

	tr := NewStreamTransport(server.URL, nil, nil)
	reply, err := tr.Generate(context.Background(), Request{Model: "m", Prompt: "p"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "yes" {
		t.Errorf("reply = %q, want %q", reply, "yes")
	}
}

func TestStreamTransportNonJSONLinesAppendVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"response":"a"}`)
		fmt.Fprintln(w, `control-line`)
		fmt.Fprintln(w, `{"response":"b"}`)
	}))
	defer server.Close()

	tr := NewStreamTransport(server.URL, nil, nil)
	reply, err := tr.Generate(context.Background(), Request{Model: "m", Prompt: "p"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "acontrol-lineb" {
		t.Errorf("reply = %q", reply)
	}
}

func TestStreamTransportSkipsJSONNonObjects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"response":"a"}`)
		fmt.Fprintln(w, `5`)
		fmt.Fprintln(w, `"quoted"`)
		fmt.Fprintln(w, `[1,2]`)
		fmt.Fprintln(w, `{"response":"b"}`)
	}))
	defer server.Close()

	tr := NewStreamTransport(server.URL, nil, nil)
	reply, err := tr.Generate(context.Background(), Request{Model: "m", Prompt: "p"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "ab" {
		t.Errorf("reply = %q, want %q", reply, "ab")
	}
}

func TestStreamTransportEOFWithoutDone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"response":"partial is fine"}`)
	}))
	defer server.Close()

	tr := NewStreamTransport(server.URL, nil, nil)
	reply, err := tr.Generate(context.Background(), Request{Model: "m", Prompt: "p"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "partial is fine" {
		t.Errorf("reply = %q", reply)
	}
}

func TestStreamTransportHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	tr := NewStreamTransport(server.URL, nil, nil)
	_, err := tr.Generate(context.Background(), Request{Model: "m", Prompt: "p"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}

func TestStreamTransportConnectionRefused(t *testing.T) {
	// Point at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	tr := NewStreamTransport(url, nil, nil)
	_, err := tr.Generate(context.Background(), Request{Model: "m", Prompt: "p"})
	if err == nil {
		t.Fatal("expected transport error")
	}

	var trErr *TransportError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransportError, got %T", err)
	}
}
