// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicClient_Generate(t *testing.T) {
	var gotVersion, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("anthropic-version")
		gotKey = r.Header.Get("x-api-key")

		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(anthropicResponse{
			Type:    "message",
			Content: []anthropicContent{{Type: "text", Text: "updated file"}},
		})
	}))
	defer server.Close()

	client, err := NewAnthropicClient("test-key", "claude-test", server.URL)
	if err != nil {
		t.Fatalf("NewAnthropicClient: %v", err)
	}

	text, err := client.Generate(context.Background(), "change the hero", GenerationParams{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "updated file" {
		t.Errorf("text = %q, want %q", text, "updated file")
	}
	if gotVersion != anthropicAPIVersion {
		t.Errorf("anthropic-version = %q, want %q", gotVersion, anthropicAPIVersion)
	}
	if gotKey != "test-key" {
		t.Errorf("x-api-key = %q, want test-key", gotKey)
	}
}

func TestAnthropicClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(anthropicResponse{
			Type:  "error",
			Error: &anthropicError{Type: "invalid_request_error", Message: "bad model"},
		})
	}))
	defer server.Close()

	client, err := NewAnthropicClient("test-key", "claude-test", server.URL)
	if err != nil {
		t.Fatalf("NewAnthropicClient: %v", err)
	}
	if _, err := client.Generate(context.Background(), "x", GenerationParams{}); err == nil {
		t.Fatal("Generate succeeded on an API error response")
	}
}

func TestAnthropicClient_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(anthropicResponse{Type: "message"})
	}))
	defer server.Close()

	client, err := NewAnthropicClient("test-key", "claude-test", server.URL)
	if err != nil {
		t.Fatalf("NewAnthropicClient: %v", err)
	}
	if _, err := client.Generate(context.Background(), "x", GenerationParams{}); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestNewClients_RequireAPIKey(t *testing.T) {
	if _, err := NewAnthropicClient("", "m", ""); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("anthropic err = %v, want ErrMissingAPIKey", err)
	}
	if _, err := NewOpenAIClient("", "m", ""); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("openai err = %v, want ErrMissingAPIKey", err)
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New(Options{Provider: "mystery", APIKey: "k"}); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("err = %v, want ErrUnknownProvider", err)
	}
}

func TestNew_ExplicitKeyTakesPrecedence(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "from-env")

	gen, err := New(Options{Provider: ProviderAnthropic, APIKey: "explicit"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	client, ok := gen.client.(*AnthropicClient)
	if !ok {
		t.Fatalf("client type = %T, want *AnthropicClient", gen.client)
	}
	if client.apiKey != "explicit" {
		t.Errorf("apiKey = %q, explicit key must win over the environment", client.apiKey)
	}
}

func TestNew_FallsBackToEnvironment(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "from-env")

	gen, err := New(Options{Provider: ProviderAnthropic})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	client := gen.client.(*AnthropicClient)
	if client.apiKey != "from-env" {
		t.Errorf("apiKey = %q, want the environment value", client.apiKey)
	}
}

// fakeClient counts calls for the generator wrapper tests.
type fakeClient struct{ calls int }

func (f *fakeClient) Generate(_ context.Context, _ string, _ GenerationParams) (string, error) {
	f.calls++
	return "ok", nil
}

func TestGenerator_PassesThrough(t *testing.T) {
	fc := &fakeClient{}
	gen := NewGenerator(fc, 0)

	text, err := gen.GenerateText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != "ok" || fc.calls != 1 {
		t.Errorf("text = %q, calls = %d", text, fc.calls)
	}
}

func TestGenerator_LimiterHonorsCancellation(t *testing.T) {
	fc := &fakeClient{}
	// One request per hour: the second call must block until the
	// context is canceled.
	gen := NewGenerator(fc, 1.0/3600)

	if _, err := gen.GenerateText(context.Background(), "first"); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gen.GenerateText(ctx, "second"); err == nil {
		t.Fatal("second call succeeded despite a canceled context")
	}
	if fc.calls != 1 {
		t.Errorf("calls = %d, want 1", fc.calls)
	}
}
