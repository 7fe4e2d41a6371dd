package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("", ""); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}

func TestNewClientFromEnv(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	if _, err := NewClientFromEnv(); err == nil {
		t.Fatalf("expected error when DEEPSEEK_API_KEY unset")
	}
	t.Setenv("DEEPSEEK_API_KEY", "test-key")
	t.Setenv("DEEPSEEK_MODEL", "deepseek-chat")
	if _, err := NewClientFromEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompleteRoundTrip(t *testing.T) {
	var gotModel string
	var gotSystem, gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model
		if len(req.Messages) == 2 {
			gotSystem = req.Messages[0].Content
			gotUser = req.Messages[1].Content
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello there"}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient("test-key", srv.URL, WithModel("test-model"))
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	out, err := c.Complete(context.Background(), "be kind", "say hi")
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if out != "hello there" {
		t.Fatalf("completion = %q", out)
	}
	if gotModel != "test-model" || gotSystem != "be kind" || gotUser != "say hi" {
		t.Fatalf("request not built correctly: model=%q system=%q user=%q", gotModel, gotSystem, gotUser)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c, err := NewClient("test-key", srv.URL)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if _, err := c.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}
