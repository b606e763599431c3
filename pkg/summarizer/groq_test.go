package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docsight/models"
)

func testGroq(srv *httptest.Server) *Groq {
	g := NewGroq("test-key", models.SummarizerConfig{Model: "llama-3.3-70b-versatile", TimeoutSeconds: 5})
	g.baseURL = srv.URL
	g.client = srv.Client()
	return g
}

func TestGroqSummarize(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: "a tidy summary"}},
			},
		})
	}))
	defer srv.Close()

	g := testGroq(srv)
	got, err := g.Summarize(context.Background(), "excerpt text")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "a tidy summary" {
		t.Errorf("summary = %q", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "llama-3.3-70b-versatile" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
	if !strings.Contains(gotReq.Messages[1].Content, "excerpt text") {
		t.Errorf("user message missing excerpt: %q", gotReq.Messages[1].Content)
	}
}

func TestGroqSummarizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit reached"}}`))
	}))
	defer srv.Close()

	g := testGroq(srv)
	_, err := g.Summarize(context.Background(), "excerpt")
	if err == nil {
		t.Fatal("Summarize() = nil error for API error")
	}
	if !strings.Contains(err.Error(), "rate limit reached") {
		t.Errorf("error = %v, want API message surfaced", err)
	}
}

func TestGroqSummarizeNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	g := testGroq(srv)
	if _, err := g.Summarize(context.Background(), "excerpt"); err == nil {
		t.Fatal("Summarize() = nil error for empty choices")
	}
}

func TestFromConfigDisabled(t *testing.T) {
	cfg := models.SummarizerConfig{Provider: ""}

	sum, err := FromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	if sum != nil {
		t.Errorf("FromConfig() = %v, want nil for empty provider", sum)
	}
}

func TestFromConfigUnknownProvider(t *testing.T) {
	cfg := models.SummarizerConfig{Provider: "carrier-pigeon"}

	if _, err := FromConfig(context.Background(), cfg); err == nil {
		t.Fatal("FromConfig() = nil error for unknown provider")
	}
}
