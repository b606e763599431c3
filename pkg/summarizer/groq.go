package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"docsight/models"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// Groq talks to Groq's OpenAI-compatible chat-completions endpoint.
type Groq struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGroq returns a client with the configured model and timeout.
func NewGroq(apiKey string, cfg models.SummarizerConfig) *Groq {
	timeout := time.Duration(cfg.TimeoutSeconds * float64(time.Second))
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Groq{
		apiKey:  apiKey,
		model:   cfg.Model,
		baseURL: groqBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *Groq) Model() string { return g.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Summarize sends the excerpt with the fixed system prompt and returns the
// first completion choice.
func (g *Groq) Summarize(ctx context.Context, excerpt string) (string, error) {
	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: userPrompt(excerpt)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("completion failed: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("completion failed, status code: %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
