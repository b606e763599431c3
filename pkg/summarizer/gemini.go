package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"docsight/models"
)

// Gemini generates summaries with Google's generative AI API.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

// NewGemini builds a client for the configured model. Low temperature keeps
// summaries close to the source material.
func NewGemini(ctx context.Context, apiKey string, cfg models.SummarizerConfig) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	name := cfg.Model
	if name == "" || strings.HasPrefix(name, "llama") || strings.HasPrefix(name, "mixtral") {
		// Config carried a Groq model name; fall back to a Gemini default.
		name = "gemini-2.0-flash"
	}

	model := client.GenerativeModel(name)
	model.SetTemperature(0.2)
	model.SystemInstruction = genai.NewUserContent(genai.Text(SystemPrompt))

	return &Gemini{client: client, model: model, name: name}, nil
}

func (g *Gemini) Model() string { return g.name }

func (g *Gemini) Summarize(ctx context.Context, excerpt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(userPrompt(excerpt)))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
