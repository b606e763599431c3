// Package summarizer wraps the hosted text-generation services that turn
// document excerpts into executive summaries. The pipeline consumes it as a
// black box; with no provider configured, runs still produce the dashboard.
package summarizer

import (
	"context"
	"fmt"
	"os"

	"docsight/models"
)

// SystemPrompt is the fixed instruction sent with every excerpt.
const SystemPrompt = "You are a professional AI researcher. Provide a clear, detailed executive summary. Use black-and-white professional formatting."

// Summarizer generates a natural-language summary for a text payload.
type Summarizer interface {
	Summarize(ctx context.Context, excerpt string) (string, error)
	Model() string
}

// FromConfig builds the configured provider's client. A missing provider or
// missing API key returns (nil, nil): summarization is optional and the
// caller skips it.
func FromConfig(ctx context.Context, cfg models.SummarizerConfig) (Summarizer, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "groq":
		key := os.Getenv("GROQ_API_KEY")
		if key == "" {
			return nil, nil
		}
		return NewGroq(key, cfg), nil
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			return nil, nil
		}
		return NewGemini(ctx, key, cfg)
	default:
		return nil, fmt.Errorf("unknown summarizer provider: %q", cfg.Provider)
	}
}

// userPrompt frames the excerpt for the chat request.
func userPrompt(excerpt string) string {
	return fmt.Sprintf("Analyze the following data:\n%s", excerpt)
}
