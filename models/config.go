// Package models defines data structures shared by the ingestion pipeline,
// the keyword analyzer, and the CLI/server front ends.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExcerptLimits holds the per-source-type character budgets applied before
// text is handed to the summarizer. Sheet and transcript flows are a single
// blob and get the larger budget; PDFs are truncated per file in a batch.
type ExcerptLimits struct {
	PDF        int `yaml:"pdf"`
	Sheet      int `yaml:"sheet"`
	Transcript int `yaml:"transcript"`
	Article    int `yaml:"article"`
}

// AnalyzerConfig holds the keyword analyzer knobs.
//
// MinTokenLength is an exclusive bound: tokens with length <= MinTokenLength
// are dropped, so the default of 3 keeps tokens of length 4 and up.
type AnalyzerConfig struct {
	TopN           int `yaml:"top_n"`
	MinTokenLength int `yaml:"min_token_length"`
}

// SummarizerConfig selects and configures the external summarizer.
// API keys come from the environment, never from the config file.
type SummarizerConfig struct {
	Provider       string  `yaml:"provider"` // "groq", "gemini" or "" to disable
	Model          string  `yaml:"model"`
	TimeoutSeconds float64 `yaml:"timeout_seconds"`
}

// Config is the runtime configuration for a docsight invocation.
type Config struct {
	Workers        int              `yaml:"workers"`
	MinUsableChars int              `yaml:"min_usable_chars"`
	ExcerptLimits  ExcerptLimits    `yaml:"excerpt_limits"`
	Analyzer       AnalyzerConfig   `yaml:"analyzer"`
	Summarizer     SummarizerConfig `yaml:"summarizer"`
	ReportsDir     string           `yaml:"reports_dir"`
	ListenAddr     string           `yaml:"listen_addr"`
}

// DefaultConfig returns the configuration used when no file is provided.
// Single-blob sources get a 30000-char excerpt budget; per-file batch flows
// get smaller ones so a large batch stays within model limits.
func DefaultConfig() *Config {
	return &Config{
		Workers:        4,
		MinUsableChars: 10,
		ExcerptLimits: ExcerptLimits{
			PDF:        12000,
			Sheet:      30000,
			Transcript: 30000,
			Article:    15000,
		},
		Analyzer: AnalyzerConfig{
			TopN:           5,
			MinTokenLength: 3,
		},
		Summarizer: SummarizerConfig{
			Provider:       "groq",
			Model:          "llama-3.3-70b-versatile",
			TimeoutSeconds: 60,
		},
		ReportsDir: "reports",
		ListenAddr: ":8080",
	}
}

// LoadConfig reads a YAML config file and overlays it on the defaults.
// A missing file is not an error; the defaults are returned unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays deploy-time settings from the environment onto the file
// values. API keys are read where the clients are built, not here.
func (c *Config) applyEnv() {
	if v := os.Getenv("DOCSIGHT_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("DOCSIGHT_REPORTS_DIR"); v != "" {
		c.ReportsDir = v
	}
	if v := os.Getenv("DOCSIGHT_PROVIDER"); v != "" {
		c.Summarizer.Provider = v
	}
	if v := os.Getenv("DOCSIGHT_MODEL"); v != "" {
		c.Summarizer.Model = v
	}
}

// Validate rejects configurations that would make the pipeline misbehave.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.MinUsableChars < 0 {
		return fmt.Errorf("min_usable_chars must be >= 0, got %d", c.MinUsableChars)
	}
	if c.Analyzer.TopN < 0 {
		return fmt.Errorf("analyzer.top_n must be >= 0, got %d", c.Analyzer.TopN)
	}
	if c.Analyzer.MinTokenLength < 0 {
		return fmt.Errorf("analyzer.min_token_length must be >= 0, got %d", c.Analyzer.MinTokenLength)
	}
	for name, limit := range map[string]int{
		"pdf":        c.ExcerptLimits.PDF,
		"sheet":      c.ExcerptLimits.Sheet,
		"transcript": c.ExcerptLimits.Transcript,
		"article":    c.ExcerptLimits.Article,
	} {
		if limit < 1 {
			return fmt.Errorf("excerpt_limits.%s must be >= 1, got %d", name, limit)
		}
	}
	return nil
}

// ExcerptLimitFor returns the excerpt budget for a source type.
func (c *Config) ExcerptLimitFor(st SourceType) int {
	switch st {
	case SourcePDF:
		return c.ExcerptLimits.PDF
	case SourceSheet:
		return c.ExcerptLimits.Sheet
	case SourceTranscript:
		return c.ExcerptLimits.Transcript
	case SourceArticle:
		return c.ExcerptLimits.Article
	default:
		return c.ExcerptLimits.PDF
	}
}
