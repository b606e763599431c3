package models

import "time"

// KeywordEntry is one row of the keyword ranking: a lowercase alphanumeric
// token and its exact occurrence count across all ingested text.
type KeywordEntry struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// DocumentResult reports the outcome for a single document in a run.
// A failed document carries its error; siblings are unaffected.
type DocumentResult struct {
	ID         string           `json:"id" yaml:"id"`
	Source     SourceType       `json:"source" yaml:"source"`
	Status     ExtractionStatus `json:"status" yaml:"status"`
	CharCount  int              `json:"char_count" yaml:"char_count"`
	PageCount  int              `json:"page_count,omitempty" yaml:"page_count,omitempty"`
	Summary    string           `json:"summary,omitempty" yaml:"summary,omitempty"`
	Error      string           `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorType  string           `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	Summarized bool             `json:"summarized" yaml:"summarized"`
}

// Dashboard holds the aggregate metrics shown alongside the summaries.
// All counts cover the full raw text of every ingested document combined,
// never the truncated excerpts.
type Dashboard struct {
	Keywords           []KeywordEntry `json:"keywords" yaml:"keywords"`
	UniqueKeywords     int            `json:"unique_keywords" yaml:"unique_keywords"`
	TotalWords         int            `json:"total_words" yaml:"total_words"`
	TotalChars         int            `json:"total_chars" yaml:"total_chars"`
	Language           string         `json:"language,omitempty" yaml:"language,omitempty"`
	LanguageConfidence float64        `json:"language_confidence,omitempty" yaml:"language_confidence,omitempty"`
}

// HasKeywords reports whether the ranking is non-empty. Callers render a
// "no keywords" state instead of an empty chart when this is false.
func (d *Dashboard) HasKeywords() bool {
	return len(d.Keywords) > 0
}

// LogEntry is one line of the per-run process log.
type LogEntry struct {
	At      time.Time `json:"at" yaml:"at"`
	Stage   string    `json:"stage" yaml:"stage"`
	Message string    `json:"message" yaml:"message"`
}

// Report is the request-scoped result of one pipeline run. Nothing in it is
// shared across runs; the caller owns display, export and history.
type Report struct {
	RunID      string           `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time        `json:"started_at" yaml:"started_at"`
	Duration   time.Duration    `json:"duration" yaml:"duration"`
	Model      string           `json:"model,omitempty" yaml:"model,omitempty"`
	Documents  []DocumentResult `json:"documents" yaml:"documents"`
	Dashboard  Dashboard        `json:"dashboard" yaml:"dashboard"`
	ProcessLog []LogEntry       `json:"process_log,omitempty" yaml:"process_log,omitempty"`
}

// Succeeded counts documents whose extraction did not fail.
func (r *Report) Succeeded() int {
	n := 0
	for _, d := range r.Documents {
		if d.Status != ExtractionFailed {
			n++
		}
	}
	return n
}

// Failed counts documents whose extraction failed.
func (r *Report) Failed() int {
	return len(r.Documents) - r.Succeeded()
}
