// Package pipeline runs one full analysis cycle: extract every source,
// aggregate keyword frequencies over the combined raw text, summarize each
// document's excerpt, and hand back a request-scoped Report. Nothing here
// survives the run; the caller owns display, export and history.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"docsight/models"
	"docsight/pkg/analytics"
	"docsight/pkg/ingest"
	"docsight/pkg/mapreduce"
	"docsight/pkg/summarizer"
)

// languageSampleChars bounds the text handed to language detection; the
// full corpus adds nothing past a few thousand characters.
const languageSampleChars = 5000

// Pipeline holds the per-invocation collaborators. It carries no state
// across runs, so a single Pipeline may serve concurrent requests.
type Pipeline struct {
	cfg        *models.Config
	logger     *slog.Logger
	summarizer summarizer.Summarizer
}

// New assembles a pipeline. summarizer may be nil; runs then produce the
// dashboard without summaries.
func New(cfg *models.Config, logger *slog.Logger, sum summarizer.Summarizer) *Pipeline {
	return &Pipeline{cfg: cfg, logger: logger, summarizer: sum}
}

// Run executes the workflow to completion for one batch of sources.
// Per-source failures are reported per document and never abort siblings.
// It returns an EmptyInputError when the combined extracted text is too
// short to analyze; no ranking or summaries are produced in that case.
func (p *Pipeline) Run(ctx context.Context, sources []ingest.Source) (*models.Report, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources provided")
	}

	report := &models.Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	if p.summarizer != nil {
		report.Model = p.summarizer.Model()
	}

	p.log(report, "ingest", fmt.Sprintf("extracting %d source(s) with %d worker(s)", len(sources), p.cfg.Workers))
	results := ingest.ExtractMany(ctx, sources, p.cfg.Workers)

	var docs []*models.Document
	totalChars := 0
	for _, r := range results {
		dr := models.DocumentResult{ID: r.ID}
		if r.Err != nil {
			p.logger.Error("extraction failed", "id", r.ID, "error", r.Err)
			dr.Status = models.ExtractionFailed
			dr.Error = r.Err.Error()
			dr.ErrorType = "extraction_error"
		} else {
			dr.Source = r.Doc.Source
			dr.Status = r.Doc.Status
			dr.CharCount = r.Doc.CharCount()
			dr.PageCount = r.Doc.PageCount
			docs = append(docs, r.Doc)
			totalChars += dr.CharCount
		}
		report.Documents = append(report.Documents, dr)
	}
	p.log(report, "ingest", fmt.Sprintf("%d/%d source(s) extracted, %d chars", len(docs), len(sources), totalChars))

	if totalChars < p.cfg.MinUsableChars {
		return nil, &ingest.EmptyInputError{Chars: totalChars, Min: p.cfg.MinUsableChars}
	}

	// Keyword analysis always runs over full raw text, never the excerpts,
	// and only in aggregate across the whole batch.
	p.log(report, "analyze", "computing aggregate keyword frequencies")
	analyzer := analytics.New(nil, p.cfg.Analyzer.MinTokenLength)

	intermediate := make([]*analytics.FreqMap, 0, len(docs))
	totalWords := 0
	for _, doc := range docs {
		totalWords += len(analytics.Tokenize(doc.RawText))
		intermediate = append(intermediate, mapreduce.Map(doc.RawText, analyzer))
	}
	aggregate := mapreduce.Reduce(intermediate)

	report.Dashboard = models.Dashboard{
		Keywords:       aggregate.Top(p.cfg.Analyzer.TopN),
		UniqueKeywords: aggregate.Unique(),
		TotalWords:     totalWords,
		TotalChars:     totalChars,
	}

	sample := combinedSample(docs, languageSampleChars)
	report.Dashboard.Language, report.Dashboard.LanguageConfidence = analytics.DetectLanguage(sample)
	p.log(report, "analyze", fmt.Sprintf("%d unique keywords, %d words", report.Dashboard.UniqueKeywords, totalWords))

	p.summarize(ctx, report, docs)

	report.Duration = time.Since(report.StartedAt)
	p.log(report, "done", fmt.Sprintf("workflow complete in %.2fs", report.Duration.Seconds()))
	return report, nil
}

// summarize sends each document's excerpt to the summarizer. A failed
// summary is recorded on its document and does not affect the others.
func (p *Pipeline) summarize(ctx context.Context, report *models.Report, docs []*models.Document) {
	if p.summarizer == nil {
		p.log(report, "summarize", "no summarizer configured, skipping")
		return
	}

	byID := make(map[string]*models.Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}

	for i := range report.Documents {
		dr := &report.Documents[i]
		doc, ok := byID[dr.ID]
		if !ok {
			continue
		}

		limit := p.cfg.ExcerptLimitFor(doc.Source)
		p.log(report, "summarize", fmt.Sprintf("summarizing %q (%d char excerpt budget)", dr.ID, limit))

		summary, err := p.summarizer.Summarize(ctx, doc.Excerpt(limit))
		if err != nil {
			p.logger.Error("summarization failed", "id", dr.ID, "error", err)
			dr.Error = err.Error()
			dr.ErrorType = "summarize_error"
			continue
		}
		dr.Summary = summary
		dr.Summarized = true
	}
}

// combinedSample concatenates document text up to limit characters.
func combinedSample(docs []*models.Document, limit int) string {
	var sb []byte
	for _, doc := range docs {
		if len(sb) >= limit {
			break
		}
		sb = append(sb, models.TruncateChars(doc.RawText, limit-len(sb))...)
		sb = append(sb, '\n')
	}
	return string(sb)
}

func (p *Pipeline) log(report *models.Report, stage, msg string) {
	p.logger.Info(msg, "stage", stage)
	report.ProcessLog = append(report.ProcessLog, models.LogEntry{
		At:      time.Now(),
		Stage:   stage,
		Message: msg,
	})
}
