// Package analyze implements the `docsight analyze` command: build sources
// from flags, run the pipeline once, export the report, record history.
package analyze

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"docsight/models"
	"docsight/pkg/db"
	"docsight/pkg/ingest"
	"docsight/pkg/pipeline"
	"docsight/pkg/storage"
	"docsight/pkg/summarizer"
)

// Output is the structured result printed to stdout.
type Output struct {
	Status     string         `json:"status" yaml:"status"`
	Report     *models.Report `json:"report,omitempty" yaml:"report,omitempty"`
	ReportPath string         `json:"report_path,omitempty" yaml:"report_path,omitempty"`
	CSVPath    string         `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
	Error      string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Action runs one analysis cycle from CLI flags.
func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	applyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	sources, err := buildSources(c)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  docsight analyze --pdf report.pdf --pdf appendix.pdf`)
		fmt.Fprintln(os.Stderr, `  docsight analyze --sheet-url "https://docs.google.com/spreadsheets/d/..."`)
		fmt.Fprintln(os.Stderr, `  docsight analyze --transcript talk.txt`)
		fmt.Fprintln(os.Stderr, `  docsight analyze --article-urls "https://example.com/post"`)
		os.Exit(1)
	}

	var sum summarizer.Summarizer
	if !c.Bool("no-summary") {
		sum, err = summarizer.FromConfig(c.Context, cfg.Summarizer)
		if err != nil {
			logger.Error("failed to build summarizer", "error", err)
			os.Exit(2)
		}
		if sum == nil {
			logger.Info("no summarizer API key found, summaries disabled")
		}
	}

	p := pipeline.New(cfg, logger, sum)
	report, runErr := p.Run(c.Context, sources)
	if runErr != nil {
		if ingest.IsEmptyInput(runErr) {
			printOutput(c, Output{Status: "empty_input", Error: runErr.Error()})
			os.Exit(2)
		}
		logger.Error("pipeline failed", "error", runErr)
		os.Exit(2)
	}

	out := Output{Report: report}
	switch {
	case report.Failed() == len(report.Documents):
		out.Status = "failed"
	case report.Failed() > 0:
		out.Status = "partial_failure"
	default:
		out.Status = "success"
	}

	if !c.Bool("no-export") {
		store, err := storage.New(cfg.ReportsDir)
		if err != nil {
			logger.Error("failed to prepare reports directory", "error", err)
		} else {
			if path, err := store.WriteReport(report); err != nil {
				logger.Error("failed to export report", "error", err)
			} else {
				out.ReportPath = path
			}
			if path, err := store.WriteKeywordCSV(report); err != nil {
				logger.Error("failed to export keyword CSV", "error", err)
			} else {
				out.CSVPath = path
			}
		}
	}

	if !c.Bool("no-history") {
		recordHistory(logger, c.String("db"), report)
	}

	printOutput(c, out)

	if report.Failed() == len(report.Documents) {
		os.Exit(2)
	}
	if report.Failed() > 0 {
		os.Exit(1)
	}
	return nil
}

// applyFlags overlays CLI flags on the file/default config.
func applyFlags(c *cli.Context, cfg *models.Config) {
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("top-n") {
		cfg.Analyzer.TopN = c.Int("top-n")
	}
	if c.IsSet("min-token-length") {
		cfg.Analyzer.MinTokenLength = c.Int("min-token-length")
	}
	if c.IsSet("max-excerpt-chars") {
		limit := c.Int("max-excerpt-chars")
		cfg.ExcerptLimits = models.ExcerptLimits{
			PDF: limit, Sheet: limit, Transcript: limit, Article: limit,
		}
	}
	if c.IsSet("model") {
		cfg.Summarizer.Model = c.String("model")
	}
	if c.IsSet("provider") {
		cfg.Summarizer.Provider = c.String("provider")
	}
	if c.IsSet("reports-dir") {
		cfg.ReportsDir = c.String("reports-dir")
	}
}

// buildSources assembles the batch from flags. PDFs are read up front so a
// missing file fails fast before any worker starts.
func buildSources(c *cli.Context) ([]ingest.Source, error) {
	var sources []ingest.Source

	for _, path := range c.StringSlice("pdf") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read PDF %q: %w", path, err)
		}
		sources = append(sources, &ingest.PDFSource{Name: path, Data: data})
	}

	if sheetURL := c.String("sheet-url"); sheetURL != "" {
		sources = append(sources, &ingest.SheetSource{URL: sheetURL})
	}

	if transcript := c.String("transcript"); transcript != "" {
		if strings.HasPrefix(transcript, "http://") || strings.HasPrefix(transcript, "https://") {
			sources = append(sources, &ingest.TranscriptSource{URL: transcript})
		} else {
			data, err := os.ReadFile(transcript)
			if err != nil {
				return nil, fmt.Errorf("cannot read transcript %q: %w", transcript, err)
			}
			sources = append(sources, &ingest.TextSource{
				Name:       transcript,
				SourceType: models.SourceTranscript,
				Text:       string(data),
			})
		}
	}

	if urls := c.String("article-urls"); urls != "" {
		for _, u := range strings.Split(urls, ",") {
			u = strings.TrimSpace(u)
			if u != "" {
				sources = append(sources, &ingest.ArticleSource{URL: u})
			}
		}
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources provided")
	}
	return sources, nil
}

// recordHistory stores the run; history failures never fail the run itself.
func recordHistory(logger *slog.Logger, dbPath string, report *models.Report) {
	database, err := db.Open(dbPath)
	if err != nil {
		logger.Error("failed to open history database", "error", err)
		return
	}
	defer database.Close()

	if err := database.InsertRun(report); err != nil {
		logger.Error("failed to record run history", "error", err)
	}
}

func printOutput(c *cli.Context, out Output) {
	var (
		data []byte
		err  error
	)
	if strings.ToLower(c.String("format")) == "yaml" {
		data, err = yaml.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to marshal output:", err)
		return
	}
	fmt.Println(string(data))
}
