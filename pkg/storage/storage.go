// Package storage handles report export: the plain-text analysis report and
// the two-column keyword CSV. Persistence is the caller's concern; the
// pipeline itself never writes files.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"docsight/models"
)

// Storage writes run artifacts under a base directory.
type Storage struct {
	Dir string
}

// New returns a Storage rooted at dir, creating it if needed.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}
	return &Storage{Dir: dir}, nil
}

// timestamp formats t the way report filenames always have.
func timestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// WriteReport renders the full run report to reports/Analysis_<ts>.txt and
// returns the path.
func (s *Storage) WriteReport(report *models.Report) (string, error) {
	path := filepath.Join(s.Dir, fmt.Sprintf("Analysis_%s.txt", timestamp(report.StartedAt)))
	if err := os.WriteFile(path, []byte(RenderReport(report)), 0o644); err != nil {
		return "", fmt.Errorf("error saving report: %w", err)
	}
	return path, nil
}

// WriteKeywordCSV exports the keyword ranking as word,frequency rows and
// returns the path.
func (s *Storage) WriteKeywordCSV(report *models.Report) (string, error) {
	path := filepath.Join(s.Dir, fmt.Sprintf("Keywords_%s.csv", timestamp(report.StartedAt)))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating keyword export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"word", "frequency"}); err != nil {
		return "", fmt.Errorf("error writing keyword export: %w", err)
	}
	for _, e := range report.Dashboard.Keywords {
		if err := w.Write([]string{e.Word, strconv.Itoa(e.Count)}); err != nil {
			return "", fmt.Errorf("error writing keyword export: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error writing keyword export: %w", err)
	}
	return path, nil
}

// RenderReport formats a run report as plain text for export and display.
func RenderReport(report *models.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "AI Analysis Report\n")
	fmt.Fprintf(&sb, "Run: %s\n", report.RunID)
	fmt.Fprintf(&sb, "Generated: %s\n", report.StartedAt.Format(time.RFC3339))
	if report.Model != "" {
		fmt.Fprintf(&sb, "Model: %s\n", report.Model)
	}
	sb.WriteString("\n")

	for _, doc := range report.Documents {
		fmt.Fprintf(&sb, "== %s (%s) ==\n", doc.ID, doc.Status)
		switch {
		case doc.Error != "":
			fmt.Fprintf(&sb, "Error: %s\n", doc.Error)
		case doc.Summary != "":
			sb.WriteString(doc.Summary)
			sb.WriteString("\n")
		default:
			fmt.Fprintf(&sb, "%d characters extracted (no summary generated)\n", doc.CharCount)
		}
		sb.WriteString("\n")
	}

	d := report.Dashboard
	sb.WriteString("== Dashboard ==\n")
	fmt.Fprintf(&sb, "Characters analyzed: %d\n", d.TotalChars)
	fmt.Fprintf(&sb, "Words analyzed: %d\n", d.TotalWords)
	fmt.Fprintf(&sb, "Unique keywords: %d\n", d.UniqueKeywords)
	if d.Language != "" {
		fmt.Fprintf(&sb, "Language: %s (%.0f%%)\n", d.Language, d.LanguageConfidence*100)
	}
	if d.HasKeywords() {
		sb.WriteString("Top keywords:\n")
		for i, e := range d.Keywords {
			fmt.Fprintf(&sb, "%d. %s: %d\n", i+1, e.Word, e.Count)
		}
	} else {
		sb.WriteString("No keywords found.\n")
	}

	return sb.String()
}
