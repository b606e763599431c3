package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"docsight/models"
)

func sampleReport() *models.Report {
	return &models.Report{
		RunID:     "run-42",
		StartedAt: time.Date(2026, 3, 14, 9, 30, 5, 0, time.UTC),
		Model:     "llama-3.3-70b-versatile",
		Documents: []models.DocumentResult{
			{
				ID:         "report.pdf",
				Source:     models.SourcePDF,
				Status:     models.ExtractionSuccess,
				CharCount:  4200,
				Summary:    "The document describes a storage engine.",
				Summarized: true,
			},
			{
				ID:        "broken.pdf",
				Status:    models.ExtractionFailed,
				Error:     "failed to open PDF: bad xref",
				ErrorType: "extraction_error",
			},
		},
		Dashboard: models.Dashboard{
			Keywords: []models.KeywordEntry{
				{Word: "storage", Count: 12},
				{Word: "engine", Count: 7},
			},
			UniqueKeywords: 48,
			TotalWords:     900,
			TotalChars:     4200,
		},
	}
}

func TestWriteReport(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path, err := s.WriteReport(sampleReport())
	if err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}
	if filepath.Base(path) != "Analysis_20260314_093005.txt" {
		t.Errorf("filename = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		"run-42",
		"report.pdf",
		"The document describes a storage engine.",
		"failed to open PDF: bad xref",
		"1. storage: 12",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteKeywordCSV(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path, err := s.WriteKeywordCSV(sampleReport())
	if err != nil {
		t.Fatalf("WriteKeywordCSV() error = %v", err)
	}
	if filepath.Base(path) != "Keywords_20260314_093005.csv" {
		t.Errorf("filename = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "word,frequency\nstorage,12\nengine,7\n"
	if string(data) != want {
		t.Errorf("csv = %q, want %q", string(data), want)
	}
}

func TestRenderReportNoKeywords(t *testing.T) {
	report := sampleReport()
	report.Dashboard.Keywords = nil

	text := RenderReport(report)
	if !strings.Contains(text, "No keywords found.") {
		t.Errorf("empty ranking state missing from report:\n%s", text)
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	if _, err := New(dir); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}
