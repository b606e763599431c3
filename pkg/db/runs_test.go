package db

import (
	"path/filepath"
	"testing"
	"time"

	"docsight/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func sampleReport(runID string) *models.Report {
	return &models.Report{
		RunID:     runID,
		StartedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Duration:  2500 * time.Millisecond,
		Model:     "llama-3.3-70b-versatile",
		Documents: []models.DocumentResult{
			{
				ID:         "report.pdf",
				Source:     models.SourcePDF,
				Status:     models.ExtractionSuccess,
				CharCount:  4200,
				PageCount:  12,
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
			Language:       "en",
		},
	}
}

func TestInsertAndGetRun(t *testing.T) {
	db := setupTestDB(t)

	want := sampleReport("run-1")
	if err := db.InsertRun(want); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	got, err := db.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}

	if got.RunID != "run-1" {
		t.Errorf("RunID = %q, want run-1", got.RunID)
	}
	if got.Model != want.Model {
		t.Errorf("Model = %q, want %q", got.Model, want.Model)
	}
	if got.Duration != want.Duration {
		t.Errorf("Duration = %v, want %v", got.Duration, want.Duration)
	}
	if len(got.Documents) != 2 {
		t.Fatalf("got %d documents, want 2", len(got.Documents))
	}
	if got.Documents[0].ID != "report.pdf" || !got.Documents[0].Summarized {
		t.Errorf("Documents[0] = %+v", got.Documents[0])
	}
	if got.Documents[1].ErrorType != "extraction_error" {
		t.Errorf("Documents[1].ErrorType = %q", got.Documents[1].ErrorType)
	}

	d := got.Dashboard
	if d.UniqueKeywords != 48 || d.TotalWords != 900 || d.TotalChars != 4200 {
		t.Errorf("Dashboard = %+v", d)
	}
	if d.Language != "en" {
		t.Errorf("Language = %q, want en", d.Language)
	}
	if len(d.Keywords) != 2 || d.Keywords[0].Word != "storage" || d.Keywords[1].Word != "engine" {
		t.Errorf("Keywords = %v", d.Keywords)
	}
}

func TestGetRunNotFound(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.GetRun("missing"); err == nil {
		t.Fatal("GetRun() = nil error for unknown run")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	db := setupTestDB(t)

	older := sampleReport("run-old")
	older.StartedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := sampleReport("run-new")
	newer.StartedAt = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := db.InsertRun(older); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertRun(newer); err != nil {
		t.Fatal(err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].RunID != "run-new" || runs[1].RunID != "run-old" {
		t.Errorf("order = [%s, %s], want newest first", runs[0].RunID, runs[1].RunID)
	}

	if runs[0].DocCount != 2 || runs[0].SuccessCount != 1 || runs[0].FailedCount != 1 {
		t.Errorf("counts = %+v", runs[0])
	}
}

func TestListRunsLimit(t *testing.T) {
	db := setupTestDB(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := db.InsertRun(sampleReport("run-" + id)); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("got %d runs, want 2", len(runs))
	}
}

func TestDuplicateRunIDRejected(t *testing.T) {
	db := setupTestDB(t)

	if err := db.InsertRun(sampleReport("run-1")); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertRun(sampleReport("run-1")); err == nil {
		t.Fatal("InsertRun() = nil error for duplicate run_id")
	}

	n, err := db.CountRuns()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("CountRuns() = %d, want 1", n)
	}
}
