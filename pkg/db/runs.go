package db

import (
	"database/sql"
	"fmt"
	"time"

	"docsight/models"
)

// RunInfo is the stored summary of one pipeline run.
type RunInfo struct {
	RunID          string
	CreatedAt      time.Time
	DurationMS     int64
	Model          string
	DocCount       int
	SuccessCount   int
	FailedCount    int
	TotalChars     int
	TotalWords     int
	UniqueKeywords int
	Language       string
}

// InsertRun records a completed report: the run row, its documents, and its
// keyword ranking, in one transaction.
func (db *DB) InsertRun(report *models.Report) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (run_id, created_at, duration_ms, model, doc_count, success_count,
			failed_count, total_chars, total_words, unique_keywords, language)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.StartedAt.UTC(),
		report.Duration.Milliseconds(),
		nullString(report.Model),
		len(report.Documents),
		report.Succeeded(),
		report.Failed(),
		report.Dashboard.TotalChars,
		report.Dashboard.TotalWords,
		report.Dashboard.UniqueKeywords,
		nullString(report.Dashboard.Language),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, doc := range report.Documents {
		_, err = tx.Exec(`
			INSERT INTO run_documents (run_id, name, source_type, status, char_count,
				page_count, summarized, error_type, error_message)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			report.RunID,
			doc.ID,
			nullString(string(doc.Source)),
			string(doc.Status),
			doc.CharCount,
			doc.PageCount,
			doc.Summarized,
			nullString(doc.ErrorType),
			nullString(doc.Error),
		)
		if err != nil {
			return fmt.Errorf("failed to insert run document: %w", err)
		}
	}

	for i, kw := range report.Dashboard.Keywords {
		_, err = tx.Exec(`
			INSERT INTO run_keywords (run_id, rank, word, count)
			VALUES (?, ?, ?, ?)`,
			report.RunID, i+1, kw.Word, kw.Count,
		)
		if err != nil {
			return fmt.Errorf("failed to insert run keyword: %w", err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]RunInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT run_id, created_at, duration_ms, COALESCE(model, ''), doc_count,
			success_count, failed_count, total_chars, total_words,
			unique_keywords, COALESCE(language, '')
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var r RunInfo
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.DurationMS, &r.Model, &r.DocCount,
			&r.SuccessCount, &r.FailedCount, &r.TotalChars, &r.TotalWords,
			&r.UniqueKeywords, &r.Language); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one stored run with its documents and keyword snapshot.
// The documents carry no text or summaries; history keeps metadata only.
func (db *DB) GetRun(runID string) (*models.Report, error) {
	var (
		report     models.Report
		durationMS int64
		language   string
	)
	err := db.QueryRow(`
		SELECT run_id, created_at, duration_ms, COALESCE(model, ''), total_chars,
			total_words, unique_keywords, COALESCE(language, '')
		FROM runs WHERE run_id = ?`, runID).Scan(
		&report.RunID, &report.StartedAt, &durationMS, &report.Model,
		&report.Dashboard.TotalChars, &report.Dashboard.TotalWords,
		&report.Dashboard.UniqueKeywords, &language,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %q not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	report.Duration = time.Duration(durationMS) * time.Millisecond
	report.Dashboard.Language = language

	docRows, err := db.Query(`
		SELECT name, COALESCE(source_type, ''), status, char_count, page_count,
			summarized, COALESCE(error_type, ''), COALESCE(error_message, '')
		FROM run_documents WHERE run_id = ? ORDER BY document_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run documents: %w", err)
	}
	defer docRows.Close()

	for docRows.Next() {
		var (
			doc    models.DocumentResult
			source string
			status string
		)
		if err := docRows.Scan(&doc.ID, &source, &status, &doc.CharCount,
			&doc.PageCount, &doc.Summarized, &doc.ErrorType, &doc.Error); err != nil {
			return nil, fmt.Errorf("failed to scan run document: %w", err)
		}
		doc.Source = models.SourceType(source)
		doc.Status = models.ExtractionStatus(status)
		report.Documents = append(report.Documents, doc)
	}
	if err := docRows.Err(); err != nil {
		return nil, err
	}

	kwRows, err := db.Query(`
		SELECT word, count FROM run_keywords
		WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run keywords: %w", err)
	}
	defer kwRows.Close()

	for kwRows.Next() {
		var kw models.KeywordEntry
		if err := kwRows.Scan(&kw.Word, &kw.Count); err != nil {
			return nil, fmt.Errorf("failed to scan run keyword: %w", err)
		}
		report.Dashboard.Keywords = append(report.Dashboard.Keywords, kw)
	}
	return &report, kwRows.Err()
}

// CountRuns returns how many runs are stored.
func (db *DB) CountRuns() (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
