// Package ingest turns raw inputs (PDF byte streams, sheet rows, transcript
// text, article URLs) into extracted Documents. Extraction of each source in
// a batch is independent: one corrupt file never aborts its siblings.
package ingest

import (
	"context"
	"sync"

	"docsight/internal/common"
	"docsight/models"
)

// Source is a single input to a run. Implementations carry their bytes or
// know how to read them; Extract must be safe to call once per run.
type Source interface {
	ID() string
	Type() models.SourceType
	Extract(ctx context.Context) (*models.Document, error)
}

// Result is the per-source outcome of a batch extraction. Exactly one of
// Doc and Err is set.
type Result struct {
	ID  string
	Doc *models.Document
	Err error
}

// ExtractMany extracts every source on a bounded worker pool and returns
// results in input order. Duplicate identifiers are disambiguated with a
// numeric suffix before dispatch, so no source silently overwrites another.
func ExtractMany(ctx context.Context, sources []Source, workers int) []Result {
	if workers < 1 {
		workers = 1
	}
	if workers > len(sources) {
		workers = len(sources)
	}

	ids := assignIdentifiers(sources)

	type job struct {
		idx int
		src Source
	}
	jobs := make(chan job, len(sources))

	results := make([]Result, len(sources))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.idx] = extractOne(ctx, ids[j.idx], j.src)
			}
		}()
	}

	for i, src := range sources {
		jobs <- job{idx: i, src: src}
	}
	close(jobs)
	wg.Wait()

	return results
}

func extractOne(ctx context.Context, id string, src Source) Result {
	doc, err := src.Extract(ctx)
	if err != nil {
		return Result{ID: id, Err: &ExtractionError{ID: id, Reason: err}}
	}
	doc.ID = id
	return Result{ID: id, Doc: doc}
}

// assignIdentifiers sanitizes each source's identifier and disambiguates
// duplicates in input order: "report.pdf", "report.pdf (2)", ...
func assignIdentifiers(sources []Source) []string {
	used := make(map[string]int, len(sources))
	ids := make([]string, len(sources))
	for i, src := range sources {
		ids[i] = common.UniqueIdentifier(common.SanitizeIdentifier(src.ID()), used)
	}
	return ids
}

// AsMap converts batch results to the identifier->Document mapping of the
// successfully extracted sources.
func AsMap(results []Result) map[string]*models.Document {
	docs := make(map[string]*models.Document, len(results))
	for _, r := range results {
		if r.Doc != nil {
			docs[r.ID] = r.Doc
		}
	}
	return docs
}

// Truncate returns a size-bounded excerpt of the document's raw text,
// prepared for a token-limited downstream consumer.
func Truncate(doc *models.Document, limit int) string {
	return doc.Excerpt(limit)
}
