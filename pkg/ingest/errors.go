package ingest

import (
	"errors"
	"fmt"
)

// ErrExtraction marks failures where a whole source could not be opened or
// parsed. Page-level gaps are not extraction errors; they contribute no text.
var ErrExtraction = errors.New("extraction failed")

// ExtractionError reports that a source could not be opened/parsed at all.
// It is terminal for that source within the current run; siblings continue.
type ExtractionError struct {
	ID     string
	Reason error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %q: %v", e.ID, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return ErrExtraction }

// EmptyInputError reports that the combined raw text is below the minimum
// usable length. The workflow refuses to run keyword analysis or
// summarization on it rather than producing a misleading empty ranking.
type EmptyInputError struct {
	Chars int
	Min   int
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("not enough data to analyze: %d chars, need at least %d", e.Chars, e.Min)
}

// IsEmptyInput reports whether err is an EmptyInputError.
func IsEmptyInput(err error) bool {
	var e *EmptyInputError
	return errors.As(err, &e)
}
