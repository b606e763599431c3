package models

// SourceType identifies where a document's text came from. The excerpt budget
// applied before summarization differs by source type.
type SourceType string

const (
	SourcePDF        SourceType = "pdf"
	SourceSheet      SourceType = "sheet"
	SourceTranscript SourceType = "transcript"
	SourceArticle    SourceType = "article"
)

// ExtractionStatus reports how extraction went for a single document.
type ExtractionStatus string

const (
	// ExtractionSuccess means every page/row yielded text.
	ExtractionSuccess ExtractionStatus = "success"
	// ExtractionPartial means the source opened but some pages yielded no
	// text. Partial extraction is not an error.
	ExtractionPartial ExtractionStatus = "partial"
	// ExtractionFailed means the source could not be opened or parsed at all.
	ExtractionFailed ExtractionStatus = "failed"
)

// Document is the unit the pipeline works on: one extracted source.
// It is immutable once extraction finishes and lives only for the request.
type Document struct {
	ID         string           `json:"id" yaml:"id"`
	Source     SourceType       `json:"source" yaml:"source"`
	RawText    string           `json:"-" yaml:"-"`
	ByteLength int64            `json:"byte_length" yaml:"byte_length"`
	PageCount  int              `json:"page_count,omitempty" yaml:"page_count,omitempty"`
	Status     ExtractionStatus `json:"status" yaml:"status"`
}

// CharCount returns the number of characters (runes) of extracted text.
func (d *Document) CharCount() int {
	return len([]rune(d.RawText))
}

// Excerpt returns a prefix of the document's text bounded by limit
// characters. Truncation is character-level, not word-boundary-aware.
// Text shorter than the limit is returned unchanged.
func (d *Document) Excerpt(limit int) string {
	return TruncateChars(d.RawText, limit)
}

// TruncateChars returns the first limit characters of s. It is idempotent:
// truncating an already-truncated string with the same limit is a no-op.
func TruncateChars(s string, limit int) string {
	if limit < 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
