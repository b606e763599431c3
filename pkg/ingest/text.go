package ingest

import (
	"context"

	"docsight/models"
)

// TextSource wraps text that the caller already fetched: a rendered sheet,
// a transcript, or any flat string. The core performs no network I/O for it.
type TextSource struct {
	Name       string
	SourceType models.SourceType
	Text       string
}

func (s *TextSource) ID() string              { return s.Name }
func (s *TextSource) Type() models.SourceType { return s.SourceType }

func (s *TextSource) Extract(ctx context.Context) (*models.Document, error) {
	return &models.Document{
		Source:     s.SourceType,
		RawText:    s.Text,
		ByteLength: int64(len(s.Text)),
		Status:     models.ExtractionSuccess,
	}, nil
}
