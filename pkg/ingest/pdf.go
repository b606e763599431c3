package ingest

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"docsight/models"
)

// PDFSource extracts text from an in-memory PDF, typically an upload.
type PDFSource struct {
	Name string
	Data []byte
}

func (s *PDFSource) ID() string              { return s.Name }
func (s *PDFSource) Type() models.SourceType { return models.SourcePDF }

// Extract pulls plain text from every page and joins pages with a newline.
// Pages that yield no text (scanned images, extraction failures) are skipped;
// only a document that cannot be opened at all is an error.
func (s *PDFSource) Extract(ctx context.Context) (doc *models.Document, err error) {
	// The pdf package panics on some malformed files. A corrupt upload must
	// fail as an error, not take down the worker.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(s.Data), int64(len(s.Data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	total := reader.NumPage()
	pages := make([]string, 0, total)
	emptyPages := 0

	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			emptyPages++
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			// Page-level failure contributes no text, never aborts.
			emptyPages++
			continue
		}
		pages = append(pages, text)
	}

	status := models.ExtractionSuccess
	if emptyPages > 0 {
		status = models.ExtractionPartial
	}

	return &models.Document{
		Source:     models.SourcePDF,
		RawText:    strings.Join(pages, "\n"),
		ByteLength: int64(len(s.Data)),
		PageCount:  total,
		Status:     status,
	}, nil
}
