package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"

	"docsight/internal/common"
	"docsight/models"
)

// SheetIdentifier is the document identifier used for spreadsheet input.
const SheetIdentifier = "Google_Sheet_Data"

// SheetSource reads a public Google Sheet through its CSV export endpoint
// and renders the rows as one flat tab-separated text blob.
type SheetSource struct {
	URL    string
	Client *http.Client
}

func (s *SheetSource) ID() string              { return SheetIdentifier }
func (s *SheetSource) Type() models.SourceType { return models.SourceSheet }

func (s *SheetSource) Extract(ctx context.Context) (*models.Document, error) {
	exportURL, err := common.SheetCSVURL(s.URL)
	if err != nil {
		return nil, err
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid sheet URL: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch sheet, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet response: %w", err)
	}

	text, rows, err := RenderRows(body)
	if err != nil {
		return nil, err
	}

	status := models.ExtractionSuccess
	if rows == 0 {
		status = models.ExtractionPartial
	}

	return &models.Document{
		Source:     models.SourceSheet,
		RawText:    text,
		ByteLength: int64(len(body)),
		Status:     status,
	}, nil
}

// RenderRows converts CSV bytes to a flat text blob, one tab-separated line
// per row. Rows that fail to parse are skipped; they contribute no text.
// Returns the rendered text and the number of rows that contributed.
func RenderRows(csvData []byte) (string, int, error) {
	reader := csv.NewReader(strings.NewReader(string(csvData)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var sb strings.Builder
	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Row-level gaps degrade gracefully.
			continue
		}
		line := strings.TrimSpace(strings.Join(record, "\t"))
		if line == "" {
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		rows++
	}

	return sb.String(), rows, nil
}
