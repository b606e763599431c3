package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"docsight/models"
)

// TranscriptSource reads a video transcript published as plain text at a URL.
// Transcripts already materialized as strings go through TextSource instead.
type TranscriptSource struct {
	Name   string
	URL    string
	Client *http.Client
}

func (s *TranscriptSource) ID() string {
	if s.Name != "" {
		return s.Name
	}
	return "Video_Transcript"
}

func (s *TranscriptSource) Type() models.SourceType { return models.SourceTranscript }

func (s *TranscriptSource) Extract(ctx context.Context) (*models.Document, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid transcript URL: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch transcript, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript body: %w", err)
	}

	return &models.Document{
		Source:     models.SourceTranscript,
		RawText:    string(body),
		ByteLength: int64(len(body)),
		Status:     models.ExtractionSuccess,
	}, nil
}
