package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"docsight/models"
)

// ArticleSource extracts the readable body of a web article. Readability
// isolates the main content; the clean HTML is then flattened to text
// block by block.
type ArticleSource struct {
	URL    string
	Client *http.Client
}

func (s *ArticleSource) ID() string              { return s.URL }
func (s *ArticleSource) Type() models.SourceType { return models.SourceArticle }

func (s *ArticleSource) Extract(ctx context.Context) (*models.Document, error) {
	parsedURL, err := url.Parse(s.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid article URL: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid article URL: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch article, status code: %d", resp.StatusCode)
	}

	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read article body: %w", err)
	}

	text, err := articleText(string(html), parsedURL)
	if err != nil {
		return nil, err
	}

	status := models.ExtractionSuccess
	if strings.TrimSpace(text) == "" {
		status = models.ExtractionPartial
	}

	return &models.Document{
		Source:     models.SourceArticle,
		RawText:    text,
		ByteLength: int64(len(html)),
		Status:     status,
	}, nil
}

// articleText runs readability over raw HTML and flattens the distilled
// content blocks to plain text, one block per line.
func articleText(html string, pageURL *url.URL) (string, error) {
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to distill article: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return "", fmt.Errorf("failed to parse distilled content: %w", err)
	}

	var sb strings.Builder
	if article.Title != "" {
		sb.WriteString(article.Title)
		sb.WriteString("\n")
	}
	doc.Find("h1,h2,h3,h4,p,li,td").Each(func(i int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	})

	return sb.String(), nil
}
