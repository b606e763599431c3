package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"docsight/models"
	"docsight/pkg/ingest"
)

// analyzeRequest is the JSON body for POST /v1/analyze. Multipart requests
// carry the same fields as form values, with PDFs attached under "files".
type analyzeRequest struct {
	SheetURL      string   `json:"sheet_url"`
	TranscriptURL string   `json:"transcript_url"`
	ArticleURLs   []string `json:"article_urls"`
	Text          string   `json:"text"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	started := time.Now()

	sources, err := s.collectSources(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(sources) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no input sources provided"})
		return
	}

	report, err := s.pipe.Run(c.Request.Context(), sources)
	if err != nil {
		if ingest.IsEmptyInput(err) {
			recordRun("empty_input", time.Since(started))
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": "empty_input",
				"error":  err.Error(),
			})
			return
		}
		s.logger.Error("analysis failed", "error", err)
		recordRun("error", time.Since(started))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if s.history != nil {
		if herr := s.history.InsertRun(report); herr != nil {
			s.logger.Warn("failed to record run", "run_id", report.RunID, "error", herr)
		}
	}

	recordReport(report, time.Since(started))
	c.JSON(http.StatusOK, report)
}

// collectSources builds the source list from either a multipart form or a
// JSON body. Uploaded files are read fully here so extraction can run on
// worker goroutines without touching the request.
func (s *Server) collectSources(c *gin.Context) ([]ingest.Source, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	var sources []ingest.Source

	ct := c.ContentType()
	if strings.HasPrefix(ct, "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		for _, fh := range form.File["files"] {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, err
			}
			sources = append(sources, &ingest.PDFSource{Name: fh.Filename, Data: data})
		}
		if v := c.PostForm("sheet_url"); v != "" {
			sources = append(sources, &ingest.SheetSource{URL: v, Client: client})
		}
		if v := c.PostForm("transcript_url"); v != "" {
			sources = append(sources, &ingest.TranscriptSource{URL: v, Client: client})
		}
		for _, u := range strings.Split(c.PostForm("article_urls"), ",") {
			if u = strings.TrimSpace(u); u != "" {
				sources = append(sources, &ingest.ArticleSource{URL: u, Client: client})
			}
		}
		return sources, nil
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	if req.SheetURL != "" {
		sources = append(sources, &ingest.SheetSource{URL: req.SheetURL, Client: client})
	}
	if req.TranscriptURL != "" {
		sources = append(sources, &ingest.TranscriptSource{URL: req.TranscriptURL, Client: client})
	}
	for _, u := range req.ArticleURLs {
		if u = strings.TrimSpace(u); u != "" {
			sources = append(sources, &ingest.ArticleSource{URL: u, Client: client})
		}
	}
	if req.Text != "" {
		sources = append(sources, &ingest.TextSource{Name: "Pasted_Text", SourceType: models.SourceTranscript, Text: req.Text})
	}
	return sources, nil
}

func (s *Server) handleRuns(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history database is not configured"})
		return
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	runs, err := s.history.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) handleRun(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history database is not configured"})
		return
	}
	report, err := s.history.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
