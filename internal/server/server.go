// Package server exposes the analysis pipeline over HTTP: multipart PDF
// upload, sheet/transcript/article submission, and stored run history.
// Every request is independent; no mutable state is shared across requests.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docsight/models"
	"docsight/pkg/db"
	"docsight/pkg/pipeline"
	"docsight/pkg/summarizer"
)

// Server holds the state for the REST API server.
type Server struct {
	cfg     *models.Config
	logger  *slog.Logger
	pipe    *pipeline.Pipeline
	history *db.DB
	router  *gin.Engine
}

// NewServer creates a Server. history may be nil; run recording and the
// /v1/runs endpoints then report it as unavailable.
func NewServer(cfg *models.Config, logger *slog.Logger, sum summarizer.Summarizer, history *db.DB) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		pipe:    pipeline.New(cfg, logger, sum),
		history: history,
		router:  r,
	}
	s.setupRoutes()
	return s
}

// Run starts the server on the specified address.
func (s *Server) Run(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	return s.router.Run(addr)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.POST("/v1/analyze", s.handleAnalyze)
	s.router.GET("/v1/runs", s.handleRuns)
	s.router.GET("/v1/runs/:id", s.handleRun)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}
