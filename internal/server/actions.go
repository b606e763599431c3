package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"docsight/models"
	"docsight/pkg/db"
	"docsight/pkg/summarizer"
)

// Action starts the HTTP API server from CLI flags.
func Action(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("quiet") {
		level = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if addr := c.String("addr"); addr != "" {
		cfg.ListenAddr = addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	history, err := db.Open(c.String("db"))
	if err != nil {
		logger.Warn("history database unavailable", "error", err)
		history = nil
	} else {
		defer history.Close()
	}

	sum, err := summarizer.FromConfig(c.Context, cfg.Summarizer)
	if err != nil {
		return fmt.Errorf("configuring summarizer: %w", err)
	}
	if sum == nil {
		logger.Info("no summarizer configured, summaries disabled")
	}

	srv := NewServer(cfg, logger, sum, history)
	return srv.Run(cfg.ListenAddr)
}
