package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"docsight/internal/analyze"
	"docsight/internal/history"
	"docsight/internal/server"
)

func main() {
	// API keys may live in a local .env file. A missing file is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "docsight",
		Usage: "extract text from PDFs, sheets, transcripts and articles, then rank keywords and summarize",
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "run the extraction and keyword pipeline over one or more sources",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "pdf", Usage: "path to a PDF file (repeatable)"},
					&cli.StringFlag{Name: "sheet-url", Usage: "Google Sheets URL to ingest as tabular text"},
					&cli.StringFlag{Name: "transcript", Usage: "transcript file path or URL"},
					&cli.StringFlag{Name: "article-urls", Usage: "comma separated article URLs"},
					&cli.IntFlag{Name: "workers", Usage: "number of concurrent extraction workers"},
					&cli.IntFlag{Name: "top-n", Usage: "number of top keywords to report"},
					&cli.IntFlag{Name: "min-token-length", Usage: "drop tokens at or below this length"},
					&cli.IntFlag{Name: "max-excerpt-chars", Usage: "override the excerpt budget for all source types"},
					&cli.StringFlag{Name: "model", Usage: "summarization model name"},
					&cli.StringFlag{Name: "provider", Usage: "summarization provider (groq or gemini)"},
					&cli.BoolFlag{Name: "no-summary", Usage: "skip per-document summarization"},
					&cli.BoolFlag{Name: "no-export", Usage: "skip writing report and keyword files"},
					&cli.BoolFlag{Name: "no-history", Usage: "skip recording the run in the history database"},
					&cli.StringFlag{Name: "format", Value: "json", Usage: "output format: json or yaml"},
					&cli.StringFlag{Name: "reports-dir", Usage: "directory for exported report files"},
					&cli.StringFlag{Name: "config", Usage: "path to a YAML config file"},
					&cli.StringFlag{Name: "db", Usage: "path to the history database"},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "suppress progress logging"},
				},
				Action: analyze.Action,
			},
			{
				Name:  "serve",
				Usage: "start the HTTP API server",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address, for example :8080"},
					&cli.StringFlag{Name: "config", Usage: "path to a YAML config file"},
					&cli.StringFlag{Name: "db", Usage: "path to the history database"},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "suppress progress logging"},
				},
				Action: server.Action,
			},
			{
				Name:  "history",
				Usage: "inspect previously recorded runs",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "list recent runs",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db", Usage: "path to the history database"},
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum number of runs to list"},
						},
						Action: history.ListAction,
					},
					{
						Name:      "show",
						Usage:     "show a stored run as JSON",
						ArgsUsage: "<run-id>",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db", Usage: "path to the history database"},
						},
						Action: history.ShowAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
