package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"docsight/models"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docsight_runs_total",
		Help: "Total analysis runs by outcome.",
	}, []string{"outcome"})

	documentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docsight_documents_total",
		Help: "Total documents processed by source type and status.",
	}, []string{"source", "status"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "docsight_run_duration_seconds",
		Help:    "End to end analysis run duration.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)

func recordRun(outcome string, elapsed time.Duration) {
	runsTotal.WithLabelValues(outcome).Inc()
	runDuration.Observe(elapsed.Seconds())
}

func recordReport(report *models.Report, elapsed time.Duration) {
	outcome := "success"
	if report.Failed() > 0 {
		outcome = "partial"
		if report.Succeeded() == 0 {
			outcome = "failed"
		}
	}
	runsTotal.WithLabelValues(outcome).Inc()
	runDuration.Observe(elapsed.Seconds())
	for _, doc := range report.Documents {
		documentsTotal.WithLabelValues(string(doc.Source), string(doc.Status)).Inc()
	}
}
