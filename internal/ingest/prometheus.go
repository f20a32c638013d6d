package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes
const (
	outcomeSuccess       = "success"
	outcomeArchiveError  = "archive_error"
	outcomeParseError    = "parse_error"
	outcomeDocumentError = "document_error"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fundboard_ingest_runs_total",
		Help: "Total number of ingestion runs by outcome",
	}, []string{"outcome"})

	extractsFoundTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fundboard_ingest_extracts_found_total",
		Help: "Total number of extracts found in uploaded archives",
	}, []string{"extract"})

	warningsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fundboard_ingest_warnings_total",
		Help: "Total number of non-fatal ingestion findings by warning code",
	}, []string{"code"})

	runDurationHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fundboard_ingest_run_duration_seconds",
		Help:    "Time taken to turn an archive into a merged document",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})
)
