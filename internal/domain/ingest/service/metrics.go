package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "finparse",
		Subsystem: "ingest",
		Name:      "files_total",
		Help:      "Documents processed, labeled by detected format and outcome.",
	}, []string{"format", "outcome"})

	extractionFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "finparse",
		Subsystem: "ingest",
		Name:      "fallbacks_total",
		Help:      "Times a tabular extraction recovered nothing and fell back to the free-text sweep.",
	})

	ocrFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "finparse",
		Subsystem: "ingest",
		Name:      "ocr_failures_total",
		Help:      "OCR acquisitions or recognitions that failed.",
	})
)
