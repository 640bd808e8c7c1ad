package toon

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	modelFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "finparse",
		Subsystem: "note",
		Name:      "model_failures_total",
		Help:      "Note parses where the model call failed outright.",
	})

	fallbackParses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "finparse",
		Subsystem: "note",
		Name:      "fallback_parses_total",
		Help:      "Note parses served by the deterministic fallback.",
	})
)
