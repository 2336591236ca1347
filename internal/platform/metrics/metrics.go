// Package metrics defines Prometheus instrumentation for the scan pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScansTotal counts finished scan runs, by outcome.
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "product_backend_scans_total",
		Help: "Total number of scan runs, by status",
	}, []string{"status"})

	// StageDuration observes how long each pipeline stage takes.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "product_backend_scan_stage_duration_seconds",
		Help:    "Duration of scan pipeline stages",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"stage"})

	// FramesClassifiedTotal counts frames successfully sent through the classifier.
	FramesClassifiedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_backend_frames_classified_total",
		Help: "Total number of frames classified across all scans",
	})

	// ClassifierFailuresTotal counts per-frame classifier failures.
	// These are recovered locally and never fail a run.
	ClassifierFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_backend_classifier_failures_total",
		Help: "Total number of per-frame classifier call failures",
	})

	// EnhancementsTotal counts studio image generation attempts, by outcome.
	EnhancementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "product_backend_enhancements_total",
		Help: "Total number of studio image generations, by outcome",
	}, []string{"outcome"})

	// ActiveScans tracks the number of scan runs currently in flight.
	ActiveScans = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "product_backend_active_scans",
		Help: "Number of currently running scans",
	})
)
