package perf

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MeasureTotal counts Measure calls by outcome: measured, skipped, gone.
	MeasureTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scene_measure_total",
		Help: "Number of node measure passes by outcome",
	}, []string{"outcome"})

	// LayoutTotal counts Layout calls by outcome: laid_out, skipped.
	LayoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scene_layout_total",
		Help: "Number of node layout passes by outcome",
	}, []string{"outcome"})

	// RenderTasksTotal counts paint tasks run by render flushes.
	RenderTasksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scene_render_tasks_total",
		Help: "Number of render tasks executed",
	})

	// HitTestsTotal counts hit test entries by kind (touch, axis) and result.
	HitTestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scene_hit_tests_total",
		Help: "Number of hit test traversals started at a pipeline root",
	}, []string{"kind", "result"})

	// ProxyResetsDeferred counts child proxy resets postponed while the proxy was in use.
	ProxyResetsDeferred = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scene_child_proxy_deferred_resets_total",
		Help: "Number of child proxy resets deferred because the proxy was in use",
	})

	// FlushDuration observes each pipeline flush phase, labeled by phase.
	FlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scene_flush_duration_seconds",
		Help:    "Duration of pipeline flush phases",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	}, []string{"phase"})
)

// Measured records one Measure call with the given outcome.
func Measured(outcome string) {
	MeasureTotal.WithLabelValues(outcome).Inc()
}

// LaidOut records one Layout call with the given outcome.
func LaidOut(outcome string) {
	LayoutTotal.WithLabelValues(outcome).Inc()
}

// HitTest records one root hit test.
func HitTest(kind, result string) {
	HitTestsTotal.WithLabelValues(kind, result).Inc()
}

// ObserveFlush records the duration of a flush phase that began at start.
func ObserveFlush(phase string, start time.Time) {
	FlushDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}
