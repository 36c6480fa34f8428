package scene

import (
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// PipelineOption is a functional option for configuring a FramePipeline.
type PipelineOption func(*FramePipeline) error

// WithRootSize sets the size root nodes are measured against.
// Negative dimensions are rejected.
func WithRootSize(size SizeF) PipelineOption {
	return func(p *FramePipeline) error {
		if size.Width < 0 || size.Height < 0 {
			return fmt.Errorf("root size must not be negative, got %vx%v", size.Width, size.Height)
		}
		p.rootSize = size
		return nil
	}
}

// WithRenderWorkers sets how many paint tasks run concurrently.
// Default is 1. Valid range is 1-64.
func WithRenderWorkers(n int) PipelineOption {
	return func(p *FramePipeline) error {
		if n < 1 {
			return fmt.Errorf("render workers must be at least 1")
		}
		if n > 64 {
			return fmt.Errorf("render workers cannot exceed 64")
		}
		p.workers = n
		return nil
	}
}

// WithVsyncClock replaces the clock frames are stamped with.
func WithVsyncClock(clock func() time.Time) PipelineOption {
	return func(p *FramePipeline) error {
		if clock == nil {
			return fmt.Errorf("vsync clock must not be nil")
		}
		p.clock = clock
		return nil
	}
}

// WithLogger sets the logger for pipeline diagnostics. Node level
// diagnostics keep using the debug logger.
func WithLogger(l *slog.Logger) PipelineOption {
	return func(p *FramePipeline) error {
		if l == nil {
			return fmt.Errorf("logger must not be nil")
		}
		p.logger = l
		return nil
	}
}

// WithTracerProvider sets the provider flush and dispatch spans are
// created with. Default is the global otel provider.
func WithTracerProvider(tp trace.TracerProvider) PipelineOption {
	return func(p *FramePipeline) error {
		if tp == nil {
			return fmt.Errorf("tracer provider must not be nil")
		}
		p.tracer = tp.Tracer("scene")
		return nil
	}
}
