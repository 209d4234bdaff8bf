package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/stepwise/pkg/domain"
)

// LogHooks writes lifecycle events to logger at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "Enter Step", "run_id", e.RunID, "step", e.Step, "current", e.Current, "total", e.Total)
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "Leave Step", "run_id", e.RunID, "step", e.Step)
		},
		OnSignal: func(ctx context.Context, e *domain.SignalEvent) {
			logger.DebugContext(ctx, "Signal", "run_id", e.RunID, "step", e.Step, "signal", e.Signal.String())
		},
		OnComplete: func(ctx context.Context, e *domain.CompleteEvent) {
			logger.DebugContext(ctx, "Run Finished", "run_id", e.RunID, "aborted", e.Aborted, "steps", e.Steps)
		},
	}
}
