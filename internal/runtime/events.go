package runtime

import (
	"context"
	"time"

	"github.com/aretw0/stepwise/pkg/domain"
)

func (c *Controller[S]) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, RunID: c.runID}
}

func (c *Controller[S]) emitStepEnter(ctx context.Context, step *Step[S]) {
	c.logger.DebugContext(ctx, "step enter", "step", step.Name, "current", c.CurrentStep(), "total", c.TotalSteps())
	if c.hooks.OnStepEnter == nil {
		return
	}
	c.hooks.OnStepEnter(ctx, &domain.StepEvent{
		EventBase: c.base(domain.EventStepEnter),
		Step:      step.Name,
		Current:   c.CurrentStep(),
		Total:     c.TotalSteps(),
	})
}

func (c *Controller[S]) emitStepLeave(ctx context.Context, step *Step[S]) {
	if c.hooks.OnStepLeave == nil {
		return
	}
	c.hooks.OnStepLeave(ctx, &domain.StepEvent{
		EventBase: c.base(domain.EventStepLeave),
		Step:      step.Name,
		Current:   len(c.history),
		Total:     c.TotalSteps(),
	})
}

func (c *Controller[S]) emitSignal(ctx context.Context, step *Step[S], sig domain.Signal) {
	c.logger.DebugContext(ctx, "step signalled", "step", step.Name, "signal", sig.String())
	if c.hooks.OnSignal == nil {
		return
	}
	c.hooks.OnSignal(ctx, &domain.SignalEvent{
		EventBase: c.base(domain.EventSignal),
		Step:      step.Name,
		Signal:    sig,
	})
}

func (c *Controller[S]) emitComplete(ctx context.Context, aborted bool) {
	if c.hooks.OnComplete == nil {
		return
	}
	c.hooks.OnComplete(ctx, &domain.CompleteEvent{
		EventBase: c.base(domain.EventComplete),
		Aborted:   aborted,
		Steps:     len(c.history),
	})
}
