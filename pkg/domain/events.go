package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter EventType = "step_enter"
	EventStepLeave EventType = "step_leave"
	EventSignal    EventType = "signal"
	EventComplete  EventType = "complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// StepEvent represents entry into or exit from a step.
type StepEvent struct {
	EventBase
	Step    string `json:"step"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
}

// SignalEvent is emitted when a step answers with a control signal.
type SignalEvent struct {
	EventBase
	Step   string `json:"step"`
	Signal Signal `json:"signal"`
}

// CompleteEvent is emitted when a run ends.
type CompleteEvent struct {
	EventBase
	Aborted bool `json:"aborted"`
	Steps   int  `json:"steps"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStepEnter func(context.Context, *StepEvent)
	OnStepLeave func(context.Context, *StepEvent)
	OnSignal    func(context.Context, *SignalEvent)
	OnComplete  func(context.Context, *CompleteEvent)
}

// Merge combines hooks so that both sets are invoked, h first.
func (h LifecycleHooks) Merge(o LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStepEnter: chain(h.OnStepEnter, o.OnStepEnter),
		OnStepLeave: chain(h.OnStepLeave, o.OnStepLeave),
		OnSignal:    chain(h.OnSignal, o.OnSignal),
		OnComplete:  chain(h.OnComplete, o.OnComplete),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
