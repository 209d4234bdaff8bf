package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/mohae/deepcopy"
)

// Status is the lifecycle phase of a Controller.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusAborted   Status = "aborted"
)

// StepFunc answers one unit of work given the current state.
type StepFunc[S any] func(ctx context.Context, state S) (StepResult[S], error)

// StepResult is what a step reports back to the controller.
type StepResult[S any] struct {
	NextState S
	// NextSteps are pushed to the front of the queue, in order.
	NextSteps []*Step[S]
	Signal    domain.Signal
	// Passed marks a step that asked nothing. It is not counted and Back rewinds past it.
	Passed bool
}

// Step is a schedulable unit. Steps are compared by identity.
type Step[S any] struct {
	Name string
	Fn   StepFunc[S]
}

// NewStep creates a named step.
func NewStep[S any](name string, fn StepFunc[S]) *Step[S] {
	return &Step[S]{Name: name, Fn: fn}
}

// checkpoint records what the controller looked like right before a step ran.
type checkpoint[S any] struct {
	step   *Step[S]
	state  S
	queue  []*Step[S]
	passed bool
}

// Controller is the execution loop of a wizard: it owns the queue of pending steps,
// the history of executed steps and the running state.
type Controller[S any] struct {
	state   S
	queue   []*Step[S]
	history []checkpoint[S]
	current *Step[S]
	status  Status
	aborted domain.Signal

	clone  func(S) S
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	runID  string
}

// Option configures a Controller.
type Option[S any] func(*Controller[S])

// WithLogger sets a custom structured logger.
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(c *Controller[S]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks[S any](hooks domain.LifecycleHooks) Option[S] {
	return func(c *Controller[S]) {
		c.hooks = hooks
	}
}

// WithClone overrides how state snapshots are taken.
func WithClone[S any](clone func(S) S) Option[S] {
	return func(c *Controller[S]) {
		if clone != nil {
			c.clone = clone
		}
	}
}

// WithRunID tags emitted events.
func WithRunID[S any](id string) Option[S] {
	return func(c *Controller[S]) {
		c.runID = id
	}
}

// NewController creates an idle controller seeded with the initial state.
func NewController[S any](initial S, opts ...Option[S]) *Controller[S] {
	c := &Controller[S]{
		status: StatusIdle,
		clone:  DeepCopy[S],
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = c.clone(initial)
	return c
}

// DeepCopy clones a state with reflection. Unexported struct fields are not copied.
func DeepCopy[S any](s S) S {
	c, ok := deepcopy.Copy(s).(S)
	if !ok {
		return s
	}
	return c
}

// AddStep enqueues a step at the back of the queue.
func (c *Controller[S]) AddStep(step *Step[S]) {
	c.queue = append(c.queue, step)
}

// PushFront schedules steps ahead of everything pending, keeping their order.
func (c *Controller[S]) PushFront(steps ...*Step[S]) {
	if len(steps) == 0 {
		return
	}
	c.queue = append(slices.Clone(steps), c.queue...)
}

// ContainsStep reports whether step is pending, executing or already executed.
func (c *Controller[S]) ContainsStep(step *Step[S]) bool {
	if step == nil {
		return false
	}
	if c.current == step || slices.Contains(c.queue, step) {
		return true
	}
	for _, cp := range c.history {
		if cp.step == step {
			return true
		}
	}
	return false
}

// CurrentStep is the 1-based number of the step being asked.
func (c *Controller[S]) CurrentStep() int {
	return c.Executed() + 1
}

// TotalSteps is the executed steps plus everything still pending, including the current one.
// It is an estimate: the queue can grow while the flow runs.
func (c *Controller[S]) TotalSteps() int {
	total := c.Executed() + len(c.queue)
	if c.current != nil {
		total++
	}
	return total
}

// Executed returns the number of steps answered so far. Passed steps are not counted.
func (c *Controller[S]) Executed() int {
	n := 0
	for _, cp := range c.history {
		if !cp.passed {
			n++
		}
	}
	return n
}

// Status returns the lifecycle phase.
func (c *Controller[S]) Status() Status {
	return c.status
}

// AbortSignal is the signal that aborted the run: SignalBack when the user went back from the
// first step, an exit signal otherwise. It is SignalNone unless Status is StatusAborted.
func (c *Controller[S]) AbortSignal() domain.Signal {
	if c.status != StatusAborted {
		return domain.SignalNone
	}
	return c.aborted
}

// State returns a copy of the running state.
func (c *Controller[S]) State() S {
	return c.clone(c.state)
}

// Run executes queued steps until the queue empties or the flow is aborted.
// It returns nil when aborted. Errors raised by a step propagate unchanged.
func (c *Controller[S]) Run(ctx context.Context) (*S, error) {
	if c.status == StatusRunning {
		return nil, fmt.Errorf("controller: %w", domain.ErrWizardRunning)
	}
	c.status = StatusRunning
	c.logger.DebugContext(ctx, "controller started", "pending", len(c.queue))

	for len(c.queue) > 0 {
		step := c.queue[0]
		cp := checkpoint[S]{step: step, state: c.clone(c.state), queue: slices.Clone(c.queue)}
		c.queue = c.queue[1:]
		c.current = step

		c.emitStepEnter(ctx, step)
		result, err := step.Fn(ctx, c.clone(c.state))
		if err != nil {
			c.current = nil
			c.status = StatusAborted
			return nil, err
		}

		switch sig := result.Signal; {
		case sig.IsExit():
			c.emitSignal(ctx, step, sig)
			c.abort(ctx, sig)
			return nil, nil
		case sig == domain.SignalBack:
			c.emitSignal(ctx, step, sig)
			if !c.rollback(ctx, step) {
				c.abort(ctx, sig)
				return nil, nil
			}
		case sig == domain.SignalRetry:
			c.emitSignal(ctx, step, sig)
			c.current = nil
			c.PushFront(step)
		default:
			cp.passed = result.Passed
			c.history = append(c.history, cp)
			c.state = result.NextState
			c.current = nil
			c.PushFront(result.NextSteps...)
			c.emitStepLeave(ctx, step)
		}
	}

	c.status = StatusCompleted
	c.emitComplete(ctx, false)
	c.logger.DebugContext(ctx, "controller completed", "steps", len(c.history))
	final := c.state
	return &final, nil
}

func (c *Controller[S]) abort(ctx context.Context, sig domain.Signal) {
	c.queue = nil
	c.current = nil
	c.status = StatusAborted
	c.aborted = sig
	c.emitComplete(ctx, true)
	c.logger.DebugContext(ctx, "controller aborted", "steps", len(c.history))
}
