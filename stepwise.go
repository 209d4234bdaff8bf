package stepwise

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/stepwise/internal/runtime"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/google/uuid"
)

// ExitPrompterProvider builds the prompt that confirms leaving the flow.
type ExitPrompterProvider[S any] func(state S) ports.Prompter[bool]

// Wizard orchestrates a dynamic sequence of prompts into one state object.
type Wizard[S any] struct {
	form     ports.Form[S]
	bindings []*binding[S]
	caches   map[domain.Key]*domain.StepCache

	initial         S
	implicit        *S
	exitPrompter    ExitPrompterProvider[S]
	parentEstimator ports.Estimator

	// offset is the running step offset; every run starts it at base.
	base       domain.StepOffset
	offset     domain.StepOffset
	controller *runtime.Controller[S]
	running    bool

	clone  func(S) S
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// binding is one form property bound to its step, resolved once.
type binding[S any] struct {
	key      domain.Key
	lens     ports.Lens[S]
	provider ports.PrompterProvider[S]
	step     *runtime.Step[S]
}

// Option defines a functional option for configuring the Wizard.
type Option[S any] func(*Wizard[S])

// WithInitialState seeds the state. Properties it already sets are not asked.
func WithInitialState[S any](state S) Option[S] {
	return func(w *Wizard[S]) {
		w.initial = state
	}
}

// WithImplicitState supplies answers used only to pre-select prompts, never to skip them.
func WithImplicitState[S any](state S) Option[S] {
	return func(w *Wizard[S]) {
		w.implicit = &state
	}
}

// WithExitPrompter asks for confirmation whenever a prompt answers SignalExit.
func WithExitPrompter[S any](provider ExitPrompterProvider[S]) Option[S] {
	return func(w *Wizard[S]) {
		w.exitPrompter = provider
	}
}

// WithParentEstimator chains the estimator of an enclosing wizard, so previews include the
// steps the parent would add.
func WithParentEstimator[S any](estimator ports.Estimator) Option[S] {
	return func(w *Wizard[S]) {
		w.parentEstimator = estimator
	}
}

// WithStepOffset shifts displayed step numbers when embedded in a larger flow.
func WithStepOffset[S any](offset domain.StepOffset) Option[S] {
	return func(w *Wizard[S]) {
		w.base = offset
		w.offset = offset
	}
}

// WithLogger sets a custom structured logger for the wizard.
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(w *Wizard[S]) {
		w.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks[S any](hooks domain.LifecycleHooks) Option[S] {
	return func(w *Wizard[S]) {
		w.hooks = hooks
	}
}

// WithClone overrides how state copies are made (default: reflection deep copy).
func WithClone[S any](clone func(S) S) Option[S] {
	return func(w *Wizard[S]) {
		w.clone = clone
	}
}

// New binds every property of form that has a prompter provider and returns an idle wizard.
// A nil form is an empty flow.
func New[S any](form ports.Form[S], opts ...Option[S]) *Wizard[S] {
	w := &Wizard[S]{
		form:   form,
		caches: make(map[domain.Key]*domain.StepCache),
		clone:  runtime.DeepCopy[S],
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if form != nil {
		for _, key := range form.Properties() {
			provider := form.PrompterProvider(key)
			if provider == nil {
				continue
			}
			lens, ok := form.Lens(key)
			if !ok {
				w.logger.Warn("property without lens is not bound", "property", key)
				continue
			}
			b := &binding[S]{key: key, lens: lens, provider: provider}
			b.step = w.bindStep(b)
			w.bindings = append(w.bindings, b)
			w.caches[key] = domain.NewStepCache()
		}
	}

	w.controller = runtime.NewController(w.initial, runtime.WithClone(w.clone))
	return w
}

// Run drives the flow to completion. It returns nil when the user exits; that is not an error.
// Errors raised by a prompter propagate unchanged.
func (w *Wizard[S]) Run(ctx context.Context) (*S, error) {
	if w.running {
		return nil, fmt.Errorf("run: %w", domain.ErrWizardRunning)
	}
	runID := uuid.NewString()
	logger := w.logger.With("run_id", runID)

	w.controller = runtime.NewController(w.initial,
		runtime.WithClone(w.clone),
		runtime.WithLogger[S](logger),
		runtime.WithLifecycleHooks[S](w.hooks),
		runtime.WithRunID[S](runID),
	)
	for _, step := range w.resolveNextSteps(w.initial, domain.NewKeySet()) {
		w.controller.AddStep(step)
	}

	w.offset = w.base
	w.running = true
	defer func() { w.running = false }()

	logger.DebugContext(ctx, "wizard started", "properties", len(w.bindings), "initial_steps", w.controller.TotalSteps())
	final, err := w.controller.Run(ctx)
	if err != nil {
		return nil, err
	}
	if final == nil {
		logger.DebugContext(ctx, "wizard exited")
		return nil, nil
	}

	if w.form == nil {
		return final, nil
	}
	result := w.form.ApplyDefaults(*final, w.assigned())
	return &result, nil
}

// Running reports whether Run is in progress.
func (w *Wizard[S]) Running() bool {
	return w.running
}

// CurrentStep is the displayed number of the step being asked, offset included.
func (w *Wizard[S]) CurrentStep() int {
	return w.controller.CurrentStep() + w.offset.Current
}

// TotalSteps is the displayed estimate of the flow length, offset included.
func (w *Wizard[S]) TotalSteps() int {
	return w.controller.TotalSteps() + w.offset.Total
}

// StepOffset returns the running offset.
func (w *Wizard[S]) StepOffset() domain.StepOffset {
	return w.offset
}

// SetStepOffset sets the embedding offset.
func (w *Wizard[S]) SetStepOffset(offset domain.StepOffset) {
	w.base = offset
	w.offset = offset
}

// Caches returns the per-property cache table. It fails while the wizard runs.
func (w *Wizard[S]) Caches() (map[domain.Key]*domain.StepCache, error) {
	if w.running {
		return nil, fmt.Errorf("read caches: %w", domain.ErrWizardRunning)
	}
	return w.caches, nil
}

// SetCaches replaces the cache table. Bound properties missing from it get empty caches.
// It fails while the wizard runs.
func (w *Wizard[S]) SetCaches(caches map[domain.Key]*domain.StepCache) error {
	if w.running {
		return fmt.Errorf("replace caches: %w", domain.ErrWizardRunning)
	}
	if caches == nil {
		caches = make(map[domain.Key]*domain.StepCache)
	}
	for _, b := range w.bindings {
		if caches[b.key] == nil {
			caches[b.key] = domain.NewStepCache()
		}
	}
	w.caches = caches
	return nil
}

// Form returns the form the wizard was built from.
func (w *Wizard[S]) Form() ports.Form[S] {
	return w.form
}

// BoundForm returns the form restricted to the properties that are asked.
func (w *Wizard[S]) BoundForm() ports.Form[S] {
	keys := make([]domain.Key, 0, len(w.bindings))
	for _, b := range w.bindings {
		keys = append(keys, b.key)
	}
	return boundForm[S]{Form: w.form, keys: keys}
}

// Resolve returns the keys that would be scheduled next for state, given the keys already
// assigned. It has no side effects.
func (w *Wizard[S]) Resolve(state S, assigned domain.KeySet) []domain.Key {
	steps := w.resolveNextSteps(state, assigned)
	keys := make([]domain.Key, 0, len(steps))
	for _, s := range steps {
		keys = append(keys, domain.Key(s.Name))
	}
	return keys
}

type boundForm[S any] struct {
	ports.Form[S]
	keys []domain.Key
}

func (f boundForm[S]) Properties() []domain.Key {
	return f.keys
}
