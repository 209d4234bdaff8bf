package stepwise

import (
	"context"
	"fmt"

	"github.com/aretw0/stepwise/internal/runtime"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

// resolveNextSteps returns the frontier of properties that are visible and not yet assigned.
// Visibility is checked against a running copy of assigned, so a property may become visible
// because an earlier one in the same pass was just scheduled.
func (w *Wizard[S]) resolveNextSteps(state S, assigned domain.KeySet) []*runtime.Step[S] {
	running := assigned.Clone()
	var branch []*runtime.Step[S]
	for _, b := range w.bindings {
		if running.Has(b.key) {
			continue
		}
		if w.form.CanShowProperty(b.key, state, running) {
			branch = append(branch, b.step)
			running.Add(b.key)
		}
	}
	return branch
}

// assigned is the set of properties whose step is pending, executing or executed.
func (w *Wizard[S]) assigned() domain.KeySet {
	set := domain.NewKeySet()
	for _, b := range w.bindings {
		if w.controller.ContainsStep(b.step) {
			set.Add(b.key)
		}
	}
	return set
}

func (w *Wizard[S]) cacheFor(key domain.Key) *domain.StepCache {
	c := w.caches[key]
	if c == nil {
		c = domain.NewStepCache()
		w.caches[key] = c
	}
	return c
}

func (w *Wizard[S]) implied(b *binding[S]) (any, bool) {
	if w.implicit == nil {
		return nil, false
	}
	s := w.clone(*w.implicit)
	return b.lens.Get(&s)
}

// bindStep builds the step that asks b and reports what becomes visible afterwards.
func (w *Wizard[S]) bindStep(b *binding[S]) *runtime.Step[S] {
	return runtime.NewStep(string(b.key), func(ctx context.Context, state S) (runtime.StepResult[S], error) {
		cache := w.cacheFor(b.key)
		assigned := w.assigned()
		view := ports.View[S]{
			State:     w.form.ApplyDefaults(w.clone(state), assigned),
			Cache:     cache,
			Estimator: w.estimator(b, state, assigned),
		}

		// A later answer may have hidden a step scheduled earlier.
		if !w.form.CanShowProperty(b.key, state, assigned) {
			return runtime.StepResult[S]{NextState: state, Passed: true}, nil
		}

		p := b.provider(view)
		if p == nil {
			return runtime.StepResult[S]{NextState: state, NextSteps: w.resolveNextSteps(state, assigned), Passed: true}, nil
		}

		first := w.controller.CurrentStep() == 1
		implied, hasImplied := w.implied(b)
		resp, err := w.promptUser(ctx, p, cache, view.Estimator, implied, hasImplied)
		if err != nil {
			return runtime.StepResult[S]{}, fmt.Errorf("prompt %q: %w", b.key, err)
		}

		sig := resp.Effective()
		if resp.Signal == domain.SignalExit && w.exitPrompter != nil {
			sig, err = w.confirmExit(ctx, state)
			if err != nil {
				return runtime.StepResult[S]{}, fmt.Errorf("confirm exit: %w", err)
			}
		}

		if sig != domain.SignalNone {
			cache.ClearOffset()
			if first && (sig.IsExit() || sig == domain.SignalBack) {
				p.Dispose()
			}
			return runtime.StepResult[S]{NextState: state, Signal: sig}, nil
		}

		next := state
		if err := b.lens.Set(&next, resp.Value); err != nil {
			return runtime.StepResult[S]{}, fmt.Errorf("assign %q: %w", b.key, err)
		}
		return runtime.StepResult[S]{NextState: next, NextSteps: w.resolveNextSteps(next, assigned)}, nil
	})
}

// confirmExit asks the exit prompter. Confirming aborts; anything else re-asks the
// interrupted question.
func (w *Wizard[S]) confirmExit(ctx context.Context, state S) (domain.Signal, error) {
	p := w.exitPrompter(w.clone(state))
	if p == nil {
		return domain.SignalExit, nil
	}
	defer p.Dispose()

	p.Configure(ports.PrompterOptions{
		Cache:     domain.NewStepCache(),
		Estimator: func(any) int { return 0 },
		Steps:     domain.StepDisplay{Current: w.CurrentStep(), Total: w.TotalSteps()},
	})
	resp, err := p.Prompt(ctx)
	if err != nil {
		return domain.SignalNone, err
	}
	switch {
	case resp.Valid() && resp.Value:
		return domain.SignalExit, nil
	case resp.Signal.IsExit():
		return domain.SignalForceExit, nil
	default:
		return domain.SignalRetry, nil
	}
}
