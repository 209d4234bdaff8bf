package stepwise

import (
	"context"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

// promptUser runs one prompter with step-counter bookkeeping. It is the only place a run
// suspends.
func (w *Wizard[S]) promptUser(ctx context.Context, p ports.Prompter[any], cache *domain.StepCache, est ports.Estimator, implied any, hasImplied bool) (domain.Response[any], error) {
	if cache.Offset != nil {
		w.offset = *cache.Offset
	}
	saved := w.offset
	cache.Offset = &saved

	p.Configure(ports.PrompterOptions{
		Cache:     cache,
		Estimator: est,
		Steps:     domain.StepDisplay{Current: w.CurrentStep(), Total: w.TotalSteps()},
	})
	switch {
	case cache.HasPicked:
		p.SetRecentItem(cache.Picked)
	case hasImplied:
		p.SetRecentItem(implied)
	}

	resp, err := p.Prompt(ctx)
	if err != nil {
		return resp, err
	}
	if !resp.Valid() {
		return resp, nil
	}
	if recent, ok := p.RecentItem(); ok {
		cache.SetPicked(recent)
	} else {
		cache.SetPicked(resp.Value)
	}

	// Only an answer consumes the extra steps a composite prompter spans.
	w.offset = w.offset.Add(p.TotalSteps() - 1)
	return resp, nil
}

// estimator builds the speculative step counter for b. It works on a private copy of state
// and never fails.
func (w *Wizard[S]) estimator(b *binding[S], state S, assigned domain.KeySet) ports.Estimator {
	scratch := w.clone(state)
	withSelf := assigned.Clone()
	withSelf.Add(b.key)
	parent := w.parentEstimator

	return func(response any) int {
		switch r := response.(type) {
		case nil, domain.Signal:
			return 0
		case domain.Response[any]:
			if !r.Valid() {
				return 0
			}
			response = r.Value
		}
		if err := b.lens.Set(&scratch, response); err != nil {
			return 0
		}
		defer b.lens.Clear(&scratch)

		count := len(w.resolveNextSteps(scratch, withSelf))
		if parent != nil {
			count += parent(w.clone(scratch))
		}
		return count
	}
}
