package stepwise

import (
	"context"
	"slices"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

const nestedCachesKey = "nested_caches"

// Nested embeds a child wizard as a single composite prompt of a parent flow. The child is
// built when the parent configures the prompt, taking the parent's estimator and step display,
// so its step numbers continue the parent's.
type Nested[S any] struct {
	form  ports.Form[S]
	opts  []Option[S]
	child *Wizard[S]

	recent   *S
	consumed int
}

// NewNested creates a composite prompter that runs form as a sub-flow.
func NewNested[S any](form ports.Form[S], opts ...Option[S]) *Nested[S] {
	return &Nested[S]{form: form, opts: opts, consumed: 1}
}

// Configure builds the child wizard for this prompt.
func (n *Nested[S]) Configure(o ports.PrompterOptions) {
	opts := append(slices.Clone(n.opts),
		WithStepOffset[S](domain.StepOffset{Current: o.Steps.Current - 1, Total: o.Steps.Total - 1}),
		WithParentEstimator[S](o.Estimator),
	)
	if n.recent != nil {
		opts = append(opts, WithImplicitState(*n.recent))
	}
	n.child = New(n.form, opts...)

	if o.Cache == nil {
		return
	}
	if o.Cache.Extra == nil {
		o.Cache.Extra = make(map[string]any)
	}
	// The child's caches live in the parent's cache so going back into the sub-flow restores picks.
	if caches, ok := o.Cache.Extra[nestedCachesKey].(map[domain.Key]*domain.StepCache); ok {
		// The child was just built and is idle, so SetCaches cannot fail.
		_ = n.child.SetCaches(caches)
	} else if caches, err := n.child.Caches(); err == nil {
		o.Cache.Extra[nestedCachesKey] = caches
	}
}

// Child returns the wizard built by the last Configure call.
func (n *Nested[S]) Child() *Wizard[S] {
	return n.child
}

func (n *Nested[S]) RecentItem() (S, bool) {
	if n.recent == nil {
		var zero S
		return zero, false
	}
	return *n.recent, true
}

func (n *Nested[S]) SetRecentItem(v S) {
	n.recent = &v
}

// TotalSteps is the number of steps the sub-flow consumed on its last run.
func (n *Nested[S]) TotalSteps() int {
	return n.consumed
}

// Prompt runs the sub-flow. Going back from its first step goes back in the parent;
// leaving the sub-flow leaves the parent without asking again.
func (n *Nested[S]) Prompt(ctx context.Context) (domain.Response[S], error) {
	if n.child == nil {
		n.Configure(ports.PrompterOptions{Steps: domain.StepDisplay{Current: 1, Total: 1}})
	}
	final, err := n.child.Run(ctx)
	if err != nil {
		return domain.Response[S]{}, err
	}
	n.consumed = max(1, n.child.controller.Executed())

	if final == nil {
		if n.child.controller.AbortSignal() == domain.SignalBack {
			return domain.Control[S](domain.SignalBack), nil
		}
		return domain.Control[S](domain.SignalForceExit), nil
	}
	n.recent = final
	return domain.Answer(*final), nil
}

// Dispose is a no-op: the child's prompters are disposed by the child itself.
func (n *Nested[S]) Dispose() {}
