package ports

import (
	"context"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Estimator predicts how many additional steps a hypothetical answer would reveal.
// It never fails: a response it cannot apply estimates to 0.
type Estimator func(response any) int

// PrompterOptions is handed to a prompter right before it is asked.
type PrompterOptions struct {
	// Cache is the property's step cache. Prompters may keep extra fields in it.
	Cache     *domain.StepCache
	Estimator Estimator
	Steps     domain.StepDisplay
}

// Prompter asks a single question.
type Prompter[T any] interface {
	// Configure is called once per prompt, before Prompt.
	Configure(opts PrompterOptions)

	// RecentItem is the pre-selected value before Prompt, and what the user actually picked after it.
	RecentItem() (T, bool)
	SetRecentItem(v T)

	// TotalSteps is the number of logical steps this prompt consumes (at least 1).
	TotalSteps() int

	// Prompt blocks until the user answers, skips or navigates.
	Prompt(ctx context.Context) (domain.Response[T], error)

	// Dispose releases UI resources. It must be idempotent.
	Dispose()
}

// Erase adapts a typed prompter to the untyped surface the wizard drives.
func Erase[T any](p Prompter[T]) Prompter[any] {
	if p == nil {
		return nil
	}
	if a, ok := any(p).(Prompter[any]); ok {
		return a
	}
	return erased[T]{p}
}

type erased[T any] struct {
	inner Prompter[T]
}

func (e erased[T]) Configure(opts PrompterOptions) { e.inner.Configure(opts) }

func (e erased[T]) RecentItem() (any, bool) {
	v, ok := e.inner.RecentItem()
	if !ok {
		return nil, false
	}
	return v, true
}

func (e erased[T]) SetRecentItem(v any) {
	if typed, ok := v.(T); ok {
		e.inner.SetRecentItem(typed)
	}
}

func (e erased[T]) TotalSteps() int { return e.inner.TotalSteps() }

func (e erased[T]) Prompt(ctx context.Context) (domain.Response[any], error) {
	r, err := e.inner.Prompt(ctx)
	if err != nil {
		return domain.Response[any]{}, err
	}
	return domain.Response[any]{Value: r.Value, Signal: r.Signal, Answered: r.Answered}, nil
}

func (e erased[T]) Dispose() { e.inner.Dispose() }
