package ports

import "github.com/aretw0/stepwise/pkg/domain"

// Lens reads and writes one property of a state. Values cross it untyped; implementations
// built from typed properties reject mismatched values with domain.ErrTypeMismatch.
type Lens[S any] struct {
	Get   func(state *S) (any, bool)
	Set   func(state *S, v any) error
	Clear func(state *S)
}

// View is the state a prompter provider sees: the current answers with defaults applied,
// plus the property's cache and a fresh estimator.
type View[S any] struct {
	State     S
	Cache     *domain.StepCache
	Estimator Estimator
}

// PrompterProvider builds the prompter for a property. A nil prompter means there is
// nothing to ask in this state.
type PrompterProvider[S any] func(view View[S]) Prompter[any]

// Form is the declarative binding table between state properties and prompters.
type Form[S any] interface {
	// Properties lists the declared keys in resolution order.
	Properties() []domain.Key

	Lens(key domain.Key) (Lens[S], bool)

	// PrompterProvider returns nil for properties that are never asked.
	PrompterProvider(key domain.Key) PrompterProvider[S]

	// CanShowProperty reports whether key should be asked given the state and the keys
	// already assigned to a step.
	CanShowProperty(key domain.Key, state S, assigned domain.KeySet) bool

	// ApplyDefaults returns a copy of state where unset but visible properties hold their
	// declared defaults. Explicit answers are never overwritten.
	ApplyDefaults(state S, assigned domain.KeySet) S
}
