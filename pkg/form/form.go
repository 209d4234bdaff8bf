package form

import (
	"fmt"
	"reflect"

	"github.com/aretw0/stepwise/internal/runtime"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

// Form is a declarative table of properties. It implements ports.Form.
type Form[S any] struct {
	order  []domain.Key
	fields map[domain.Key]*field[S]
	clone  func(S) S
}

type field[S any] struct {
	key        domain.Key
	lens       ports.Lens[S]
	provider   ports.PrompterProvider[S]
	conditions []condition[S]
	requires   []domain.Key
	defaultFn  func(S) (any, bool)
	valueType  reflect.Type
}

type condition[S any] func(state S) bool

// FieldOption configures a bound property.
type FieldOption[S any] func(*field[S]) error

// New creates an empty form.
func New[S any]() *Form[S] {
	return &Form[S]{
		fields: make(map[domain.Key]*field[S]),
		clone:  runtime.DeepCopy[S],
	}
}

// Bind declares a property. Properties are resolved in bind order. A nil provider declares a
// property that is never asked but may still receive a default.
func Bind[S, T any](f *Form[S], prop Property[S, T], provider func(ports.View[S]) ports.Prompter[T], opts ...FieldOption[S]) error {
	if prop.Key == "" {
		return fmt.Errorf("bind: empty property key")
	}
	if _, dup := f.fields[prop.Key]; dup {
		return fmt.Errorf("bind %q: property already bound", prop.Key)
	}
	if prop.Get == nil || prop.Set == nil || prop.Clear == nil {
		return fmt.Errorf("bind %q: property lens is incomplete", prop.Key)
	}

	fd := &field[S]{key: prop.Key, lens: prop.Lens(), valueType: reflect.TypeFor[T]()}
	if provider != nil {
		fd.provider = func(v ports.View[S]) ports.Prompter[any] {
			return ports.Erase(provider(v))
		}
	}
	for _, opt := range opts {
		if err := opt(fd); err != nil {
			return fmt.Errorf("bind %q: %w", prop.Key, err)
		}
	}

	f.fields[prop.Key] = fd
	f.order = append(f.order, prop.Key)
	return nil
}

// Properties lists the declared keys in bind order.
func (f *Form[S]) Properties() []domain.Key {
	return append([]domain.Key(nil), f.order...)
}

func (f *Form[S]) Lens(key domain.Key) (ports.Lens[S], bool) {
	fd, ok := f.fields[key]
	if !ok {
		return ports.Lens[S]{}, false
	}
	return fd.lens, true
}

func (f *Form[S]) PrompterProvider(key domain.Key) ports.PrompterProvider[S] {
	fd, ok := f.fields[key]
	if !ok {
		return nil
	}
	return fd.provider
}

// CanShowProperty reports whether key is askable: it has a provider, holds no value yet, and
// its conditions hold against the state with defaults applied.
func (f *Form[S]) CanShowProperty(key domain.Key, state S, assigned domain.KeySet) bool {
	fd, ok := f.fields[key]
	if !ok || fd.provider == nil {
		return false
	}
	if _, set := fd.lens.Get(&state); set {
		return false
	}
	return fd.visible(f.ApplyDefaults(state, assigned), assigned)
}

// ApplyDefaults returns a copy of state where every unset property whose conditions hold
// receives its declared default. Defaults apply in bind order, so a default may make a later
// property visible.
func (f *Form[S]) ApplyDefaults(state S, assigned domain.KeySet) S {
	out := f.clone(state)
	for _, key := range f.order {
		fd := f.fields[key]
		if fd.defaultFn == nil {
			continue
		}
		if _, set := fd.lens.Get(&out); set {
			continue
		}
		if !fd.visible(out, assigned) {
			continue
		}
		v, ok := fd.defaultFn(out)
		if !ok {
			continue
		}
		_ = fd.lens.Set(&out, v)
	}
	return out
}

// accepts reports an error unless values of type t can be stored in the property.
func (fd *field[S]) accepts(t reflect.Type) error {
	switch {
	case t == nil:
	case fd.valueType.Kind() == reflect.Interface && t.Implements(fd.valueType):
		return nil
	case t == fd.valueType:
		return nil
	}
	return fmt.Errorf("%w: %q wants %v, got %v", domain.ErrTypeMismatch, fd.key, fd.valueType, t)
}

func (fd *field[S]) visible(state S, assigned domain.KeySet) bool {
	for _, req := range fd.requires {
		if !assigned.Has(req) {
			return false
		}
	}
	for _, cond := range fd.conditions {
		if !cond(state) {
			return false
		}
	}
	return true
}
