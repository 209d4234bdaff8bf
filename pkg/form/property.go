package form

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

// Property is a typed lens on one property of S.
type Property[S, T any] struct {
	Key   domain.Key
	Get   func(state *S) (T, bool)
	Set   func(state *S, v T)
	Clear func(state *S)
}

// Lens erases the value type of p.
func (p Property[S, T]) Lens() ports.Lens[S] {
	return ports.Lens[S]{
		Get: func(state *S) (any, bool) {
			v, ok := p.Get(state)
			if !ok {
				return nil, false
			}
			return v, true
		},
		Set: func(state *S, v any) error {
			typed, ok := v.(T)
			if !ok {
				return fmt.Errorf("%w: %q wants %v, got %T", domain.ErrTypeMismatch, p.Key, reflect.TypeFor[T](), v)
			}
			p.Set(state, typed)
			return nil
		},
		Clear: p.Clear,
	}
}

// Pointer builds a property over a pointer field; nil means unset.
func Pointer[S, T any](key domain.Key, field func(*S) **T) Property[S, T] {
	return Property[S, T]{
		Key: key,
		Get: func(s *S) (T, bool) {
			p := *field(s)
			if p == nil {
				var zero T
				return zero, false
			}
			return *p, true
		},
		Set: func(s *S, v T) {
			*field(s) = &v
		},
		Clear: func(s *S) {
			*field(s) = nil
		},
	}
}

// MapPath builds a property over a nested entry of a map state. The key's dotted path is
// split once; intermediate maps are created on Set.
func MapPath[M ~map[string]any, T any](key domain.Key) Property[M, T] {
	path := strings.Split(string(key), ".")
	parent := path[:len(path)-1]
	leaf := path[len(path)-1]

	walk := func(m map[string]any, segs []string, create bool) map[string]any {
		for _, seg := range segs {
			next, ok := m[seg].(map[string]any)
			if !ok {
				if !create {
					return nil
				}
				next = make(map[string]any)
				m[seg] = next
			}
			m = next
		}
		return m
	}

	return Property[M, T]{
		Key: key,
		Get: func(s *M) (T, bool) {
			var zero T
			if *s == nil {
				return zero, false
			}
			m := walk(map[string]any(*s), parent, false)
			if m == nil {
				return zero, false
			}
			v, ok := m[leaf]
			if !ok {
				return zero, false
			}
			typed, _ := v.(T)
			return typed, true
		},
		Set: func(s *M, v T) {
			if *s == nil {
				*s = make(M)
			}
			walk(map[string]any(*s), parent, true)[leaf] = v
		},
		Clear: func(s *M) {
			if *s == nil {
				return
			}
			root := map[string]any(*s)
			m := walk(root, parent, false)
			if m == nil {
				return
			}
			delete(m, leaf)
			// Drop parents left empty, deepest first.
			for i := len(parent); i > 0 && len(m) == 0; i-- {
				up := walk(root, parent[:i-1], false)
				delete(up, parent[i-1])
				m = up
			}
		},
	}
}
