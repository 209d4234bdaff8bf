package form

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ConditionError reports an expression that failed to compile.
type ConditionError struct {
	Key        domain.Key
	Expression string
	Err        error
}

func (e *ConditionError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("invalid condition %q: %v", e.Expression, e.Err)
	}
	return fmt.Sprintf("invalid condition %q on %q: %v", e.Expression, e.Key, e.Err)
}

func (e *ConditionError) Unwrap() error {
	return e.Err
}

// ShowIf shows the property only while pred holds for the state (defaults applied).
func ShowIf[S any](pred func(state S) bool) FieldOption[S] {
	return func(fd *field[S]) error {
		fd.conditions = append(fd.conditions, pred)
		return nil
	}
}

// When shows the property only while the expr-lang expression evaluates to true against the
// state. Map states expose their keys as variables, struct states their exported fields.
// An expression that fails at runtime hides the property.
func When[S any](expression string) FieldOption[S] {
	return func(fd *field[S]) error {
		program, err := CompileCondition[S](expression)
		if err != nil {
			var condErr *ConditionError
			if errors.As(err, &condErr) {
				condErr.Key = fd.key
			}
			return err
		}
		fd.conditions = append(fd.conditions, func(state S) bool {
			out, err := expr.Run(program, exprEnv(state))
			if err != nil {
				return false
			}
			ok, _ := out.(bool)
			return ok
		})
		return nil
	}
}

// CompileCondition compiles a boolean expression for states of type S.
func CompileCondition[S any](expression string) (*vm.Program, error) {
	var zero S
	program, err := expr.Compile(expression,
		expr.Env(exprEnv(zero)),
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, &ConditionError{Expression: expression, Err: err}
	}
	return program, nil
}

var anyMap = reflect.TypeFor[map[string]any]()

// exprEnv exposes named map types as plain maps, which is what expr understands.
func exprEnv[S any](state S) any {
	v := reflect.ValueOf(&state).Elem()
	if v.Kind() == reflect.Map && v.Type().ConvertibleTo(anyMap) {
		if v.IsNil() {
			return map[string]any{}
		}
		return v.Convert(anyMap).Interface()
	}
	return state
}

// RequireAssigned shows the property only once every key in keys has been scheduled.
func RequireAssigned[S any](keys ...domain.Key) FieldOption[S] {
	return func(fd *field[S]) error {
		fd.requires = append(fd.requires, keys...)
		return nil
	}
}

// Default declares the value an unset but visible property receives. The value must have the
// property's type.
func Default[S, T any](v T) FieldOption[S] {
	return func(fd *field[S]) error {
		if err := fd.accepts(reflect.TypeOf(any(v))); err != nil {
			return fmt.Errorf("default: %w", err)
		}
		fd.defaultFn = func(S) (any, bool) { return v, true }
		return nil
	}
}

// DefaultFunc derives the default from the rest of the state.
func DefaultFunc[S, T any](fn func(state S) T) FieldOption[S] {
	return func(fd *field[S]) error {
		if t := reflect.TypeFor[T](); t.Kind() != reflect.Interface {
			if err := fd.accepts(t); err != nil {
				return fmt.Errorf("default: %w", err)
			}
		}
		fd.defaultFn = func(s S) (any, bool) { return fn(s), true }
		return nil
	}
}
