package manifest

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/stepwise/pkg/form"
)

// ValidationError reports one invalid question.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Key == "" {
		return "invalid question: " + e.Reason
	}
	return fmt.Sprintf("invalid question %q: %s", e.Key, e.Reason)
}

// Validate checks every question and returns all problems joined.
func Validate(def *Definition) error {
	if def == nil || len(def.Questions) == 0 {
		return &ValidationError{Reason: "manifest declares no questions"}
	}

	var errs []error
	fail := func(key, format string, args ...any) {
		errs = append(errs, &ValidationError{Key: key, Reason: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool)
	for _, q := range def.Questions {
		if q.Key == "" {
			fail("", "missing key")
			continue
		}
		if seen[q.Key] {
			fail(q.Key, "duplicate key")
		}
		seen[q.Key] = true
	}

	for _, q := range def.Questions {
		if q.Key == "" {
			continue
		}
		for _, req := range q.Requires {
			if !seen[req] {
				fail(q.Key, "requires unknown question %q", req)
			}
		}
		if q.When != "" {
			if _, err := form.CompileCondition[Answers](q.When); err != nil {
				fail(q.Key, "%v", err)
			}
		}

		switch q.Type {
		case TypeText:
			if q.Default != nil {
				if _, ok := q.Default.(string); !ok {
					fail(q.Key, "text default must be a string, got %T", q.Default)
				}
			}
		case TypeNumber:
			if q.Default != nil {
				if _, ok := q.Default.(float64); !ok {
					fail(q.Key, "number default must be numeric, got %T", q.Default)
				}
			}
			if q.Min != nil && q.Max != nil && *q.Min > *q.Max {
				fail(q.Key, "min %g is greater than max %g", *q.Min, *q.Max)
			}
		case TypeConfirm:
			if q.Default != nil {
				if _, ok := q.Default.(bool); !ok {
					fail(q.Key, "confirm default must be a boolean, got %T", q.Default)
				}
			}
		case TypeSelect:
			if len(q.Choices) == 0 {
				fail(q.Key, "select needs choices")
			}
			if q.Default != nil {
				v, ok := q.Default.(string)
				if !ok || !slices.ContainsFunc(q.Choices, func(c Choice) bool { return c.Value == v }) {
					fail(q.Key, "default %v is not one of the choices", q.Default)
				}
			}
		default:
			fail(q.Key, "unknown type %q", q.Type)
		}
	}
	return errors.Join(errs...)
}
