package manifest

import (
	"fmt"
	"math"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/form"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/aretw0/stepwise/pkg/prompter"
)

// Build validates def and binds every question to a terminal prompter.
func Build(def *Definition, term *prompter.Terminal) (*form.Form[Answers], error) {
	if err := Validate(def); err != nil {
		return nil, err
	}

	f := form.New[Answers]()
	for _, q := range def.Questions {
		if err := bind(f, q, term); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func bind(f *form.Form[Answers], q Question, term *prompter.Terminal) error {
	key := domain.Key(q.Key)
	opts := q.promptOptions()

	fieldOpts := []form.FieldOption[Answers]{}
	if q.When != "" {
		fieldOpts = append(fieldOpts, form.When[Answers](q.When))
	}
	if len(q.Requires) > 0 {
		keys := make([]domain.Key, len(q.Requires))
		for i, r := range q.Requires {
			keys[i] = domain.Key(r)
		}
		fieldOpts = append(fieldOpts, form.RequireAssigned[Answers](keys...))
	}

	switch q.Type {
	case TypeText:
		if v, ok := q.Default.(string); ok {
			fieldOpts = append(fieldOpts, form.Default[Answers](v))
		}
		return form.Bind(f, form.MapPath[Answers, string](key), func(v ports.View[Answers]) ports.Prompter[string] {
			return preselect[string](prompter.NewText(term, q.Message, opts...), v, key)
		}, fieldOpts...)

	case TypeNumber:
		if v, ok := q.Default.(float64); ok {
			fieldOpts = append(fieldOpts, form.Default[Answers](v))
		}
		return form.Bind(f, form.MapPath[Answers, float64](key), func(v ports.View[Answers]) ports.Prompter[float64] {
			p := prompter.NewNumber(term, q.Message, opts...)
			if q.Min != nil || q.Max != nil {
				p.Between(q.bounds())
			}
			return preselect[float64](p, v, key)
		}, fieldOpts...)

	case TypeConfirm:
		def, _ := q.Default.(bool)
		if q.Default != nil {
			fieldOpts = append(fieldOpts, form.Default[Answers](def))
		}
		return form.Bind(f, form.MapPath[Answers, bool](key), func(v ports.View[Answers]) ports.Prompter[bool] {
			return preselect[bool](prompter.NewConfirm(term, q.Message, def, opts...), v, key)
		}, fieldOpts...)

	case TypeSelect:
		if v, ok := q.Default.(string); ok {
			fieldOpts = append(fieldOpts, form.Default[Answers](v))
		}
		choices := make([]prompter.Choice[string], len(q.Choices))
		for i, c := range q.Choices {
			choices[i] = prompter.Choice[string]{Label: c.Label, Value: c.Value, Description: c.Description}
		}
		return form.Bind(f, form.MapPath[Answers, string](key), func(v ports.View[Answers]) ports.Prompter[string] {
			return preselect[string](prompter.NewSelect(term, q.Message, choices, opts...), v, key)
		}, fieldOpts...)
	}
	return &ValidationError{Key: q.Key, Reason: fmt.Sprintf("unknown type %q", q.Type)}
}

// preselect offers the declared default, which the view already carries, as the pre-selected
// answer. The wizard overrides it with a cached or implicit answer.
func preselect[T any, P ports.Prompter[T]](p P, v ports.View[Answers], key domain.Key) P {
	if d, ok := form.MapPath[Answers, T](key).Get(&v.State); ok {
		p.SetRecentItem(d)
	}
	return p
}

func (q Question) promptOptions() []prompter.Option {
	var opts []prompter.Option
	if q.Description != "" {
		opts = append(opts, prompter.WithDescription(q.Description))
	}
	if q.Required {
		opts = append(opts, prompter.WithRequired())
	}
	return opts
}

// bounds fills an open side of the range with the widest float.
func (q Question) bounds() (float64, float64) {
	lo, hi := -math.MaxFloat64, math.MaxFloat64
	if q.Min != nil {
		lo = *q.Min
	}
	if q.Max != nil {
		hi = *q.Max
	}
	return lo, hi
}
