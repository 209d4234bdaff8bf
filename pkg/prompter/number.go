package prompter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Number asks for a decimal number, optionally within a range.
type Number struct {
	base[float64]
	min, max *float64
}

// NewNumber creates a numeric question.
func NewNumber(term *Terminal, message string, opts ...Option) *Number {
	return &Number{base: newBase[float64](term, message, opts)}
}

// Between restricts accepted answers to [min, max].
func (p *Number) Between(min, max float64) *Number {
	p.min, p.max = &min, &max
	return p
}

func (p *Number) Prompt(ctx context.Context) (domain.Response[float64], error) {
	p.header()
	for {
		line, sig, err := p.term.Ask(ctx, p.input())
		if err != nil {
			return domain.Response[float64]{}, err
		}
		if sig != domain.SignalNone {
			return domain.Control[float64](sig), nil
		}

		if line == "" {
			if v, ok := p.RecentItem(); ok {
				return domain.Answer(v), nil
			}
			p.term.Warn("a number is required")
			continue
		}
		if err := p.check(line); err != nil {
			p.term.Warn(err.Error())
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			p.term.Warn(fmt.Sprintf("%q is not a number", line))
			continue
		}
		if (p.min != nil && v < *p.min) || (p.max != nil && v > *p.max) {
			p.term.Warn(fmt.Sprintf("expected a number between %g and %g", *p.min, *p.max))
			continue
		}

		p.SetRecentItem(v)
		return domain.Answer(v), nil
	}
}
