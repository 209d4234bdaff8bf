package prompter

import (
	"context"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Text asks for a free-form string.
type Text struct {
	base[string]
}

// NewText creates a free-form question.
func NewText(term *Terminal, message string, opts ...Option) *Text {
	return &Text{base: newBase[string](term, message, opts)}
}

func (p *Text) Prompt(ctx context.Context) (domain.Response[string], error) {
	p.header()
	for {
		line, sig, err := p.term.Ask(ctx, p.input())
		if err != nil {
			return domain.Response[string]{}, err
		}
		if sig != domain.SignalNone {
			return domain.Control[string](sig), nil
		}

		if line == "" {
			if v, ok := p.RecentItem(); ok {
				return domain.Answer(v), nil
			}
			if p.settings.required {
				p.term.Warn("an answer is required")
				continue
			}
		}
		if err := p.check(line); err != nil {
			p.term.Warn(err.Error())
			continue
		}

		p.SetRecentItem(line)
		return domain.Answer(line), nil
	}
}
