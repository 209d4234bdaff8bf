package prompter

import (
	"context"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Confirm asks a yes/no question.
type Confirm struct {
	base[bool]
	def bool
}

// NewConfirm creates a yes/no question answered with def on an empty line.
func NewConfirm(term *Terminal, message string, def bool, opts ...Option) *Confirm {
	return &Confirm{base: newBase[bool](term, message, opts), def: def}
}

func (p *Confirm) Prompt(ctx context.Context) (domain.Response[bool], error) {
	p.header()
	for {
		def := p.def
		if v, ok := p.RecentItem(); ok {
			def = v
		}
		hint := "[y/N] > "
		if def {
			hint = "[Y/n] > "
		}

		line, sig, err := p.term.Ask(ctx, hint)
		if err != nil {
			return domain.Response[bool]{}, err
		}
		if sig != domain.SignalNone {
			return domain.Control[bool](sig), nil
		}

		switch strings.ToLower(line) {
		case "":
			p.SetRecentItem(def)
			return domain.Answer(def), nil
		case "y", "yes":
			p.SetRecentItem(true)
			return domain.Answer(true), nil
		case "n", "no":
			p.SetRecentItem(false)
			return domain.Answer(false), nil
		}
		p.term.Warn("please answer y or n")
	}
}

// ExitConfirm is the default question asked before leaving a flow.
func ExitConfirm(term *Terminal) *Confirm {
	return NewConfirm(term, "Leave without finishing?", false)
}
