package testutils

import (
	"context"
	"errors"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

// ErrScriptExhausted is returned when a scripted prompter is asked more often than scripted.
var ErrScriptExhausted = errors.New("prompter script exhausted")

// Preselection records what a prompter had pre-selected when it was asked.
type Preselection[T any] struct {
	Value T
	Set   bool
}

// Prompter answers from a fixed script; each Prompt call consumes one response.
// It records everything the wizard hands it.
type Prompter[T any] struct {
	script []domain.Response[T]
	steps  int
	err    error
	recent *T

	// BeforePrompt runs inside Prompt, with the options of the last Configure call.
	BeforePrompt func(opts ports.PrompterOptions)

	Configs      []ports.PrompterOptions
	Preselected  []Preselection[T]
	Prompts      int
	DisposeCalls int
}

// NewPrompter creates a prompter answering with script, in order.
func NewPrompter[T any](script ...domain.Response[T]) *Prompter[T] {
	return &Prompter[T]{script: script, steps: 1}
}

// Answers scripts plain answers.
func Answers[T any](values ...T) *Prompter[T] {
	script := make([]domain.Response[T], len(values))
	for i, v := range values {
		script[i] = domain.Answer(v)
	}
	return NewPrompter(script...)
}

// WithSteps makes the prompter a composite consuming n logical steps.
func (p *Prompter[T]) WithSteps(n int) *Prompter[T] {
	p.steps = n
	return p
}

// Fail makes every Prompt call return err.
func (p *Prompter[T]) Fail(err error) *Prompter[T] {
	p.err = err
	return p
}

// Then appends responses to the script.
func (p *Prompter[T]) Then(responses ...domain.Response[T]) *Prompter[T] {
	p.script = append(p.script, responses...)
	return p
}

// Provider returns a provider that always hands out p.
func Provider[S, T any](p *Prompter[T]) func(ports.View[S]) ports.Prompter[T] {
	return func(ports.View[S]) ports.Prompter[T] { return p }
}

func (p *Prompter[T]) Configure(opts ports.PrompterOptions) {
	p.Configs = append(p.Configs, opts)
}

func (p *Prompter[T]) RecentItem() (T, bool) {
	if p.recent == nil {
		var zero T
		return zero, false
	}
	return *p.recent, true
}

func (p *Prompter[T]) SetRecentItem(v T) {
	p.recent = &v
}

func (p *Prompter[T]) TotalSteps() int {
	return p.steps
}

// LastSteps is the step display of the most recent Configure call.
func (p *Prompter[T]) LastSteps() domain.StepDisplay {
	if len(p.Configs) == 0 {
		return domain.StepDisplay{}
	}
	return p.Configs[len(p.Configs)-1].Steps
}

func (p *Prompter[T]) Prompt(ctx context.Context) (domain.Response[T], error) {
	p.Prompts++
	v, ok := p.RecentItem()
	p.Preselected = append(p.Preselected, Preselection[T]{Value: v, Set: ok})

	if p.BeforePrompt != nil && len(p.Configs) > 0 {
		p.BeforePrompt(p.Configs[len(p.Configs)-1])
	}
	if p.err != nil {
		return domain.Response[T]{}, p.err
	}
	if len(p.script) == 0 {
		return domain.Response[T]{}, ErrScriptExhausted
	}
	r := p.script[0]
	p.script = p.script[1:]
	if r.Valid() {
		p.recent = &r.Value
	}
	return r, nil
}

func (p *Prompter[T]) Dispose() {
	p.DisposeCalls++
}
