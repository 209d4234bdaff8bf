package domain_test

import (
	"context"
	"testing"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestResponse_Classification(t *testing.T) {
	assert.True(t, domain.Answer("").Valid(), "a zero answer is still an answer")
	assert.False(t, domain.Control[string](domain.SignalBack).Valid())

	skip := domain.Skip[int]()
	assert.True(t, skip.Skipped())
	assert.Equal(t, domain.SignalBack, skip.Effective())

	assert.Equal(t, domain.SignalRetry, domain.Control[int](domain.SignalRetry).Effective())
	assert.Equal(t, domain.SignalNone, domain.Answer(3).Effective())
}

func TestSignal_IsExit(t *testing.T) {
	assert.True(t, domain.SignalExit.IsExit())
	assert.True(t, domain.SignalForceExit.IsExit())
	assert.False(t, domain.SignalBack.IsExit())
	assert.NotEqual(t, domain.SignalExit, domain.SignalForceExit)
}

func TestKeySet_CloneIsIndependent(t *testing.T) {
	s := domain.NewKeySet("a")
	c := s.Clone()
	c.Add("b")

	assert.False(t, s.Has("b"))
	assert.Equal(t, []domain.Key{"a", "b"}, c.Sorted())

	var nilSet domain.KeySet
	assert.False(t, nilSet.Has("a"))
}

func TestStepCache_Picked(t *testing.T) {
	c := domain.NewStepCache()
	_, ok := domain.Picked[string](c)
	assert.False(t, ok)

	c.SetPicked("x")
	v, ok := domain.Picked[string](c)
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = domain.Picked[int](c)
	assert.False(t, ok, "wrong type is reported as missing")
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{OnStepEnter: func(context.Context, *domain.StepEvent) { calls = append(calls, "a") }}
	b := domain.LifecycleHooks{
		OnStepEnter: func(context.Context, *domain.StepEvent) { calls = append(calls, "b") },
		OnComplete:  func(context.Context, *domain.CompleteEvent) { calls = append(calls, "done") },
	}

	m := a.Merge(b)
	m.OnStepEnter(context.Background(), &domain.StepEvent{})
	m.OnComplete(context.Background(), &domain.CompleteEvent{})
	assert.Nil(t, m.OnSignal)
	assert.Equal(t, []string{"a", "b", "done"}, calls)
}
