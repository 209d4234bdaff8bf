package observability

import (
	"context"
	"errors"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records wizard activity in prometheus collectors.
type Metrics struct {
	steps    *prometheus.CounterVec
	signals  *prometheus.CounterVec
	runs     *prometheus.CounterVec
	runSteps prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. Collectors that are
// already registered are reused, so several wizards can share one registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepwise_steps_total",
			Help: "Total number of answered steps",
		}, []string{"step"}),
		signals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepwise_signals_total",
			Help: "Total number of navigation signals",
		}, []string{"signal"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepwise_runs_total",
			Help: "Total number of finished runs by outcome",
		}, []string{"outcome"}),
		runSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stepwise_run_steps",
			Help:    "Steps answered per finished run",
			Buckets: prometheus.LinearBuckets(1, 2, 8),
		}),
	}

	var err error
	if m.steps, err = register(reg, m.steps); err != nil {
		return nil, err
	}
	if m.signals, err = register(reg, m.signals); err != nil {
		return nil, err
	}
	if m.runs, err = register(reg, m.runs); err != nil {
		return nil, err
	}
	if m.runSteps, err = register(reg, m.runSteps); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepLeave: func(_ context.Context, e *domain.StepEvent) {
			m.steps.WithLabelValues(e.Step).Inc()
		},
		OnSignal: func(_ context.Context, e *domain.SignalEvent) {
			m.signals.WithLabelValues(e.Signal.String()).Inc()
		},
		OnComplete: func(_ context.Context, e *domain.CompleteEvent) {
			outcome := "completed"
			if e.Aborted {
				outcome = "aborted"
			}
			m.runs.WithLabelValues(outcome).Inc()
			m.runSteps.Observe(float64(e.Steps))
		},
	}
}

// StepsCounter exposes the answered-steps counter of one step.
func (m *Metrics) StepsCounter(step string) prometheus.Counter {
	return m.steps.WithLabelValues(step)
}
