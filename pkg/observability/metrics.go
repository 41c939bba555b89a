package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/vignette/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "vignette"

// Metrics holds the playback collectors.
type Metrics struct {
	Actions        *prometheus.CounterVec
	ActionDuration *prometheus.HistogramVec
	Scripts        *prometheus.CounterVec
	Playing        prometheus.Gauge

	mu      sync.Mutex
	started map[actionKey]time.Time
}

type actionKey struct {
	script string
	index  int
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Actions dispatched by the player, by kind and outcome.",
		}, []string{"kind", "status"}),
		ActionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_duration_seconds",
			Help:      "Wall time spent on one action, delay included.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"kind"}),
		Scripts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scripts_total",
			Help:      "Scripts played to the end, by whether every action succeeded.",
		}, []string{"result"}),
		Playing: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scripts_playing",
			Help:      "Scripts currently in flight.",
		}),
		started: make(map[actionKey]time.Time),
	}

	for _, c := range []prometheus.Collector{m.Actions, m.ActionDuration, m.Scripts, m.Playing} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnScriptStart: func(_ context.Context, _ *domain.ScriptEvent) {
			m.Playing.Inc()
		},
		OnScriptEnd: func(_ context.Context, e *domain.ScriptEvent) {
			m.Playing.Dec()
			result := "clean"
			for _, o := range e.Outcomes {
				if o.Status != domain.OutcomeSucceeded {
					result = "degraded"
					break
				}
			}
			m.Scripts.WithLabelValues(result).Inc()
		},
		OnActionStart: func(_ context.Context, e *domain.ActionEvent) {
			m.mu.Lock()
			m.started[actionKey{e.ScriptID, e.Index}] = e.Timestamp
			m.mu.Unlock()
		},
		OnActionEnd: func(_ context.Context, e *domain.ActionEvent) {
			status := domain.OutcomeSucceeded
			if e.Outcome != nil {
				status = e.Outcome.Status
			}
			m.Actions.WithLabelValues(string(e.Kind), string(status)).Inc()

			key := actionKey{e.ScriptID, e.Index}
			m.mu.Lock()
			start, ok := m.started[key]
			delete(m.started, key)
			m.mu.Unlock()
			if ok {
				m.ActionDuration.WithLabelValues(string(e.Kind)).Observe(e.Timestamp.Sub(start).Seconds())
			}
		},
	}
}
