package observability

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
type Metrics struct {
	FlowsStarted   *prometheus.CounterVec
	FlowsCompleted *prometheus.CounterVec
	FlowDuration   *prometheus.HistogramVec
	Answers        *prometheus.CounterVec
	Unrecognized   prometheus.Counter
	SpeechDropped  prometheus.Counter

	mu      sync.Mutex
	started map[string]time.Time
	now     func() time.Time
}

// NewMetrics creates the collectors and registers them with reg.
// A nil registerer skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FlowsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "absher_flows_started_total",
				Help: "Total number of service flows started",
			},
			[]string{"flow"},
		),
		FlowsCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "absher_flows_completed_total",
				Help: "Total number of service flows completed",
			},
			[]string{"flow"},
		),
		FlowDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "absher_flow_duration_seconds",
				Help:    "Time from flow start to completion",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
			},
			[]string{"flow"},
		),
		Answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "absher_answers_total",
				Help: "Answers applied to active flows, by category",
			},
			[]string{"kind"},
		),
		Unrecognized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "absher_unrecognized_input_total",
			Help: "User inputs that matched no flow",
		}),
		SpeechDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "absher_speech_dropped_total",
			Help: "Utterances dropped because the narrator was busy",
		}),
		started: make(map[string]time.Time),
		now:     time.Now,
	}

	if reg != nil {
		reg.MustRegister(m.FlowsStarted, m.FlowsCompleted, m.FlowDuration, m.Answers, m.Unrecognized, m.SpeechDropped)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFlowStart: func(_ context.Context, e *domain.FlowEvent) {
			m.FlowsStarted.WithLabelValues(e.FlowID).Inc()
			m.mu.Lock()
			m.started[e.FlowID] = m.now()
			m.mu.Unlock()
		},
		OnFlowComplete: func(_ context.Context, e *domain.FlowEvent) {
			m.FlowsCompleted.WithLabelValues(e.FlowID).Inc()
			m.mu.Lock()
			start, ok := m.started[e.FlowID]
			delete(m.started, e.FlowID)
			m.mu.Unlock()
			if ok {
				m.FlowDuration.WithLabelValues(e.FlowID).Observe(m.now().Sub(start).Seconds())
			}
		},
		OnAnswer: func(_ context.Context, e *domain.AnswerEvent) {
			m.Answers.WithLabelValues(string(e.Answer.Kind)).Inc()
		},
		OnUnrecognized: func(context.Context, *domain.InputEvent) {
			m.Unrecognized.Inc()
		},
		OnSpeechDropped: func(context.Context, *domain.InputEvent) {
			m.SpeechDropped.Inc()
		},
	}
}
