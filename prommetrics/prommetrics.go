// Package prommetrics exposes [toggler.Toggler] activity as Prometheus
// counters.
package prommetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tomasbasham/toggler"
)

// Ensure Hook implements [toggler.MetricsHook].
var _ toggler.MetricsHook = (*Hook)(nil)

// Hook counts arm, cancel and fire events by task name.
type Hook struct {
	Armed    *prometheus.CounterVec
	Canceled *prometheus.CounterVec
	Fired    *prometheus.CounterVec
}

// New creates a [Hook] whose counters live in namespace and registers them
// with reg. It panics if the counters are already registered.
func New(reg prometheus.Registerer, namespace string) *Hook {
	h := &Hook{
		Armed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "toggler_armed_total",
				Help:      "Total number of times a task was armed",
			},
			[]string{"task", "slot"},
		),
		Canceled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "toggler_canceled_total",
				Help:      "Total number of pending fires canceled by the other task of the pair",
			},
			[]string{"task"},
		),
		Fired: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "toggler_fired_total",
				Help:      "Total number of times a task ran",
			},
			[]string{"task"},
		),
	}

	reg.MustRegister(h.Armed, h.Canceled, h.Fired)

	return h
}

// OnArm implements [toggler.MetricsHook].
func (h *Hook) OnArm(task *toggler.Task, slot toggler.Slot) {
	h.Armed.WithLabelValues(task.Name(), slot.String()).Inc()
}

// OnCancel implements [toggler.MetricsHook].
func (h *Hook) OnCancel(task *toggler.Task) {
	h.Canceled.WithLabelValues(task.Name()).Inc()
}

// OnFire implements [toggler.MetricsHook].
func (h *Hook) OnFire(task *toggler.Task) {
	h.Fired.WithLabelValues(task.Name()).Inc()
}
