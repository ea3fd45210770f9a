// Package metrics exports domain counters to Prometheus.
package metrics

import (
	"freight/internal/core/domain/model/load"

	"github.com/prometheus/client_golang/prometheus"
)

// StatusTransitions counts committed load status changes by action and by
// the statuses on both sides of the change.
type StatusTransitions struct {
	counter *prometheus.CounterVec
}

func NewStatusTransitions(reg prometheus.Registerer) (*StatusTransitions, error) {
	m := &StatusTransitions{
		counter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "freight",
				Name:      "load_status_transitions_total",
				Help:      "Committed load status transitions.",
			},
			[]string{"action", "from", "to"},
		),
	}
	if err := reg.Register(m.counter); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *StatusTransitions) ObserveTransition(action string, from, to load.Status) {
	m.counter.WithLabelValues(action, from.String(), to.String()).Inc()
}
