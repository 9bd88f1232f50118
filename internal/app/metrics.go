package app

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts slot queries and reservation outcomes. A nil *Metrics
// is a no-op so tests and metric-less deployments skip registration
// entirely.
type Metrics struct {
	slotQueries  prometheus.Counter
	reservations *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		slotQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "appointment_slot_queries_total",
			Help: "Number of available-slot queries served.",
		}),
		reservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appointment_reservations_total",
			Help: "Reservation attempts by terminal outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.slotQueries, m.reservations)
	return m
}

func (m *Metrics) SlotQuery() {
	if m == nil {
		return
	}
	m.slotQueries.Inc()
}

func (m *Metrics) Reservation(outcome string) {
	if m == nil {
		return
	}
	m.reservations.WithLabelValues(outcome).Inc()
}
