package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nekogravitycat/smart-parking-backend/internal/slot"
)

const namespace = "parking"

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	transitions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	slots       *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "occupancy_transitions_total",
				Help:      "Count of committed slot transitions by operation.",
			},
			[]string{"op"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "occupancy_failures_total",
				Help:      "Count of rejected or failed slot transitions by operation and reason.",
			},
			[]string{"op", "reason"},
		),
		slots: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "slots",
				Help:      "Number of slots by status.",
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(m.transitions, m.failures, m.slots)
	return m
}

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func (m *Metrics) Transition(op string) {
	m.transitions.WithLabelValues(op).Inc()
}

func (m *Metrics) Failure(op, reason string) {
	m.failures.WithLabelValues(op, reason).Inc()
}

// SetSlotCounts overwrites the slot gauge. Statuses missing from counts read as zero.
func (m *Metrics) SetSlotCounts(counts map[slot.Status]int) {
	for _, st := range []slot.Status{slot.StatusFree, slot.StatusOccupied} {
		m.slots.WithLabelValues(string(st)).Set(float64(counts[st]))
	}
}
