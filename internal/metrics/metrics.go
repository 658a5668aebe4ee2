package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the workflow service.
type Metrics struct {
	TransitionsTotal *prometheus.CounterVec
	ExpirationsSwept prometheus.Counter
	ReviewIntakes    prometheus.Counter
}

// New registers the service collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gacp",
			Subsystem: "workflow",
			Name:      "transitions_total",
			Help:      "Status transition attempts by source, target and outcome.",
		}, []string{"from", "to", "outcome"}),
		ExpirationsSwept: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gacp",
			Subsystem: "workflow",
			Name:      "expirations_swept_total",
			Help:      "Applications driven to expired by the sweeper.",
		}),
		ReviewIntakes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gacp",
			Subsystem: "workflow",
			Name:      "review_intakes_total",
			Help:      "Submitted applications moved into review by the intake worker.",
		}),
	}
}

// ObserveTransition records one transition attempt. outcome is the error
// code, or "ok" for a successful transition.
func (m *Metrics) ObserveTransition(from, to, outcome string) {
	if m == nil {
		return
	}
	m.TransitionsTotal.WithLabelValues(from, to, outcome).Inc()
}
