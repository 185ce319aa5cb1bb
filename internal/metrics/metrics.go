package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the registration pipeline.
type Metrics struct {
	RegistrationsCreated  prometheus.Counter
	RegistrationsRejected *prometheus.CounterVec
}

// New creates and registers all metrics with the default registry.
func New() *Metrics {
	return &Metrics{
		RegistrationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registrations_created_total",
			Help: "Total number of registrations successfully stored",
		}),
		RegistrationsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registrations_rejected_total",
			Help: "Total number of rejected registration attempts by reason",
		}, []string{"reason"}),
	}
}

// RecordRejected increments the rejection counter for one of the fixed
// reasons: rate_limit, validation, duplicate, store_error.
func (m *Metrics) RecordRejected(reason string) {
	m.RegistrationsRejected.WithLabelValues(reason).Inc()
}
