package assign

import (
	"github.com/prometheus/client_golang/prometheus"
)

var assignmentsTotal *prometheus.CounterVec

// newCollectors creates new metric collectors.
func newCollectors() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assignments_total",
			Help: "Number of assignment operations processed by the coordinator",
		},
		[]string{"kind", "outcome"},
	)
}

func init() {
	assignmentsTotal = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers assignment metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(assignmentsTotal)
}

// ResetMetrics reinitializes metric collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	assignmentsTotal = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
