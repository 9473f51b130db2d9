package conflict

import (
	"github.com/prometheus/client_golang/prometheus"
)

var conflictsDetected *prometheus.CounterVec

// newCollectors creates new metric collectors.
func newCollectors() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conflicts_detected_total",
			Help: "Number of conflicts detected by the conflict engine",
		},
		[]string{"type", "severity"},
	)
}

func init() {
	conflictsDetected = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers conflict metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(conflictsDetected)
}

// ResetMetrics reinitializes metric collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	conflictsDetected = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}

func observeConflicts(conflicts []Conflict) {
	for _, c := range conflicts {
		conflictsDetected.WithLabelValues(string(c.Type), string(c.Severity)).Inc()
	}
}
