// Package metrics provides the concrete sink implementations used to record
// coordination events.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/skyops/skycoord/core/metrics"
)

// PromSink records coordination events in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	sweeps      prometheus.Counter
	conflicts   *prometheus.CounterVec
	ranks       *prometheus.CounterVec
}

// NewPromSink registers coordination metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coordination_events_total",
		Help: "Total number of assignment operations recorded by the sink",
	}, []string{"kind", "success"})
	sweeps := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "conflict_sweeps_total",
		Help: "Number of completed conflict detection sweeps",
	})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "conflict_sweep_findings_total",
		Help: "Conflicts found by sweeps, by severity",
	}, []string{"severity"})
	ranks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "replacement_searches_total",
		Help: "Replacement pilot searches, by urgency",
	}, []string{"urgency"})

	s := &PromSink{assignments: assignments, sweeps: sweeps, conflicts: conflicts, ranks: ranks}
	if err := register(reg, &s.assignments); err != nil {
		return nil, err
	}
	if err := registerCounter(reg, &s.sweeps); err != nil {
		return nil, err
	}
	if err := register(reg, &s.conflicts); err != nil {
		return nil, err
	}
	if err := register(reg, &s.ranks); err != nil {
		return nil, err
	}
	return s, nil
}

func register(reg prometheus.Registerer, vec **prometheus.CounterVec) error {
	if err := reg.Register(*vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			*vec = are.ExistingCollector.(*prometheus.CounterVec)
			return nil
		}
		return err
	}
	return nil
}

func registerCounter(reg prometheus.Registerer, c *prometheus.Counter) error {
	if err := reg.Register(*c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			*c = are.ExistingCollector.(prometheus.Counter)
			return nil
		}
		return err
	}
	return nil
}

// RecordAssignment increments the event counter.
func (s *PromSink) RecordAssignment(ev coremetrics.AssignmentEvent) error {
	s.assignments.WithLabelValues(ev.Kind, strconv.FormatBool(ev.Success)).Inc()
	return nil
}

// RecordSweep increments the sweep counter and the per-severity findings.
func (s *PromSink) RecordSweep(ev coremetrics.SweepEvent) error {
	s.sweeps.Inc()
	s.conflicts.WithLabelValues("CRITICAL").Add(float64(ev.Critical))
	s.conflicts.WithLabelValues("HIGH").Add(float64(ev.High))
	s.conflicts.WithLabelValues("MEDIUM").Add(float64(ev.Medium))
	return nil
}

// RecordRank increments the replacement search counter.
func (s *PromSink) RecordRank(ev coremetrics.RankEvent) error {
	s.ranks.WithLabelValues(ev.Urgency).Inc()
	return nil
}
