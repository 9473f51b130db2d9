package metrics

import coremetrics "github.com/skyops/skycoord/core/metrics"

// MultiSink fans coordination events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAssignment forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordAssignment(ev coremetrics.AssignmentEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordAssignment(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSweep forwards the event to all sinks.
func (m *MultiSink) RecordSweep(ev coremetrics.SweepEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSweep(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRank forwards the event to sinks that support it.
func (m *MultiSink) RecordRank(ev coremetrics.RankEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.RankRecorder); ok {
			if err := rec.RecordRank(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
