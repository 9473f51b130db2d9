// Package metrics defines the sink interface used to record coordination
// events for observability purposes.
package metrics

import "time"

// AssignmentEvent represents a committed or refused assignment operation.
type AssignmentEvent struct {
	Kind      string // "assign_pilot", "assign_drone", "reassign", "status_update"
	MissionID string
	PilotID   string
	DroneID   string
	Success   bool
	Time      time.Time
}

// SweepEvent summarizes one conflict detection sweep.
type SweepEvent struct {
	Total    int
	Critical int
	High     int
	Medium   int
	Missions int
	Time     time.Time
}

// RankEvent summarizes one replacement search.
type RankEvent struct {
	MissionID  string
	Urgency    string
	Candidates int
	Time       time.Time
}

// MetricsSink records coordination events.
type MetricsSink interface {
	RecordAssignment(ev AssignmentEvent) error
	RecordSweep(ev SweepEvent) error
}

// RankRecorder is implemented by sinks able to record replacement searches.
type RankRecorder interface {
	RecordRank(ev RankEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordAssignment(AssignmentEvent) error { return nil }
func (NopSink) RecordSweep(SweepEvent) error           { return nil }
func (NopSink) RecordRank(RankEvent) error             { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = "9090"
	}
}
