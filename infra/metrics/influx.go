package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/skyops/skycoord/core/metrics"
	"github.com/skyops/skycoord/infra/logger"
)

// InfluxSink writes coordination events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordAssignment writes the assignment outcome as a point.
func (s *InfluxSink) RecordAssignment(ev coremetrics.AssignmentEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("assignment_event").
		AddTag("kind", ev.Kind).
		AddTag("success", strconv.FormatBool(ev.Success)).
		AddTag("component", "coordinator")
	if ev.MissionID != "" {
		p = p.AddTag("mission_id", ev.MissionID)
	}
	if ev.PilotID != "" {
		p = p.AddField("pilot_id", ev.PilotID)
	}
	if ev.DroneID != "" {
		p = p.AddField("drone_id", ev.DroneID)
	}
	p = p.AddField("count", 1).SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSweep writes the sweep summary as a point.
func (s *InfluxSink) RecordSweep(ev coremetrics.SweepEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("conflict_sweep").
		AddTag("component", "conflict_engine").
		AddField("total", ev.Total).
		AddField("critical", ev.Critical).
		AddField("high", ev.High).
		AddField("medium", ev.Medium).
		AddField("missions", ev.Missions).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRank writes a replacement search summary.
func (s *InfluxSink) RecordRank(ev coremetrics.RankEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("replacement_search").
		AddTag("mission_id", ev.MissionID).
		AddTag("urgency", ev.Urgency).
		AddTag("component", "ranker").
		AddField("candidates", ev.Candidates).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
