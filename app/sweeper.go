package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/skyops/skycoord/core/audit"
	"github.com/skyops/skycoord/core/conflict"
	"github.com/skyops/skycoord/core/events"
	"github.com/skyops/skycoord/core/metrics"
	"github.com/skyops/skycoord/core/model"
	"github.com/skyops/skycoord/infra/logger"
	"github.com/skyops/skycoord/internal/eventbus"
)

type missionLister interface {
	OpenMissions() []model.Mission
}

// Sweeper runs the conflict engine over every open mission on a fixed
// interval, records the findings and publishes them on the bus.
type Sweeper struct {
	engine   *conflict.Engine
	missions missionLister
	audit    audit.LogStore
	sink     metrics.MetricsSink
	bus      eventbus.EventBus
	log      logger.Logger
	interval time.Duration
}

// NewSweeper creates a Sweeper. Audit, sink and bus may be nil.
func NewSweeper(engine *conflict.Engine, missions missionLister, auditStore audit.LogStore,
	sink metrics.MetricsSink, bus eventbus.EventBus, log logger.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{engine: engine, missions: missions, audit: auditStore, sink: sink, bus: bus, log: log, interval: interval}
}

// Run sweeps until the context is canceled. One sweep fires immediately.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one detection pass and returns the grouped findings.
func (s *Sweeper) Sweep(ctx context.Context) conflict.BySeverity {
	found := s.engine.DetectAll()
	grouped := conflict.GroupBySeverity(found)
	now := time.Now()

	s.log.Infof("sweep found %d conflicts (%d critical, %d high, %d medium)",
		grouped.Total, len(grouped.Critical), len(grouped.High), len(grouped.Medium))

	if s.audit != nil && len(found) > 0 {
		err := s.audit.Append(ctx, audit.Record{
			ID:        uuid.NewString(),
			Timestamp: now,
			Kind:      audit.KindSweep,
			Success:   true,
			Conflicts: found,
		})
		if err != nil {
			s.log.Errorf("audit append: %v", err)
		}
	}
	if s.sink != nil {
		swept := 0
		if s.missions != nil {
			swept = len(s.missions.OpenMissions())
		}
		err := s.sink.RecordSweep(metrics.SweepEvent{
			Total:    grouped.Total,
			Critical: len(grouped.Critical),
			High:     len(grouped.High),
			Medium:   len(grouped.Medium),
			Missions: swept,
			Time:     now,
		})
		if err != nil {
			s.log.Errorf("metrics error: %v", err)
		}
	}
	if s.bus != nil && len(found) > 0 {
		s.bus.Publish(events.ConflictEvent{Conflicts: found, Time: now})
	}
	return grouped
}
