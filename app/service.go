// Package app assembles the coordination service from its components.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apiaudit "github.com/skyops/skycoord/api/audit"
	apiconflicts "github.com/skyops/skycoord/api/conflicts"
	apiroster "github.com/skyops/skycoord/api/roster"
	"github.com/skyops/skycoord/config"
	"github.com/skyops/skycoord/core/assign"
	"github.com/skyops/skycoord/core/audit"
	"github.com/skyops/skycoord/core/conflict"
	coremetrics "github.com/skyops/skycoord/core/metrics"
	"github.com/skyops/skycoord/core/rank"
	"github.com/skyops/skycoord/core/store"
	"github.com/skyops/skycoord/infra/logger"
	"github.com/skyops/skycoord/infra/metrics"
	"github.com/skyops/skycoord/infra/mqtt"
	"github.com/skyops/skycoord/infra/snapshot"
	"github.com/skyops/skycoord/internal/eventbus"
)

// Service orchestrates the store, conflict engine, coordinator and ranker.
type Service struct {
	Store       *store.Store
	Engine      *conflict.Engine
	Coordinator *assign.Coordinator
	Ranker      *rank.Ranker
	Audit       audit.LogStore

	bus      eventbus.EventBus
	log      logger.Logger
	cfg      *config.Config
	notifier mqtt.Notifier
	sweeper  *Sweeper
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	persister, err := snapshot.New(cfg.Store.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("snapshot store: %w", err)
	}
	st := store.New(persister)
	snap, err := persister.Load()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if err := st.LoadSnapshot(snap); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	logg.Infof("loaded %d pilots, %d drones, %d missions",
		len(snap.Pilots), len(snap.Drones), len(snap.Missions))

	var auditStore audit.LogStore
	switch cfg.Audit.Backend {
	case "sqlite":
		auditStore, err = audit.NewSQLiteStore(cfg.Audit.Path)
	default:
		auditStore, err = audit.NewJSONLStore(cfg.Audit.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("audit store: %w", err)
	}

	sink, err := metrics.BuildSink(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	bus := eventbus.New()
	engine := conflict.New(st)

	coordinator, err := assign.New(st, logger.New("coordinator"))
	if err != nil {
		return nil, err
	}
	coordinator.SetEventBus(bus)
	coordinator.SetAuditStore(auditStore)
	coordinator.SetMetricsSink(sink)

	ranker, err := rank.New(st, logger.New("ranker"))
	if err != nil {
		return nil, err
	}
	if rec, ok := sink.(coremetrics.RankRecorder); ok {
		ranker.SetRecorder(rec)
	}

	svc := &Service{
		Store:       st,
		Engine:      engine,
		Coordinator: coordinator,
		Ranker:      ranker,
		Audit:       auditStore,
		bus:         bus,
		log:         logg,
		cfg:         cfg,
	}

	if cfg.MQTT.Enabled {
		client, err := mqtt.NewPahoClient(cfg.MQTT.Client)
		if err != nil {
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		svc.notifier = client
	}
	if cfg.Sweep.Enabled {
		svc.sweeper = NewSweeper(engine, st, auditStore, sink, bus, logger.New("sweeper"),
			time.Duration(cfg.Sweep.IntervalSeconds)*time.Second)
	}
	return svc, nil
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, ":"+s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.cfg.API.Enabled {
		go func() {
			if err := s.serveAPI(ctx); err != nil {
				s.log.Errorf("api server: %v", err)
			}
		}()
	}
	if s.notifier != nil {
		relay := mqtt.NewRelay(s.notifier, logger.New("relay"),
			time.Duration(s.cfg.MQTT.AckTimeoutSeconds)*time.Second)
		go relay.Run(ctx, s.bus)
	}
	if s.sweeper != nil {
		go s.sweeper.Run(ctx)
	}
	<-ctx.Done()
	return nil
}

func (s *Service) serveAPI(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/api/roster/pilots", apiroster.NewPilotsHandler(s.Store))
	mux.Handle("/api/roster/drones", apiroster.NewDronesHandler(s.Store))
	mux.Handle("/api/missions", apiroster.NewMissionsHandler(s.Store))
	mux.Handle("/api/conflicts", apiconflicts.NewSweepHandler(s.Engine))
	mux.Handle("/api/audit/logs", apiaudit.NewLogHandler(s.Audit, ""))
	srv := &http.Server{Addr: s.cfg.API.Address, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api shutdown: %v", err)
		}
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.notifier != nil {
		s.notifier.Disconnect()
	}
	s.bus.Close()
	return s.Audit.Close()
}
