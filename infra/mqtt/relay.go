package mqtt

import (
	"context"
	"time"

	"github.com/skyops/skycoord/core/events"
	"github.com/skyops/skycoord/infra/logger"
	"github.com/skyops/skycoord/internal/eventbus"
)

// Relay forwards successful assignment events from the bus to the notifier.
// Failed operations are not pushed; only committed assignments reach the
// field.
type Relay struct {
	notifier   Notifier
	log        logger.Logger
	ackTimeout time.Duration
}

// NewRelay creates a Relay. A zero ackTimeout disables ack tracking.
func NewRelay(n Notifier, log logger.Logger, ackTimeout time.Duration) *Relay {
	return &Relay{notifier: n, log: log, ackTimeout: ackTimeout}
}

// Run consumes the bus until the context is canceled or the channel closes.
func (r *Relay) Run(ctx context.Context, bus eventbus.EventBus) {
	ch := bus.Subscribe()
	defer bus.Unsubscribe(ch)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if ae, ok := ev.(events.AssignmentEvent); ok && ae.Success {
				r.notify(ae)
			}
		}
	}
}

func (r *Relay) notify(ev events.AssignmentEvent) {
	if ev.PilotID != "" {
		r.send("pilot", ev.PilotID, ev)
	}
	if ev.DroneID != "" {
		r.send("drone", ev.DroneID, ev)
	}
}

func (r *Relay) send(kind, entityID string, ev events.AssignmentEvent) {
	cmdID, err := r.notifier.NotifyAssignment(kind, entityID, ev.MissionID, ev.Message)
	if err != nil {
		r.log.Errorf("notify %s %s: %v", kind, entityID, err)
		return
	}
	if r.ackTimeout <= 0 {
		return
	}
	ok, err := r.notifier.WaitForAck(cmdID, r.ackTimeout)
	if err != nil || !ok {
		r.log.Warnf("no ack for %s %s (command %s): %v", kind, entityID, cmdID, err)
	}
}
