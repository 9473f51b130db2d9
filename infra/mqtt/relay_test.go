package mqtt

import (
	"context"
	"testing"
	"time"

	"github.com/skyops/skycoord/core/events"
	"github.com/skyops/skycoord/infra/logger"
	"github.com/skyops/skycoord/internal/eventbus"
)

func TestRelayForwardsSuccessfulAssignments(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	notifier := NewMockNotifier()
	relay := NewRelay(notifier, logger.NopLogger{}, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		relay.Run(ctx, bus)
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)

	bus.Publish(events.AssignmentEvent{
		Kind: "assign_pilot", MissionID: "M1", PilotID: "P1", Success: true, Message: "Pilot P1 assigned to mission M1",
	})
	bus.Publish(events.AssignmentEvent{
		Kind: "assign_drone", MissionID: "M1", DroneID: "D1", Success: false, Message: "refused",
	})

	deadline := time.After(time.Second)
	for {
		notifier.mu.Lock()
		n := len(notifier.Messages)
		notifier.mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("notification not relayed")
		case <-time.After(5 * time.Millisecond):
		}
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.Messages["pilot/P1"] != "M1" {
		t.Fatalf("pilot notification missing: %v", notifier.Messages)
	}
	if _, ok := notifier.Messages["drone/D1"]; ok {
		t.Fatal("failed assignment must not be relayed")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}
