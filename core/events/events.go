// Package events defines the domain events published on the internal bus.
package events

import (
	"time"

	"github.com/skyops/skycoord/core/conflict"
)

// AssignmentEvent is published after the coordinator commits or refuses an
// assignment or reassignment.
type AssignmentEvent struct {
	Kind      string // "assign_pilot", "assign_drone", "reassign"
	MissionID string
	PilotID   string
	DroneID   string
	Reason    string
	Success   bool
	Message   string
	Time      time.Time
}

// ConflictEvent is published after a conflict sweep.
type ConflictEvent struct {
	Conflicts []conflict.Conflict
	Time      time.Time
}

// StatusEvent is published when a pilot or drone status changes outside of
// assignment flow.
type StatusEvent struct {
	EntityKind string // "pilot" or "drone"
	EntityID   string
	Status     string
	Time       time.Time
}
