// Package audit persists coordination decisions: assignments, reassignments,
// status updates and conflict sweeps.
package audit

import (
	"context"
	"time"

	"github.com/skyops/skycoord/core/conflict"
)

// Record kinds.
const (
	KindAssignPilot  = "assign_pilot"
	KindAssignDrone  = "assign_drone"
	KindReassign     = "reassign"
	KindStatusUpdate = "status_update"
	KindSweep        = "sweep"
)

// Record captures one coordination decision and its outcome.
type Record struct {
	ID        string              `json:"id"`
	Timestamp time.Time           `json:"timestamp"`
	Kind      string              `json:"kind"`
	MissionID string              `json:"mission_id,omitempty"`
	PilotID   string              `json:"pilot_id,omitempty"`
	DroneID   string              `json:"drone_id,omitempty"`
	Success   bool                `json:"success"`
	Message   string              `json:"message,omitempty"`
	Reason    string              `json:"reason,omitempty"`
	Conflicts []conflict.Conflict `json:"conflicts,omitempty"`
}

// Query defines filters for retrieving records.
type Query struct {
	Start     time.Time
	End       time.Time
	MissionID string
	Kind      string
}

// LogStore persists Records and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}
