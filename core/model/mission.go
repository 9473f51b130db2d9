package model

import "time"

// MissionStatus defines the lifecycle state of a mission.
type MissionStatus string

const (
	MissionPending   MissionStatus = "Pending"
	MissionActive    MissionStatus = "Active"
	MissionCompleted MissionStatus = "Completed"
	MissionCancelled MissionStatus = "Cancelled"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s MissionStatus) Valid() bool {
	switch s {
	case MissionPending, MissionActive, MissionCompleted, MissionCancelled:
		return true
	}
	return false
}

// Mission represents a time-bounded job requiring one pilot and one drone.
// StartDate <= EndDate is assumed, not validated here.
type Mission struct {
	ID                     string        `json:"mission_id"`
	ClientName             string        `json:"client_name"`
	Location               string        `json:"location"`
	RequiredSkills         []string      `json:"required_skills"`
	RequiredCertifications []string      `json:"required_certifications"`
	StartDate              time.Time     `json:"start_date"`
	EndDate                time.Time     `json:"end_date"`
	Priority               int           `json:"priority"` // 1..5, 1 is highest
	AssignedPilotID        string        `json:"assigned_pilot_id,omitempty"`
	AssignedDroneID        string        `json:"assigned_drone_id,omitempty"`
	Status                 MissionStatus `json:"status"`
}

// IsOpen reports whether the mission is still subject to scheduling, i.e.
// pending or active.
func (m Mission) IsOpen() bool {
	return m.Status == MissionPending || m.Status == MissionActive
}

// Overlaps reports whether the mission's date range overlaps the other
// mission's range.
func (m Mission) Overlaps(other Mission) bool {
	return DatesOverlap(m.StartDate, m.EndDate, other.StartDate, other.EndDate)
}

// DatesOverlap reports whether [start1, end1] and [start2, end2] intersect.
// The comparison is inclusive: ranges that merely touch count as overlapping.
func DatesOverlap(start1, end1, start2, end2 time.Time) bool {
	return !start1.After(end2) && !end1.Before(start2)
}
