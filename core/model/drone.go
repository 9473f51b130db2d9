package model

import (
	"strings"
	"time"
)

// DroneStatus defines the fleet state of a drone.
type DroneStatus string

const (
	DroneAvailable   DroneStatus = "Available"
	DroneMaintenance DroneStatus = "Maintenance"
	DroneDeployed    DroneStatus = "Deployed"
)

// Valid reports whether the status is one of the known fleet states.
func (s DroneStatus) Valid() bool {
	switch s {
	case DroneAvailable, DroneMaintenance, DroneDeployed:
		return true
	}
	return false
}

// Drone represents a unit of the drone fleet.
type Drone struct {
	ID           string      `json:"drone_id"`
	Model        string      `json:"model"`
	Capabilities []string    `json:"capabilities"`
	Location     string      `json:"location"`
	Status       DroneStatus `json:"status"`

	// CurrentAssignment mirrors the mission's AssignedDroneID, empty when
	// unassigned.
	CurrentAssignment string `json:"current_assignment,omitempty"`

	MaintenanceDue *time.Time `json:"maintenance_due_date,omitempty"`
	FlightHours    int        `json:"flight_hours"`
	MaxRangeKM     float64    `json:"max_range_km"`
}

// CanServe reports whether the drone qualifies for a mission's skill
// requirements. Drones have no formal capability vocabulary aligned with
// mission skills, so the check is deliberately permissive: with no required
// skills any drone qualifies, otherwise at least one required skill must
// appear as a substring of the joined capability list.
func (d Drone) CanServe(requiredSkills []string) bool {
	if len(requiredSkills) == 0 {
		return true
	}
	caps := strings.ToLower(strings.Join(d.Capabilities, " "))
	for _, skill := range requiredSkills {
		if strings.Contains(caps, strings.ToLower(skill)) {
			return true
		}
	}
	return false
}
