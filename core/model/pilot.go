package model

import "time"

// PilotStatus defines the roster state of a pilot.
type PilotStatus string

const (
	PilotAvailable   PilotStatus = "Available"
	PilotOnLeave     PilotStatus = "On Leave"
	PilotAssigned    PilotStatus = "Assigned"
	PilotUnavailable PilotStatus = "Unavailable"
)

// Valid reports whether the status is one of the known roster states.
func (s PilotStatus) Valid() bool {
	switch s {
	case PilotAvailable, PilotOnLeave, PilotAssigned, PilotUnavailable:
		return true
	}
	return false
}

// Pilot represents a member of the pilot roster.
type Pilot struct {
	ID             string      `json:"pilot_id"`
	Name           string      `json:"name"`
	Skills         []string    `json:"skills"`
	Certifications []string    `json:"certifications"`
	Location       string      `json:"location"`
	Status         PilotStatus `json:"status"`

	// CurrentAssignment is a back-reference to the mission the pilot is bound
	// to, empty when unassigned. The coordinator keeps it in sync with the
	// mission side.
	CurrentAssignment string `json:"current_assignment,omitempty"`

	// Availability bounds are optional; they are only checked when both are set.
	AvailabilityStart *time.Time `json:"availability_start_date,omitempty"`
	AvailabilityEnd   *time.Time `json:"availability_end_date,omitempty"`

	ExperienceHours int    `json:"experience_hours"`
	PriorityLevel   int    `json:"priority_level"` // 1..5, 1 is highest
	ContactInfo     string `json:"contact_info,omitempty"`
}

// MissingSkills returns the required skills the pilot does not have.
func (p Pilot) MissingSkills(required []string) []string {
	return MissingTags(required, p.Skills)
}

// MissingCertifications returns the required certifications the pilot does not have.
func (p Pilot) MissingCertifications(required []string) []string {
	return MissingTags(required, p.Certifications)
}
