package conflict

import (
	"fmt"
	"strings"

	"github.com/skyops/skycoord/core/model"
)

// Roster provides the entity lookups the engine needs. *store.Store satisfies
// it.
type Roster interface {
	Pilot(id string) (model.Pilot, bool)
	Drone(id string) (model.Drone, bool)
	Mission(id string) (model.Mission, bool)
	MissionsByPilot(id string) []model.Mission
	MissionsByDrone(id string) []model.Mission
	OpenMissions() []model.Mission
}

// Engine evaluates assignment conflicts against a roster. All checks are pure
// reads; the engine never mutates entities. Unknown ids yield empty lists, as
// conflict checks are advisory rather than validating.
type Engine struct {
	roster Roster
}

// New creates an Engine over the given roster.
func New(r Roster) *Engine {
	return &Engine{roster: r}
}

// CheckPilot returns the conflicts of assigning the pilot to the mission.
func (e *Engine) CheckPilot(pilotID, missionID string) []Conflict {
	pilot, ok := e.roster.Pilot(pilotID)
	if !ok {
		return nil
	}
	mission, ok := e.roster.Mission(missionID)
	if !ok {
		return nil
	}
	conflicts := PilotConflicts(pilot, mission, e.roster.MissionsByPilot(pilotID))
	observeConflicts(conflicts)
	return conflicts
}

// CheckDrone returns the conflicts of assigning the drone to the mission.
func (e *Engine) CheckDrone(droneID, missionID string) []Conflict {
	drone, ok := e.roster.Drone(droneID)
	if !ok {
		return nil
	}
	mission, ok := e.roster.Mission(missionID)
	if !ok {
		return nil
	}
	conflicts := DroneConflicts(drone, mission, e.roster.MissionsByDrone(droneID))
	observeConflicts(conflicts)
	return conflicts
}

// CheckPilotDroneLocation flags a pilot and drone stationed in different
// locations, independent of any mission.
func (e *Engine) CheckPilotDroneLocation(pilotID, droneID string) []Conflict {
	pilot, ok := e.roster.Pilot(pilotID)
	if !ok {
		return nil
	}
	drone, ok := e.roster.Drone(droneID)
	if !ok {
		return nil
	}
	conflicts := PilotDroneLocationConflicts(pilot, drone)
	observeConflicts(conflicts)
	return conflicts
}

// CheckMission aggregates all conflicts for one mission: its assigned pilot,
// its assigned drone, and the pilot/drone location pairing.
func (e *Engine) CheckMission(missionID string) []Conflict {
	mission, ok := e.roster.Mission(missionID)
	if !ok {
		return nil
	}
	var conflicts []Conflict
	if mission.AssignedPilotID != "" {
		conflicts = append(conflicts, e.CheckPilot(mission.AssignedPilotID, missionID)...)
	}
	if mission.AssignedDroneID != "" {
		conflicts = append(conflicts, e.CheckDrone(mission.AssignedDroneID, missionID)...)
	}
	if mission.AssignedPilotID != "" && mission.AssignedDroneID != "" {
		conflicts = append(conflicts, e.CheckPilotDroneLocation(mission.AssignedPilotID, mission.AssignedDroneID)...)
	}
	return conflicts
}

// DetectAll sweeps every pending or active mission and concatenates the
// results in mission iteration order. No deduplication is applied.
func (e *Engine) DetectAll() []Conflict {
	var all []Conflict
	for _, m := range e.roster.OpenMissions() {
		all = append(all, e.CheckMission(m.ID)...)
	}
	return all
}

// PilotConflicts evaluates every pilot rule against the mission. Rules are
// independent: one conflict is emitted per rule that fires. The others slice
// holds the missions currently assigned to this pilot and is used for the
// double-booking scan.
func PilotConflicts(pilot model.Pilot, mission model.Mission, others []model.Mission) []Conflict {
	var conflicts []Conflict

	if pilot.Status == model.PilotOnLeave {
		conflicts = append(conflicts, Conflict{
			Type:      TypePilotOnLeave,
			Severity:  SeverityHigh,
			Message:   fmt.Sprintf("Pilot %s (%s) is currently on leave", pilot.ID, pilot.Name),
			PilotID:   pilot.ID,
			MissionID: mission.ID,
		})
	}
	if pilot.Status == model.PilotUnavailable {
		conflicts = append(conflicts, Conflict{
			Type:      TypePilotUnavailable,
			Severity:  SeverityHigh,
			Message:   fmt.Sprintf("Pilot %s (%s) is marked as unavailable", pilot.ID, pilot.Name),
			PilotID:   pilot.ID,
			MissionID: mission.ID,
		})
	}
	if pilot.AvailabilityStart != nil && pilot.AvailabilityEnd != nil {
		if mission.StartDate.Before(*pilot.AvailabilityStart) || mission.EndDate.After(*pilot.AvailabilityEnd) {
			conflicts = append(conflicts, Conflict{
				Type:      TypePilotAvailabilityMismatch,
				Severity:  SeverityHigh,
				Message:   fmt.Sprintf("Pilot %s is not available during mission dates", pilot.ID),
				PilotID:   pilot.ID,
				MissionID: mission.ID,
			})
		}
	}
	if missing := pilot.MissingSkills(mission.RequiredSkills); len(missing) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:          TypeSkillMismatch,
			Severity:      SeverityCritical,
			Message:       fmt.Sprintf("Pilot %s lacks required skills: %s", pilot.ID, strings.Join(missing, ", ")),
			PilotID:       pilot.ID,
			MissionID:     mission.ID,
			MissingSkills: missing,
		})
	}
	if missing := pilot.MissingCertifications(mission.RequiredCertifications); len(missing) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:                  TypeCertificationMismatch,
			Severity:              SeverityCritical,
			Message:               fmt.Sprintf("Pilot %s lacks required certifications: %s", pilot.ID, strings.Join(missing, ", ")),
			PilotID:               pilot.ID,
			MissionID:             mission.ID,
			MissingCertifications: missing,
		})
	}
	if !model.SameLocation(pilot.Location, mission.Location) {
		conflicts = append(conflicts, Conflict{
			Type:      TypeLocationMismatch,
			Severity:  SeverityMedium,
			Message:   fmt.Sprintf("Pilot location (%s) differs from mission location (%s)", pilot.Location, mission.Location),
			PilotID:   pilot.ID,
			MissionID: mission.ID,
		})
	}
	for _, other := range others {
		if other.ID == mission.ID || !other.IsOpen() {
			continue
		}
		if mission.Overlaps(other) {
			conflicts = append(conflicts, Conflict{
				Type:                 TypePilotDoubleBooking,
				Severity:             SeverityCritical,
				Message:              fmt.Sprintf("Pilot %s is already assigned to mission %s during overlapping dates", pilot.ID, other.ID),
				PilotID:              pilot.ID,
				MissionID:            mission.ID,
				ConflictingMissionID: other.ID,
			})
		}
	}
	return conflicts
}

// DroneConflicts evaluates every drone rule against the mission, symmetric to
// PilotConflicts.
func DroneConflicts(drone model.Drone, mission model.Mission, others []model.Mission) []Conflict {
	var conflicts []Conflict

	if drone.Status == model.DroneMaintenance {
		conflicts = append(conflicts, Conflict{
			Type:      TypeDroneInMaintenance,
			Severity:  SeverityCritical,
			Message:   fmt.Sprintf("Drone %s (%s) is currently in maintenance", drone.ID, drone.Model),
			DroneID:   drone.ID,
			MissionID: mission.ID,
		})
	}
	if drone.MaintenanceDue != nil {
		due := *drone.MaintenanceDue
		if !due.Before(mission.StartDate) && !due.After(mission.EndDate) {
			conflicts = append(conflicts, Conflict{
				Type:            TypeMaintenanceConflict,
				Severity:        SeverityHigh,
				Message:         fmt.Sprintf("Drone %s has maintenance scheduled during mission dates (%s)", drone.ID, due.Format("2006-01-02")),
				DroneID:         drone.ID,
				MissionID:       mission.ID,
				MaintenanceDate: due.Format("2006-01-02"),
			})
		}
	}
	if !model.SameLocation(drone.Location, mission.Location) {
		conflicts = append(conflicts, Conflict{
			Type:      TypeDroneLocationMismatch,
			Severity:  SeverityMedium,
			Message:   fmt.Sprintf("Drone location (%s) differs from mission location (%s)", drone.Location, mission.Location),
			DroneID:   drone.ID,
			MissionID: mission.ID,
		})
	}
	for _, other := range others {
		if other.ID == mission.ID || !other.IsOpen() {
			continue
		}
		if mission.Overlaps(other) {
			conflicts = append(conflicts, Conflict{
				Type:                 TypeDroneDoubleBooking,
				Severity:             SeverityCritical,
				Message:              fmt.Sprintf("Drone %s is already assigned to mission %s during overlapping dates", drone.ID, other.ID),
				DroneID:              drone.ID,
				MissionID:            mission.ID,
				ConflictingMissionID: other.ID,
			})
		}
	}
	return conflicts
}

// PilotDroneLocationConflicts flags a pilot and drone in different locations.
func PilotDroneLocationConflicts(pilot model.Pilot, drone model.Drone) []Conflict {
	if model.SameLocation(pilot.Location, drone.Location) {
		return nil
	}
	return []Conflict{{
		Type:     TypePilotDroneLocation,
		Severity: SeverityMedium,
		Message:  fmt.Sprintf("Pilot %s (%s) and Drone %s (%s) are in different locations", pilot.ID, pilot.Location, drone.ID, drone.Location),
		PilotID:  pilot.ID,
		DroneID:  drone.ID,
	}}
}
