// Package assign implements the assignment coordinator: it gates proposed
// assignments on qualification coverage, applies them across the affected
// entities, and keeps the pilot/drone/mission cross-references in sync.
package assign

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skyops/skycoord/core/audit"
	"github.com/skyops/skycoord/core/events"
	"github.com/skyops/skycoord/core/logger"
	"github.com/skyops/skycoord/core/metrics"
	"github.com/skyops/skycoord/core/model"
	"github.com/skyops/skycoord/core/store"
	"github.com/skyops/skycoord/internal/eventbus"
)

// Result reports the outcome of a coordinator operation. Domain failures
// (unknown ids, missing qualifications, persistence refusal) are Results, not
// errors.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func failure(format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

func success(format string, args ...any) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Coordinator applies assignment transactions against the entity store.
// Callers must run the conflict engine first and refuse on CRITICAL
// conflicts; the coordinator re-validates only skill and certification
// coverage. Mutating calls must be serialized by the caller.
type Coordinator struct {
	store *store.Store
	log   logger.Logger

	mu    sync.Mutex
	bus   eventbus.EventBus
	audit audit.LogStore
	sink  metrics.MetricsSink
}

// New creates a Coordinator over the given store.
func New(st *store.Store, log logger.Logger) (*Coordinator, error) {
	if st == nil || log == nil {
		return nil, fmt.Errorf("assign: nil parameter provided to New")
	}
	return &Coordinator{store: st, log: log}, nil
}

// SetEventBus configures the bus used to publish assignment events.
func (c *Coordinator) SetEventBus(bus eventbus.EventBus) {
	c.mu.Lock()
	c.bus = bus
	c.mu.Unlock()
}

// SetAuditStore configures the store used to persist decisions.
func (c *Coordinator) SetAuditStore(s audit.LogStore) {
	c.mu.Lock()
	c.audit = s
	c.mu.Unlock()
}

// SetMetricsSink configures the sink used to record assignment events.
func (c *Coordinator) SetMetricsSink(s metrics.MetricsSink) {
	c.mu.Lock()
	c.sink = s
	c.mu.Unlock()
}

// AssignPilot binds the pilot to the mission. Coverage of the mission's
// required skills and certifications is re-validated here regardless of what
// the conflict engine reported.
func (c *Coordinator) AssignPilot(pilotID, missionID string) Result {
	res := c.assignPilot(pilotID, missionID)
	c.record(audit.KindAssignPilot, missionID, pilotID, "", "", res)
	return res
}

func (c *Coordinator) assignPilot(pilotID, missionID string) Result {
	mission, ok := c.store.Mission(missionID)
	if !ok {
		return failure("Mission %s not found", missionID)
	}
	pilot, ok := c.store.Pilot(pilotID)
	if !ok {
		return failure("Pilot %s not found", pilotID)
	}
	if res, ok := validatePilotCoverage(pilot, mission); !ok {
		return res
	}

	if err := c.store.UpdateMission(missionID, func(m *model.Mission) {
		m.AssignedPilotID = pilotID
		if m.Status == model.MissionPending && m.AssignedDroneID != "" {
			m.Status = model.MissionActive
		}
	}); err != nil {
		return failure("%v", err)
	}
	if err := c.store.UpdatePilot(pilotID, func(p *model.Pilot) {
		p.Status = model.PilotAssigned
		p.CurrentAssignment = missionID
	}); err != nil {
		return failure("%v", err)
	}
	if err := c.store.Save(); err != nil {
		c.log.Errorf("save after pilot assignment: %v", err)
		return failure("Pilot %s assigned to mission %s but saving failed: %v", pilotID, missionID, err)
	}
	c.log.Infof("assigned pilot %s to mission %s", pilotID, missionID)
	return success("Pilot %s assigned to mission %s", pilotID, missionID)
}

func validatePilotCoverage(pilot model.Pilot, mission model.Mission) (Result, bool) {
	if missing := pilot.MissingSkills(mission.RequiredSkills); len(missing) > 0 {
		return failure("Pilot missing required skills: %s", strings.Join(missing, ", ")), false
	}
	if missing := pilot.MissingCertifications(mission.RequiredCertifications); len(missing) > 0 {
		return failure("Pilot missing required certifications: %s", strings.Join(missing, ", ")), false
	}
	return Result{}, true
}

// AssignDrone binds the drone to the mission. The capability check is
// deliberately permissive, see model.Drone.CanServe.
func (c *Coordinator) AssignDrone(droneID, missionID string) Result {
	res := c.assignDrone(droneID, missionID)
	c.record(audit.KindAssignDrone, missionID, "", droneID, "", res)
	return res
}

func (c *Coordinator) assignDrone(droneID, missionID string) Result {
	mission, ok := c.store.Mission(missionID)
	if !ok {
		return failure("Mission %s not found", missionID)
	}
	drone, ok := c.store.Drone(droneID)
	if !ok {
		return failure("Drone %s not found", droneID)
	}
	if !drone.CanServe(mission.RequiredSkills) {
		return failure("Drone does not have required capabilities for this mission")
	}

	if err := c.store.UpdateMission(missionID, func(m *model.Mission) {
		m.AssignedDroneID = droneID
		if m.Status == model.MissionPending && m.AssignedPilotID != "" {
			m.Status = model.MissionActive
		}
	}); err != nil {
		return failure("%v", err)
	}
	if err := c.store.UpdateDrone(droneID, func(d *model.Drone) {
		d.Status = model.DroneDeployed
		d.CurrentAssignment = missionID
	}); err != nil {
		return failure("%v", err)
	}
	if err := c.store.Save(); err != nil {
		c.log.Errorf("save after drone assignment: %v", err)
		return failure("Drone %s assigned to mission %s but saving failed: %v", droneID, missionID, err)
	}
	c.log.Infof("assigned drone %s to mission %s", droneID, missionID)
	return success("Drone %s assigned to mission %s", droneID, missionID)
}

// Reassign replaces the mission's pilot and/or drone. The new holder's
// feasibility is validated before the old one is freed, so a refused
// replacement leaves the previous assignment intact.
func (c *Coordinator) Reassign(missionID, newPilotID, newDroneID, reason string) Result {
	res := c.reassign(missionID, newPilotID, newDroneID, reason)
	c.record(audit.KindReassign, missionID, newPilotID, newDroneID, reason, res)
	return res
}

func (c *Coordinator) reassign(missionID, newPilotID, newDroneID, reason string) Result {
	mission, ok := c.store.Mission(missionID)
	if !ok {
		return failure("Mission %s not found", missionID)
	}

	var messages []string

	if newPilotID != "" {
		newPilot, ok := c.store.Pilot(newPilotID)
		if !ok {
			return failure("Pilot %s not found", newPilotID)
		}
		if res, ok := validatePilotCoverage(newPilot, mission); !ok {
			return res
		}
		if old := mission.AssignedPilotID; old != "" && old != newPilotID {
			if err := c.freePilot(old); err != nil {
				return failure("%v", err)
			}
		}
		if res := c.assignPilot(newPilotID, missionID); !res.Success {
			return res
		}
		messages = append(messages, fmt.Sprintf("Pilot reassigned to %s", newPilotID))
	}

	if newDroneID != "" {
		newDrone, ok := c.store.Drone(newDroneID)
		if !ok {
			return failure("Drone %s not found", newDroneID)
		}
		if !newDrone.CanServe(mission.RequiredSkills) {
			return failure("Drone does not have required capabilities for this mission")
		}
		if old := mission.AssignedDroneID; old != "" && old != newDroneID {
			if err := c.freeDrone(old); err != nil {
				return failure("%v", err)
			}
		}
		if res := c.assignDrone(newDroneID, missionID); !res.Success {
			return res
		}
		messages = append(messages, fmt.Sprintf("Drone reassigned to %s", newDroneID))
	}

	if err := c.store.Save(); err != nil {
		c.log.Errorf("save after reassignment: %v", err)
		return failure("Mission %s reassigned but saving failed: %v", missionID, err)
	}

	message := strings.Join(messages, ". ")
	if reason != "" {
		message += fmt.Sprintf(". Reason: %s", reason)
	}
	c.log.Infof("reassigned mission %s: %s", missionID, message)
	return Result{Success: true, Message: message}
}

func (c *Coordinator) freePilot(pilotID string) error {
	return c.store.UpdatePilot(pilotID, func(p *model.Pilot) {
		p.Status = model.PilotAvailable
		p.CurrentAssignment = ""
	})
}

func (c *Coordinator) freeDrone(droneID string) error {
	return c.store.UpdateDrone(droneID, func(d *model.Drone) {
		d.Status = model.DroneAvailable
		d.CurrentAssignment = ""
	})
}

// ClearPilot unbinds the mission's pilot and frees them. An active mission
// reverts to pending.
func (c *Coordinator) ClearPilot(missionID string) Result {
	mission, ok := c.store.Mission(missionID)
	if !ok {
		return failure("Mission %s not found", missionID)
	}
	if mission.AssignedPilotID == "" {
		return failure("Mission %s has no assigned pilot", missionID)
	}
	if err := c.freePilot(mission.AssignedPilotID); err != nil {
		return failure("%v", err)
	}
	if err := c.store.UpdateMission(missionID, func(m *model.Mission) {
		m.AssignedPilotID = ""
		if m.Status == model.MissionActive {
			m.Status = model.MissionPending
		}
	}); err != nil {
		return failure("%v", err)
	}
	if err := c.store.Save(); err != nil {
		return failure("Pilot cleared from mission %s but saving failed: %v", missionID, err)
	}
	return success("Pilot cleared from mission %s", missionID)
}

// ClearDrone unbinds the mission's drone and frees it. An active mission
// reverts to pending.
func (c *Coordinator) ClearDrone(missionID string) Result {
	mission, ok := c.store.Mission(missionID)
	if !ok {
		return failure("Mission %s not found", missionID)
	}
	if mission.AssignedDroneID == "" {
		return failure("Mission %s has no assigned drone", missionID)
	}
	if err := c.freeDrone(mission.AssignedDroneID); err != nil {
		return failure("%v", err)
	}
	if err := c.store.UpdateMission(missionID, func(m *model.Mission) {
		m.AssignedDroneID = ""
		if m.Status == model.MissionActive {
			m.Status = model.MissionPending
		}
	}); err != nil {
		return failure("%v", err)
	}
	if err := c.store.Save(); err != nil {
		return failure("Drone cleared from mission %s but saving failed: %v", missionID, err)
	}
	return success("Drone cleared from mission %s", missionID)
}

// UpdatePilotStatus sets the pilot's status directly, bypassing conflict
// gating. The assignment reference is updated per the tri-state change.
func (c *Coordinator) UpdatePilotStatus(pilotID string, status model.PilotStatus, change store.AssignmentChange) Result {
	res := c.updatePilotStatus(pilotID, status, change)
	c.record(audit.KindStatusUpdate, "", pilotID, "", "", res)
	return res
}

func (c *Coordinator) updatePilotStatus(pilotID string, status model.PilotStatus, change store.AssignmentChange) Result {
	if !status.Valid() {
		return failure("Unknown pilot status %q", status)
	}
	if err := c.store.UpdatePilot(pilotID, func(p *model.Pilot) {
		p.Status = status
		p.CurrentAssignment = change.Apply(p.CurrentAssignment)
	}); err != nil {
		return failure("%v", err)
	}
	if err := c.store.Save(); err != nil {
		return failure("Pilot %s updated but saving failed: %v", pilotID, err)
	}
	c.publishStatus("pilot", pilotID, string(status))
	return success("Pilot %s status updated to %s", pilotID, status)
}

// UpdateDroneStatus sets the drone's status directly, bypassing conflict
// gating. An empty location keeps the current one.
func (c *Coordinator) UpdateDroneStatus(droneID string, status model.DroneStatus, location string, change store.AssignmentChange) Result {
	res := c.updateDroneStatus(droneID, status, location, change)
	c.record(audit.KindStatusUpdate, "", "", droneID, "", res)
	return res
}

func (c *Coordinator) updateDroneStatus(droneID string, status model.DroneStatus, location string, change store.AssignmentChange) Result {
	if !status.Valid() {
		return failure("Unknown drone status %q", status)
	}
	if err := c.store.UpdateDrone(droneID, func(d *model.Drone) {
		d.Status = status
		if location != "" {
			d.Location = location
		}
		d.CurrentAssignment = change.Apply(d.CurrentAssignment)
	}); err != nil {
		return failure("%v", err)
	}
	if err := c.store.Save(); err != nil {
		return failure("Drone %s updated but saving failed: %v", droneID, err)
	}
	c.publishStatus("drone", droneID, string(status))
	return success("Drone %s status updated to %s", droneID, status)
}

func (c *Coordinator) publishStatus(kind, id, status string) {
	c.mu.Lock()
	bus := c.bus
	c.mu.Unlock()
	if bus != nil {
		bus.Publish(events.StatusEvent{EntityKind: kind, EntityID: id, Status: status, Time: time.Now()})
	}
}

// record fans the outcome out to metrics, the audit log and the event bus.
func (c *Coordinator) record(kind, missionID, pilotID, droneID, reason string, res Result) {
	assignmentsTotal.WithLabelValues(kind, outcomeLabel(res.Success)).Inc()

	c.mu.Lock()
	bus, auditStore, sink := c.bus, c.audit, c.sink
	c.mu.Unlock()

	now := time.Now()
	// Status changes reach the bus as StatusEvent via publishStatus.
	if bus != nil && kind != audit.KindStatusUpdate {
		bus.Publish(events.AssignmentEvent{
			Kind:      kind,
			MissionID: missionID,
			PilotID:   pilotID,
			DroneID:   droneID,
			Reason:    reason,
			Success:   res.Success,
			Message:   res.Message,
			Time:      now,
		})
	}
	if auditStore != nil {
		err := auditStore.Append(context.Background(), audit.Record{
			ID:        uuid.NewString(),
			Timestamp: now,
			Kind:      kind,
			MissionID: missionID,
			PilotID:   pilotID,
			DroneID:   droneID,
			Success:   res.Success,
			Message:   res.Message,
			Reason:    reason,
		})
		if err != nil {
			c.log.Errorf("audit append: %v", err)
		}
	}
	if sink != nil {
		err := sink.RecordAssignment(metrics.AssignmentEvent{
			Kind:      kind,
			MissionID: missionID,
			PilotID:   pilotID,
			DroneID:   droneID,
			Success:   res.Success,
			Time:      now,
		})
		if err != nil {
			c.log.Errorf("metrics error: %v", err)
		}
	}
}

func outcomeLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
