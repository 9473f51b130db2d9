package assign

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/skycoord/core/audit"
	"github.com/skyops/skycoord/core/events"
	"github.com/skyops/skycoord/core/model"
	"github.com/skyops/skycoord/core/store"
	"github.com/skyops/skycoord/infra/logger"
	"github.com/skyops/skycoord/internal/eventbus"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seeded(t *testing.T, p store.Persister) (*store.Store, *Coordinator) {
	t.Helper()
	st := store.New(p)
	require.NoError(t, st.AddPilot(model.Pilot{
		ID: "P1", Name: "Asha", Skills: []string{"Aerial Photography", "Mapping"},
		Certifications: []string{"Part 107"}, Location: "Bangalore",
		Status: model.PilotAvailable, ExperienceHours: 1200, PriorityLevel: 2,
	}))
	require.NoError(t, st.AddPilot(model.Pilot{
		ID: "P2", Name: "Ravi", Skills: []string{"Mapping"},
		Location: "Chennai", Status: model.PilotAvailable,
	}))
	require.NoError(t, st.AddDrone(model.Drone{
		ID: "D1", Model: "AgriScout X2", Capabilities: []string{"Multispectral Camera", "Mapping"},
		Location: "Bangalore", Status: model.DroneAvailable,
	}))
	require.NoError(t, st.AddMission(model.Mission{
		ID: "M1", ClientName: "GreenFields", Location: "Bangalore",
		RequiredSkills:         []string{"Mapping"},
		RequiredCertifications: []string{"Part 107"},
		StartDate:              day("2026-03-01"), EndDate: day("2026-03-05"),
		Priority: 2, Status: model.MissionPending,
	}))
	require.NoError(t, st.AddMission(model.Mission{
		ID: "M2", Location: "Chennai",
		StartDate: day("2026-03-10"), EndDate: day("2026-03-12"),
		Priority:  4, Status: model.MissionPending,
	}))
	c, err := New(st, logger.NopLogger{})
	require.NoError(t, err)
	return st, c
}

func TestAssignPilot(t *testing.T) {
	st, c := seeded(t, nil)

	res := c.AssignPilot("P1", "M1")
	require.True(t, res.Success)
	assert.Equal(t, "Pilot P1 assigned to mission M1", res.Message)

	m, _ := st.Mission("M1")
	assert.Equal(t, "P1", m.AssignedPilotID)
	assert.Equal(t, model.MissionPending, m.Status, "no drone yet, mission stays pending")

	p, _ := st.Pilot("P1")
	assert.Equal(t, model.PilotAssigned, p.Status)
	assert.Equal(t, "M1", p.CurrentAssignment)
}

func TestAssignPilotMissingCoverage(t *testing.T) {
	st, c := seeded(t, nil)

	res := c.AssignPilot("P2", "M1")
	require.False(t, res.Success)
	assert.Equal(t, "Pilot missing required certifications: Part 107", res.Message)

	m, _ := st.Mission("M1")
	assert.Empty(t, m.AssignedPilotID, "failed assignment must not mutate the mission")

	res = c.AssignPilot("P2", "M2")
	assert.True(t, res.Success, "mission without requirements accepts any pilot")
}

func TestAssignPilotUnknownIDs(t *testing.T) {
	_, c := seeded(t, nil)
	assert.Equal(t, "Mission MX not found", c.AssignPilot("P1", "MX").Message)
	assert.Equal(t, "Pilot PX not found", c.AssignPilot("PX", "M1").Message)
}

func TestAssignDroneActivatesMission(t *testing.T) {
	st, c := seeded(t, nil)

	require.True(t, c.AssignPilot("P1", "M1").Success)
	res := c.AssignDrone("D1", "M1")
	require.True(t, res.Success)

	m, _ := st.Mission("M1")
	assert.Equal(t, model.MissionActive, m.Status, "both halves assigned promotes pending to active")
	d, _ := st.Drone("D1")
	assert.Equal(t, model.DroneDeployed, d.Status)
	assert.Equal(t, "M1", d.CurrentAssignment)
}

func TestAssignDroneNoRequiredSkills(t *testing.T) {
	st, c := seeded(t, nil)

	// M2 lists no required skills, so any drone qualifies.
	res := c.AssignDrone("D1", "M2")
	require.True(t, res.Success)
	m, _ := st.Mission("M2")
	assert.Equal(t, "D1", m.AssignedDroneID)
	assert.Equal(t, model.MissionPending, m.Status)
}

func TestAssignDroneCapabilityMismatch(t *testing.T) {
	st, c := seeded(t, nil)
	require.NoError(t, st.AddMission(model.Mission{
		ID: "M3", Location: "Bangalore", RequiredSkills: []string{"Thermal Imaging"},
		StartDate: day("2026-04-01"), EndDate: day("2026-04-02"),
		Status: model.MissionPending,
	}))

	res := c.AssignDrone("D1", "M3")
	require.False(t, res.Success)
	assert.Equal(t, "Drone does not have required capabilities for this mission", res.Message)
}

func TestReassignPilot(t *testing.T) {
	st, c := seeded(t, nil)
	require.NoError(t, st.UpdatePilot("P2", func(p *model.Pilot) {
		p.Certifications = []string{"part 107"}
	}))
	require.True(t, c.AssignPilot("P1", "M1").Success)

	res := c.Reassign("M1", "P2", "", "P1 called in sick")
	require.True(t, res.Success)
	assert.Equal(t, "Pilot reassigned to P2. Reason: P1 called in sick", res.Message)

	old, _ := st.Pilot("P1")
	assert.Equal(t, model.PilotAvailable, old.Status)
	assert.Empty(t, old.CurrentAssignment)

	repl, _ := st.Pilot("P2")
	assert.Equal(t, model.PilotAssigned, repl.Status)
	assert.Equal(t, "M1", repl.CurrentAssignment)

	m, _ := st.Mission("M1")
	assert.Equal(t, "P2", m.AssignedPilotID)
}

func TestReassignRefusedKeepsOldHolder(t *testing.T) {
	st, c := seeded(t, nil)
	require.True(t, c.AssignPilot("P1", "M1").Success)

	// P2 lacks the certification, so the swap is refused before P1 is freed.
	res := c.Reassign("M1", "P2", "", "swap attempt")
	require.False(t, res.Success)

	old, _ := st.Pilot("P1")
	assert.Equal(t, model.PilotAssigned, old.Status)
	assert.Equal(t, "M1", old.CurrentAssignment)
	m, _ := st.Mission("M1")
	assert.Equal(t, "P1", m.AssignedPilotID)
}

func TestReassignPilotAndDrone(t *testing.T) {
	st, c := seeded(t, nil)
	require.NoError(t, st.AddDrone(model.Drone{
		ID: "D2", Model: "SkyMapper", Capabilities: []string{"Mapping"},
		Location: "Bangalore", Status: model.DroneAvailable,
	}))
	require.True(t, c.AssignPilot("P1", "M1").Success)
	require.True(t, c.AssignDrone("D1", "M1").Success)

	res := c.Reassign("M1", "", "D2", "battery fault")
	require.True(t, res.Success)
	assert.Equal(t, "Drone reassigned to D2. Reason: battery fault", res.Message)

	old, _ := st.Drone("D1")
	assert.Equal(t, model.DroneAvailable, old.Status)
	assert.Empty(t, old.CurrentAssignment)
	m, _ := st.Mission("M1")
	assert.Equal(t, "D2", m.AssignedDroneID)
	assert.Equal(t, model.MissionActive, m.Status)
}

func TestClearPilotRevertsActiveMission(t *testing.T) {
	st, c := seeded(t, nil)
	require.True(t, c.AssignPilot("P1", "M1").Success)
	require.True(t, c.AssignDrone("D1", "M1").Success)

	res := c.ClearPilot("M1")
	require.True(t, res.Success)

	m, _ := st.Mission("M1")
	assert.Empty(t, m.AssignedPilotID)
	assert.Equal(t, model.MissionPending, m.Status)
	p, _ := st.Pilot("P1")
	assert.Equal(t, model.PilotAvailable, p.Status)
}

func TestUpdateStatuses(t *testing.T) {
	st, c := seeded(t, nil)
	require.True(t, c.AssignPilot("P1", "M1").Success)

	res := c.UpdatePilotStatus("P1", model.PilotOnLeave, store.ClearAssignment())
	require.True(t, res.Success)
	p, _ := st.Pilot("P1")
	assert.Equal(t, model.PilotOnLeave, p.Status)
	assert.Empty(t, p.CurrentAssignment)

	res = c.UpdateDroneStatus("D1", model.DroneMaintenance, "Hyderabad", store.KeepAssignment())
	require.True(t, res.Success)
	d, _ := st.Drone("D1")
	assert.Equal(t, model.DroneMaintenance, d.Status)
	assert.Equal(t, "Hyderabad", d.Location)

	assert.False(t, c.UpdatePilotStatus("P1", "Retired", store.KeepAssignment()).Success)
	assert.False(t, c.UpdateDroneStatus("DX", model.DroneAvailable, "", store.KeepAssignment()).Success)
}

func TestStatusUpdateRecorded(t *testing.T) {
	_, c := seeded(t, nil)
	rec := &recordingAudit{}
	c.SetAuditStore(rec)
	bus := eventbus.New()
	defer bus.Close()
	ch := bus.Subscribe()
	c.SetEventBus(bus)

	require.True(t, c.UpdatePilotStatus("P1", model.PilotOnLeave, store.KeepAssignment()).Success)
	require.False(t, c.UpdateDroneStatus("DX", model.DroneAvailable, "", store.KeepAssignment()).Success)

	require.Len(t, rec.records, 2)
	assert.Equal(t, audit.KindStatusUpdate, rec.records[0].Kind)
	assert.Equal(t, "P1", rec.records[0].PilotID)
	assert.True(t, rec.records[0].Success)
	assert.Equal(t, audit.KindStatusUpdate, rec.records[1].Kind)
	assert.Equal(t, "DX", rec.records[1].DroneID)
	assert.False(t, rec.records[1].Success)

	select {
	case ev := <-ch:
		se, ok := ev.(events.StatusEvent)
		require.True(t, ok, "status changes publish StatusEvent, got %T", ev)
		assert.Equal(t, "pilot", se.EntityKind)
		assert.Equal(t, "P1", se.EntityID)
	default:
		t.Fatal("status event not published")
	}
	select {
	case ev := <-ch:
		t.Fatalf("unexpected extra event %T", ev)
	default:
	}
}

type failingPersister struct{}

func (failingPersister) Save(store.Snapshot) error { return errors.New("disk full") }
func (failingPersister) Load() (store.Snapshot, error) {
	return store.Snapshot{}, errors.New("disk full")
}

func TestSaveFailureReported(t *testing.T) {
	_, c := seeded(t, failingPersister{})
	res := c.AssignPilot("P1", "M1")
	require.False(t, res.Success)
	assert.Contains(t, res.Message, "saving failed")
}

func TestAuditTrailWritten(t *testing.T) {
	_, c := seeded(t, nil)
	rec := &recordingAudit{}
	c.SetAuditStore(rec)

	require.True(t, c.AssignPilot("P1", "M1").Success)
	require.False(t, c.AssignPilot("P2", "M1").Success)

	require.Len(t, rec.records, 2)
	assert.Equal(t, audit.KindAssignPilot, rec.records[0].Kind)
	assert.True(t, rec.records[0].Success)
	assert.False(t, rec.records[1].Success)
}

type recordingAudit struct {
	records []audit.Record
}

func (r *recordingAudit) Append(_ context.Context, rec audit.Record) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *recordingAudit) Query(context.Context, audit.Query) ([]audit.Record, error) {
	return r.records, nil
}

func (r *recordingAudit) Close() error { return nil }
