package roster

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skyops/skycoord/core/model"
	"github.com/skyops/skycoord/core/store"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func seeded(t *testing.T) *store.Store {
	t.Helper()
	st := store.New(nil)
	pilots := []model.Pilot{
		{ID: "P1", Name: "Asha", Skills: []string{"Mapping"}, Certifications: []string{"Part 107"}, Location: "Bangalore", Status: model.PilotAvailable},
		{ID: "P2", Name: "Ravi", Skills: []string{"Survey"}, Location: "Chennai", Status: model.PilotOnLeave},
	}
	for _, p := range pilots {
		if err := st.AddPilot(p); err != nil {
			t.Fatal(err)
		}
	}
	if err := st.AddDrone(model.Drone{ID: "D1", Capabilities: []string{"Mapping"}, Location: "Bangalore", Status: model.DroneAvailable}); err != nil {
		t.Fatal(err)
	}
	missions := []model.Mission{
		{ID: "M1", Location: "Bangalore", StartDate: day("2026-03-01"), EndDate: day("2026-03-05"), Status: model.MissionPending, AssignedPilotID: "P1"},
		{ID: "M2", Location: "Chennai", StartDate: day("2026-03-10"), EndDate: day("2026-03-12"), Status: model.MissionCompleted},
	}
	for _, m := range missions {
		if err := st.AddMission(m); err != nil {
			t.Fatal(err)
		}
	}
	return st
}

func get(t *testing.T, h http.Handler, url string, out any) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", url, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestPilotsHandler_Filters(t *testing.T) {
	h := NewPilotsHandler(seeded(t))

	var out []model.Pilot
	get(t, h, "/api/roster/pilots", &out)
	if len(out) != 2 {
		t.Fatalf("expected 2 pilots, got %d", len(out))
	}

	get(t, h, "/api/roster/pilots?skills=mapping&location=bangalore", &out)
	if len(out) != 1 || out[0].ID != "P1" {
		t.Fatalf("filter result %#v", out)
	}

	get(t, h, "/api/roster/pilots?status=On+Leave", &out)
	if len(out) != 1 || out[0].ID != "P2" {
		t.Fatalf("status filter result %#v", out)
	}
}

func TestPilotsHandler_MethodNotAllowed(t *testing.T) {
	h := NewPilotsHandler(seeded(t))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/roster/pilots", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", rr.Code)
	}
}

func TestDronesHandler(t *testing.T) {
	h := NewDronesHandler(seeded(t))
	var out []model.Drone
	get(t, h, "/api/roster/drones?capabilities=Mapping", &out)
	if len(out) != 1 || out[0].ID != "D1" {
		t.Fatalf("drone filter result %#v", out)
	}
	get(t, h, "/api/roster/drones?location=Hyderabad", &out)
	if len(out) != 0 {
		t.Fatalf("expected empty list, got %#v", out)
	}
}

func TestMissionsHandler(t *testing.T) {
	h := NewMissionsHandler(seeded(t))

	var out []model.Mission
	get(t, h, "/api/missions", &out)
	if len(out) != 2 {
		t.Fatalf("expected 2 missions, got %d", len(out))
	}

	get(t, h, "/api/missions?status=open", &out)
	if len(out) != 1 || out[0].ID != "M1" {
		t.Fatalf("open filter result %#v", out)
	}

	get(t, h, "/api/missions?pilot_id=P1", &out)
	if len(out) != 1 || out[0].ID != "M1" {
		t.Fatalf("pilot filter result %#v", out)
	}

	get(t, h, "/api/missions?status=Completed", &out)
	if len(out) != 1 || out[0].ID != "M2" {
		t.Fatalf("status filter result %#v", out)
	}
}
