// Package roster exposes read-only HTTP handlers for the entity collections.
package roster

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/skyops/skycoord/core/model"
	"github.com/skyops/skycoord/core/store"
)

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// NewPilotsHandler returns an HTTP handler exposing the pilot roster via
// GET /api/roster/pilots. Skills and certifications are comma-separated and
// must all be held by a matching pilot.
func NewPilotsHandler(st *store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := store.PilotQuery{
			Skills:         splitTags(r.URL.Query().Get("skills")),
			Certifications: splitTags(r.URL.Query().Get("certifications")),
			Location:       r.URL.Query().Get("location"),
			Status:         model.PilotStatus(r.URL.Query().Get("status")),
		}
		pilots := st.QueryPilots(q)
		if pilots == nil {
			pilots = []model.Pilot{}
		}
		writeJSON(w, pilots)
	})
}

// NewDronesHandler returns an HTTP handler exposing the drone fleet via
// GET /api/roster/drones.
func NewDronesHandler(st *store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := store.DroneQuery{
			Capabilities: splitTags(r.URL.Query().Get("capabilities")),
			Location:     r.URL.Query().Get("location"),
			Status:       model.DroneStatus(r.URL.Query().Get("status")),
		}
		drones := st.QueryDrones(q)
		if drones == nil {
			drones = []model.Drone{}
		}
		writeJSON(w, drones)
	})
}

// NewMissionsHandler returns an HTTP handler exposing missions via
// GET /api/missions. The status filter accepts a lifecycle state or "open".
func NewMissionsHandler(st *store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var missions []model.Mission
		switch status := r.URL.Query().Get("status"); {
		case status == "":
			missions = st.Missions()
		case strings.EqualFold(status, "open"):
			missions = st.OpenMissions()
		default:
			missions = st.MissionsByStatus(model.MissionStatus(status))
		}
		if pilotID := r.URL.Query().Get("pilot_id"); pilotID != "" {
			missions = filterByPilot(missions, pilotID)
		}
		if missions == nil {
			missions = []model.Mission{}
		}
		writeJSON(w, missions)
	})
}

func filterByPilot(missions []model.Mission, pilotID string) []model.Mission {
	var res []model.Mission
	for _, m := range missions {
		if m.AssignedPilotID == pilotID {
			res = append(res, m)
		}
	}
	return res
}
