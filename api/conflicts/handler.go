// Package conflicts exposes the conflict engine's sweep over HTTP.
package conflicts

import (
	"encoding/json"
	"net/http"

	"github.com/skyops/skycoord/core/conflict"
)

// NewSweepHandler returns an HTTP handler exposing conflict detection via
// GET /api/conflicts. Without parameters every open mission is swept; a
// mission_id parameter restricts the check to one mission.
func NewSweepHandler(engine *conflict.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var found []conflict.Conflict
		if missionID := r.URL.Query().Get("mission_id"); missionID != "" {
			found = engine.CheckMission(missionID)
		} else {
			found = engine.DetectAll()
		}
		grouped := conflict.GroupBySeverity(found)
		if grouped.Critical == nil {
			grouped.Critical = []conflict.Conflict{}
		}
		if grouped.High == nil {
			grouped.High = []conflict.Conflict{}
		}
		if grouped.Medium == nil {
			grouped.Medium = []conflict.Conflict{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(grouped); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
