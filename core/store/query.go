package store

import (
	"strings"

	"github.com/skyops/skycoord/core/model"
)

// PilotQuery filters the pilot roster. Zero-valued fields are ignored.
// Skill and certification filters require the pilot to hold ALL listed tags.
type PilotQuery struct {
	Skills         []string
	Certifications []string
	Location       string
	Status         model.PilotStatus
}

// DroneQuery filters the drone fleet. Zero-valued fields are ignored.
// The capability filter requires the drone to hold ALL listed tags.
type DroneQuery struct {
	Capabilities []string
	Location     string
	Status       model.DroneStatus
}

// QueryPilots returns pilots matching all set criteria, in roster order.
func (s *Store) QueryPilots(q PilotQuery) []model.Pilot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.Pilot
	for _, p := range s.pilots {
		if len(q.Skills) > 0 && !model.HasAllTags(q.Skills, p.Skills) {
			continue
		}
		if len(q.Certifications) > 0 && !model.HasAllTags(q.Certifications, p.Certifications) {
			continue
		}
		if q.Location != "" && !model.SameLocation(p.Location, q.Location) {
			continue
		}
		if q.Status != "" && !strings.EqualFold(string(p.Status), string(q.Status)) {
			continue
		}
		res = append(res, p)
	}
	return res
}

// QueryDrones returns drones matching all set criteria, in fleet order.
func (s *Store) QueryDrones(q DroneQuery) []model.Drone {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.Drone
	for _, d := range s.drones {
		if len(q.Capabilities) > 0 && !model.HasAllTags(q.Capabilities, d.Capabilities) {
			continue
		}
		if q.Location != "" && !model.SameLocation(d.Location, q.Location) {
			continue
		}
		if q.Status != "" && !strings.EqualFold(string(d.Status), string(q.Status)) {
			continue
		}
		res = append(res, d)
	}
	return res
}
