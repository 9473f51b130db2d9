package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/skyops/skycoord/core/model"
)

// Snapshot is the full in-memory state handed to a Persister.
type Snapshot struct {
	Pilots   []model.Pilot   `json:"pilots"`
	Drones   []model.Drone   `json:"drones"`
	Missions []model.Mission `json:"missions"`
}

// Persister saves and loads the entity collections. Implementations give no
// transactional guarantee; a failed Save leaves the in-memory state ahead of
// the persisted one.
type Persister interface {
	Save(Snapshot) error
	Load() (Snapshot, error)
}

// Store owns the pilot, drone and mission collections. Reads are safe for
// concurrent use; mutating operations must be serialized by the caller, as
// assignment logic reads then writes multiple entities without atomicity.
// Iteration order is insertion order, which keeps sweeps deterministic.
type Store struct {
	mu         sync.RWMutex
	pilots     []model.Pilot
	drones     []model.Drone
	missions   []model.Mission
	pilotIdx   map[string]int
	droneIdx   map[string]int
	missionIdx map[string]int
	persister  Persister
}

// New creates an empty store. The persister may be nil, in which case Save is
// a no-op.
func New(p Persister) *Store {
	return &Store{
		pilotIdx:   make(map[string]int),
		droneIdx:   make(map[string]int),
		missionIdx: make(map[string]int),
		persister:  p,
	}
}

// LoadSnapshot replaces the collections with the snapshot contents.
func (s *Store) LoadSnapshot(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pilots = nil
	s.drones = nil
	s.missions = nil
	s.pilotIdx = make(map[string]int, len(snap.Pilots))
	s.droneIdx = make(map[string]int, len(snap.Drones))
	s.missionIdx = make(map[string]int, len(snap.Missions))
	for _, p := range snap.Pilots {
		if _, dup := s.pilotIdx[p.ID]; dup {
			return fmt.Errorf("duplicate pilot id %s", p.ID)
		}
		s.pilotIdx[p.ID] = len(s.pilots)
		s.pilots = append(s.pilots, p)
	}
	for _, d := range snap.Drones {
		if _, dup := s.droneIdx[d.ID]; dup {
			return fmt.Errorf("duplicate drone id %s", d.ID)
		}
		s.droneIdx[d.ID] = len(s.drones)
		s.drones = append(s.drones, d)
	}
	for _, m := range snap.Missions {
		if _, dup := s.missionIdx[m.ID]; dup {
			return fmt.Errorf("duplicate mission id %s", m.ID)
		}
		s.missionIdx[m.ID] = len(s.missions)
		s.missions = append(s.missions, m)
	}
	return nil
}

// Save hands the current snapshot to the persister.
func (s *Store) Save() error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Save(s.SnapshotCopy())
}

// SnapshotCopy returns a deep-enough copy of the collections for persistence
// or mirroring.
func (s *Store) SnapshotCopy() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Pilots:   append([]model.Pilot(nil), s.pilots...),
		Drones:   append([]model.Drone(nil), s.drones...),
		Missions: append([]model.Mission(nil), s.missions...),
	}
}

// AddPilot inserts a pilot. IDs must be unique.
func (s *Store) AddPilot(p model.Pilot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.pilotIdx[p.ID]; dup {
		return fmt.Errorf("duplicate pilot id %s", p.ID)
	}
	s.pilotIdx[p.ID] = len(s.pilots)
	s.pilots = append(s.pilots, p)
	return nil
}

// AddDrone inserts a drone. IDs must be unique.
func (s *Store) AddDrone(d model.Drone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.droneIdx[d.ID]; dup {
		return fmt.Errorf("duplicate drone id %s", d.ID)
	}
	s.droneIdx[d.ID] = len(s.drones)
	s.drones = append(s.drones, d)
	return nil
}

// AddMission inserts a mission. IDs must be unique.
func (s *Store) AddMission(m model.Mission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.missionIdx[m.ID]; dup {
		return fmt.Errorf("duplicate mission id %s", m.ID)
	}
	s.missionIdx[m.ID] = len(s.missions)
	s.missions = append(s.missions, m)
	return nil
}

// Pilot returns the pilot with the given id.
func (s *Store) Pilot(id string) (model.Pilot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.pilotIdx[id]
	if !ok {
		return model.Pilot{}, false
	}
	return s.pilots[i], true
}

// Drone returns the drone with the given id.
func (s *Store) Drone(id string) (model.Drone, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.droneIdx[id]
	if !ok {
		return model.Drone{}, false
	}
	return s.drones[i], true
}

// Mission returns the mission with the given id.
func (s *Store) Mission(id string) (model.Mission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.missionIdx[id]
	if !ok {
		return model.Mission{}, false
	}
	return s.missions[i], true
}

// Pilots returns a copy of the pilot roster.
func (s *Store) Pilots() []model.Pilot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Pilot(nil), s.pilots...)
}

// Drones returns a copy of the drone fleet.
func (s *Store) Drones() []model.Drone {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Drone(nil), s.drones...)
}

// Missions returns a copy of the mission list.
func (s *Store) Missions() []model.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Mission(nil), s.missions...)
}

// UpdatePilot applies fn to the stored pilot under the write lock.
func (s *Store) UpdatePilot(id string, fn func(*model.Pilot)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.pilotIdx[id]
	if !ok {
		return fmt.Errorf("pilot %s not found", id)
	}
	fn(&s.pilots[i])
	return nil
}

// UpdateDrone applies fn to the stored drone under the write lock.
func (s *Store) UpdateDrone(id string, fn func(*model.Drone)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.droneIdx[id]
	if !ok {
		return fmt.Errorf("drone %s not found", id)
	}
	fn(&s.drones[i])
	return nil
}

// UpdateMission applies fn to the stored mission under the write lock.
func (s *Store) UpdateMission(id string, fn func(*model.Mission)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.missionIdx[id]
	if !ok {
		return fmt.Errorf("mission %s not found", id)
	}
	fn(&s.missions[i])
	return nil
}

// MissionsByPilot returns every mission whose assigned pilot matches id.
func (s *Store) MissionsByPilot(id string) []model.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.Mission
	for _, m := range s.missions {
		if m.AssignedPilotID == id {
			res = append(res, m)
		}
	}
	return res
}

// MissionsByDrone returns every mission whose assigned drone matches id.
func (s *Store) MissionsByDrone(id string) []model.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.Mission
	for _, m := range s.missions {
		if m.AssignedDroneID == id {
			res = append(res, m)
		}
	}
	return res
}

// MissionsByStatus returns missions in the given lifecycle state.
func (s *Store) MissionsByStatus(st model.MissionStatus) []model.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.Mission
	for _, m := range s.missions {
		if m.Status == st {
			res = append(res, m)
		}
	}
	return res
}

// OpenMissions returns missions that are pending or active, in insertion order.
func (s *Store) OpenMissions() []model.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.Mission
	for _, m := range s.missions {
		if m.IsOpen() {
			res = append(res, m)
		}
	}
	return res
}

// PendingMissions returns missions awaiting assignment.
func (s *Store) PendingMissions() []model.Mission {
	return s.MissionsByStatus(model.MissionPending)
}

// AvailablePilots returns pilots generally available during the period:
// status Available or Assigned, and the availability window (when set)
// covering [start, end].
func (s *Store) AvailablePilots(start, end time.Time) []model.Pilot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.Pilot
	for _, p := range s.pilots {
		if p.Status != model.PilotAvailable && p.Status != model.PilotAssigned {
			continue
		}
		if p.AvailabilityStart != nil && start.Before(*p.AvailabilityStart) {
			continue
		}
		if p.AvailabilityEnd != nil && end.After(*p.AvailabilityEnd) {
			continue
		}
		res = append(res, p)
	}
	return res
}

// AvailableDrones returns drones usable during the period: status Available
// or Deployed and no maintenance due inside [start, end].
func (s *Store) AvailableDrones(start, end time.Time) []model.Drone {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.Drone
	for _, d := range s.drones {
		if d.Status != model.DroneAvailable && d.Status != model.DroneDeployed {
			continue
		}
		if d.MaintenanceDue != nil && model.DatesOverlap(start, end, *d.MaintenanceDue, *d.MaintenanceDue) {
			continue
		}
		res = append(res, d)
	}
	return res
}

// DronesInMaintenance returns drones currently held in maintenance.
func (s *Store) DronesInMaintenance() []model.Drone {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.Drone
	for _, d := range s.drones {
		if d.Status == model.DroneMaintenance {
			res = append(res, d)
		}
	}
	return res
}
