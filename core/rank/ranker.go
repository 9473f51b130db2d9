// Package rank finds and scores replacement pilots for a mission.
package rank

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/skyops/skycoord/core/conflict"
	"github.com/skyops/skycoord/core/logger"
	"github.com/skyops/skycoord/core/metrics"
	"github.com/skyops/skycoord/core/model"
	"github.com/skyops/skycoord/core/store"
)

// Urgency grades how pressing a replacement search is. Critical urgency
// relaxes the ranking filter and admits candidates with critical conflicts.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// ParseUrgency normalizes s, defaulting to normal when empty.
func ParseUrgency(s string) (Urgency, error) {
	switch u := Urgency(strings.ToLower(strings.TrimSpace(s))); u {
	case "":
		return UrgencyNormal, nil
	case UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyCritical:
		return u, nil
	default:
		return "", fmt.Errorf("unknown urgency %q", s)
	}
}

// Weights tune the candidate score. Lower scores rank better.
type Weights struct {
	Priority   float64 // per priority level point
	Conflict   float64 // per detected conflict
	Location   float64 // flat penalty for a location mismatch
	Experience float64 // credit per experience hour
}

// DefaultWeights returns the standard scoring weights.
func DefaultWeights() Weights {
	return Weights{Priority: 1, Conflict: 5, Location: 10, Experience: 0.01}
}

// Candidate is one scored replacement pilot.
type Candidate struct {
	PilotID         string              `json:"pilot_id"`
	Name            string              `json:"name"`
	Location        string              `json:"location"`
	Status          model.PilotStatus   `json:"status"`
	ExperienceHours int                 `json:"experience_hours"`
	PriorityLevel   int                 `json:"priority_level"`
	Score           float64             `json:"score"`
	Conflicts       []conflict.Conflict `json:"conflicts"`
	LocationMatch   bool                `json:"location_match"`
}

// Report is the outcome of one replacement search. TopCandidates is capped at
// three entries; CandidatesFound counts everyone who passed the filters.
type Report struct {
	MissionID       string      `json:"mission_id"`
	Urgency         Urgency     `json:"urgency"`
	CandidatesFound int         `json:"candidates_found"`
	TopCandidates   []Candidate `json:"top_candidates"`
	MeanScore       float64     `json:"mean_score"`
	ScoreStdDev     float64     `json:"score_std_dev"`
}

// Roster provides the lookups the ranker needs. *store.Store satisfies it.
type Roster interface {
	Mission(id string) (model.Mission, bool)
	QueryPilots(q store.PilotQuery) []model.Pilot
	MissionsByPilot(id string) []model.Mission
}

// Ranker scores replacement pilots for missions.
type Ranker struct {
	roster   Roster
	weights  Weights
	log      logger.Logger
	recorder metrics.RankRecorder
}

// New creates a Ranker with the default weights.
func New(roster Roster, log logger.Logger) (*Ranker, error) {
	if roster == nil || log == nil {
		return nil, fmt.Errorf("rank: nil parameter provided to New")
	}
	return &Ranker{roster: roster, weights: DefaultWeights(), log: log}, nil
}

// SetWeights overrides the scoring weights.
func (r *Ranker) SetWeights(w Weights) { r.weights = w }

// SetRecorder configures the sink used to record replacement searches.
func (r *Ranker) SetRecorder(rec metrics.RankRecorder) { r.recorder = rec }

// FindReplacement ranks pilots able to take over the mission. Candidates are
// pilots covering all required skills and certifications, excluding those on
// leave or unavailable. Candidates with critical conflicts are dropped unless
// the urgency is critical. Lower scores rank first; ties keep roster order.
func (r *Ranker) FindReplacement(missionID string, urgency Urgency) (Report, error) {
	mission, ok := r.roster.Mission(missionID)
	if !ok {
		return Report{}, fmt.Errorf("mission %s not found", missionID)
	}
	if urgency == "" {
		urgency = UrgencyNormal
	}

	pool := r.roster.QueryPilots(store.PilotQuery{
		Skills:         mission.RequiredSkills,
		Certifications: mission.RequiredCertifications,
	})

	var candidates []Candidate
	for _, pilot := range pool {
		if pilot.Status == model.PilotOnLeave || pilot.Status == model.PilotUnavailable {
			continue
		}
		conflicts := conflict.PilotConflicts(pilot, mission, r.roster.MissionsByPilot(pilot.ID))
		if conflict.HasCritical(conflicts) && urgency != UrgencyCritical {
			continue
		}
		locationMatch := model.SameLocation(pilot.Location, mission.Location)
		candidates = append(candidates, Candidate{
			PilotID:         pilot.ID,
			Name:            pilot.Name,
			Location:        pilot.Location,
			Status:          pilot.Status,
			ExperienceHours: pilot.ExperienceHours,
			PriorityLevel:   pilot.PriorityLevel,
			Score:           r.score(pilot, len(conflicts), locationMatch),
			Conflicts:       conflicts,
			LocationMatch:   locationMatch,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score < candidates[j].Score
	})

	report := Report{
		MissionID:       missionID,
		Urgency:         urgency,
		CandidatesFound: len(candidates),
		TopCandidates:   candidates,
	}
	if len(report.TopCandidates) > 3 {
		report.TopCandidates = report.TopCandidates[:3]
	}
	if len(candidates) > 0 {
		scores := make([]float64, len(candidates))
		for i, c := range candidates {
			scores[i] = c.Score
		}
		report.MeanScore = stat.Mean(scores, nil)
		if len(scores) > 1 {
			report.ScoreStdDev = stat.StdDev(scores, nil)
		}
	}

	r.log.Debugw("replacement search", map[string]any{
		"mission_id": missionID,
		"urgency":    string(urgency),
		"candidates": len(candidates),
	})
	if r.recorder != nil {
		err := r.recorder.RecordRank(metrics.RankEvent{
			MissionID:  missionID,
			Urgency:    string(urgency),
			Candidates: len(candidates),
			Time:       time.Now(),
		})
		if err != nil {
			r.log.Errorf("metrics error: %v", err)
		}
	}
	return report, nil
}

func (r *Ranker) score(pilot model.Pilot, conflictCount int, locationMatch bool) float64 {
	score := float64(pilot.PriorityLevel) * r.weights.Priority
	score += float64(conflictCount) * r.weights.Conflict
	if !locationMatch {
		score += r.weights.Location
	}
	score -= float64(pilot.ExperienceHours) * r.weights.Experience
	return score
}
