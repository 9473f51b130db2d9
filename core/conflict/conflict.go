package conflict

// Severity grades how strongly a conflict should block an assignment.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
)

// Type tags the rule that produced a conflict.
type Type string

const (
	TypePilotOnLeave              Type = "PILOT_ON_LEAVE"
	TypePilotUnavailable          Type = "PILOT_UNAVAILABLE"
	TypePilotAvailabilityMismatch Type = "PILOT_AVAILABILITY_MISMATCH"
	TypeSkillMismatch             Type = "SKILL_MISMATCH"
	TypeCertificationMismatch     Type = "CERTIFICATION_MISMATCH"
	TypeLocationMismatch          Type = "LOCATION_MISMATCH"
	TypePilotDoubleBooking        Type = "PILOT_DOUBLE_BOOKING"
	TypeDroneInMaintenance        Type = "DRONE_IN_MAINTENANCE"
	TypeMaintenanceConflict       Type = "MAINTENANCE_CONFLICT"
	TypeDroneLocationMismatch     Type = "DRONE_LOCATION_MISMATCH"
	TypeDroneDoubleBooking        Type = "DRONE_DOUBLE_BOOKING"
	TypePilotDroneLocation        Type = "PILOT_DRONE_LOCATION_MISMATCH"
)

// Conflict is a detected rule violation between a candidate assignment and the
// current schedule. The shape is a stable contract with callers.
type Conflict struct {
	Type                  Type     `json:"type"`
	Severity              Severity `json:"severity"`
	Message               string   `json:"message"`
	PilotID               string   `json:"pilot_id,omitempty"`
	DroneID               string   `json:"drone_id,omitempty"`
	MissionID             string   `json:"mission_id,omitempty"`
	MissingSkills         []string `json:"missing_skills,omitempty"`
	MissingCertifications []string `json:"missing_certifications,omitempty"`
	ConflictingMissionID  string   `json:"conflicting_mission_id,omitempty"`
	MaintenanceDate       string   `json:"maintenance_date,omitempty"`
}

// HasCritical reports whether any conflict in the list is CRITICAL.
func HasCritical(conflicts []Conflict) bool {
	for _, c := range conflicts {
		if c.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// BySeverity groups a conflict list by severity.
type BySeverity struct {
	Total    int        `json:"total_count"`
	Critical []Conflict `json:"critical"`
	High     []Conflict `json:"high"`
	Medium   []Conflict `json:"medium"`
}

// GroupBySeverity splits conflicts into critical, high and medium buckets.
func GroupBySeverity(conflicts []Conflict) BySeverity {
	g := BySeverity{Total: len(conflicts)}
	for _, c := range conflicts {
		switch c.Severity {
		case SeverityCritical:
			g.Critical = append(g.Critical, c)
		case SeverityHigh:
			g.High = append(g.High, c)
		default:
			g.Medium = append(g.Medium, c)
		}
	}
	return g
}
