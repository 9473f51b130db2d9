package store

// AssignmentChange expresses what a status update should do with an entity's
// current assignment reference: leave it alone, set it to a mission id, or
// clear it. It replaces the sentinel "unset" convention with an explicit
// tri-state value.
type AssignmentChange struct {
	kind changeKind
	id   string
}

type changeKind int

const (
	changeKeep changeKind = iota
	changeSet
	changeClear
)

// KeepAssignment leaves the current assignment untouched.
func KeepAssignment() AssignmentChange { return AssignmentChange{kind: changeKeep} }

// SetAssignment binds the entity to the given mission id.
func SetAssignment(missionID string) AssignmentChange {
	return AssignmentChange{kind: changeSet, id: missionID}
}

// ClearAssignment removes the current assignment reference.
func ClearAssignment() AssignmentChange { return AssignmentChange{kind: changeClear} }

// Apply returns the new assignment value given the current one.
func (c AssignmentChange) Apply(current string) string {
	switch c.kind {
	case changeSet:
		return c.id
	case changeClear:
		return ""
	default:
		return current
	}
}
