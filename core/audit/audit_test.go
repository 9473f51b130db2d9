package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	base := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	return []Record{
		{ID: "r1", Timestamp: base, Kind: KindAssignPilot, MissionID: "M1", PilotID: "P1", Success: true, Message: "Pilot P1 assigned to mission M1"},
		{ID: "r2", Timestamp: base.Add(time.Hour), Kind: KindAssignDrone, MissionID: "M1", DroneID: "D1", Success: true},
		{ID: "r3", Timestamp: base.Add(2 * time.Hour), Kind: KindReassign, MissionID: "M2", PilotID: "P2", Success: false, Reason: "pilot sick"},
	}
}

func runStoreTests(t *testing.T, s LogStore) {
	ctx := context.Background()
	for _, r := range sampleRecords() {
		require.NoError(t, s.Append(ctx, r))
	}

	all, err := s.Query(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "r1", all[0].ID)

	byMission, err := s.Query(ctx, Query{MissionID: "M1"})
	require.NoError(t, err)
	assert.Len(t, byMission, 2)

	byKind, err := s.Query(ctx, Query{Kind: KindReassign})
	require.NoError(t, err)
	require.Len(t, byKind, 1)
	assert.Equal(t, "pilot sick", byKind[0].Reason)

	since, err := s.Query(ctx, Query{Start: time.Date(2026, 2, 10, 13, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Len(t, since, 2)

	require.NoError(t, s.Close())
}

func TestJSONLStore(t *testing.T) {
	s, err := NewJSONLStore(filepath.Join(t.TempDir(), "audit.jsonl"))
	require.NoError(t, err)
	runStoreTests(t, s)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	runStoreTests(t, s)
}
