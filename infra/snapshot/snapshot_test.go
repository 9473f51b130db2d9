package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/skycoord/core/model"
	"github.com/skyops/skycoord/core/store"
)

func TestSaveAndLoad(t *testing.T) {
	fs, err := New(filepath.Join(t.TempDir(), "state", "snapshot.json"))
	require.NoError(t, err)

	snap := store.Snapshot{
		Pilots:   []model.Pilot{{ID: "P1", Name: "Asha", Status: model.PilotAvailable}},
		Drones:   []model.Drone{{ID: "D1", Model: "AgriScout X2", Status: model.DroneAvailable}},
		Missions: []model.Mission{{ID: "M1", Status: model.MissionPending}},
	}
	require.NoError(t, fs.Save(snap))

	got, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestLoadMissingFile(t *testing.T) {
	fs, err := New(filepath.Join(t.TempDir(), "snapshot.json"))
	require.NoError(t, err)

	snap, err := fs.Load()
	require.NoError(t, err)
	assert.Empty(t, snap.Pilots)
	assert.Empty(t, snap.Drones)
	assert.Empty(t, snap.Missions)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	fs, err := New(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err = fs.Load()
	assert.Error(t, err)
}
