package model

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDatesOverlap_Symmetric(t *testing.T) {
	cases := []struct {
		s1, e1, s2, e2 string
		want           bool
	}{
		{"2026-02-10", "2026-02-15", "2026-02-12", "2026-02-20", true},
		{"2026-02-10", "2026-02-15", "2026-02-15", "2026-02-20", true}, // touching endpoints overlap
		{"2026-02-10", "2026-02-15", "2026-02-16", "2026-02-20", false},
		{"2026-01-01", "2026-01-02", "2026-03-01", "2026-03-02", false},
	}
	for _, c := range cases {
		got := DatesOverlap(day(c.s1), day(c.e1), day(c.s2), day(c.e2))
		if got != c.want {
			t.Errorf("DatesOverlap(%s,%s,%s,%s) = %v, want %v", c.s1, c.e1, c.s2, c.e2, got, c.want)
		}
		rev := DatesOverlap(day(c.s2), day(c.e2), day(c.s1), day(c.e1))
		if rev != got {
			t.Errorf("DatesOverlap not symmetric for %v", c)
		}
	}
}

func TestMissingTags_CaseInsensitive(t *testing.T) {
	missing := MissingTags([]string{"Mapping", "Survey"}, []string{"mapping", "Thermal"})
	if len(missing) != 1 || missing[0] != "Survey" {
		t.Fatalf("expected [Survey], got %v", missing)
	}
	if !HasAllTags([]string{"mapping"}, []string{"Mapping"}) {
		t.Errorf("expected case-insensitive coverage")
	}
}

func TestDroneCanServe(t *testing.T) {
	d := Drone{Capabilities: []string{"Thermal Imaging", "LiDAR Mapping"}}
	if !d.CanServe(nil) {
		t.Errorf("drone should qualify when no skills are required")
	}
	if !d.CanServe([]string{"mapping"}) {
		t.Errorf("substring capability match should qualify")
	}
	if d.CanServe([]string{"Spraying"}) {
		t.Errorf("unrelated skill should not qualify")
	}
}

func TestMissionIsOpen(t *testing.T) {
	if !(Mission{Status: MissionPending}).IsOpen() || !(Mission{Status: MissionActive}).IsOpen() {
		t.Errorf("pending and active missions are open")
	}
	if (Mission{Status: MissionCompleted}).IsOpen() || (Mission{Status: MissionCancelled}).IsOpen() {
		t.Errorf("completed and cancelled missions are not open")
	}
}
