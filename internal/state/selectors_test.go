package state

import (
	"testing"

	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
)

func TestSortedHabits(t *testing.T) {
	st := models.AppState{Habits: []models.Habit{
		{ID: "1", Name: "Night read", TimeOfDay: models.Evening},
		{ID: "2", Name: "Water", TimeOfDay: models.Anytime},
		{ID: "3", Name: "Stretch", TimeOfDay: models.Morning},
		{ID: "4", Name: "Walk", TimeOfDay: models.Anytime},
	}}

	got := SortedHabits(st)
	want := []string{"3", "2", "4", "1"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("SortedHabits order = %v, want %v", ids(got), want)
		}
	}
	if st.Habits[0].ID != "1" {
		t.Error("SortedHabits must not reorder the input")
	}
}

func ids(hs []models.Habit) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.ID
	}
	return out
}

func TestFindHabit(t *testing.T) {
	st := models.AppState{Habits: []models.Habit{
		{ID: "3f2a-aaaa", Name: "Skincare"},
		{ID: "3f9b-bbbb", Name: "Reading"},
	}}

	tests := []struct {
		name   string
		ref    string
		wantID string
		wantOK bool
	}{
		{"by id", "3f9b-bbbb", "3f9b-bbbb", true},
		{"by name any case", "skincare", "3f2a-aaaa", true},
		{"unique prefix", "3f2", "3f2a-aaaa", true},
		{"ambiguous prefix", "3f", "", false},
		{"unknown", "nope", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := FindHabit(st, tt.ref)
			if ok != tt.wantOK || (ok && h.ID != tt.wantID) {
				t.Errorf("FindHabit(%q) = %s, %v; want %s, %v", tt.ref, h.ID, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestBlockStatusesFromSeed(t *testing.T) {
	st := Seed(fixedNow)
	statuses := BlockStatuses(st, fixedNow, fixedNow)
	if len(statuses) != 4 {
		t.Fatalf("expected 4 seeded blocks, got %d", len(statuses))
	}
	first := statuses[0]
	if first.Habit == nil || first.Habit.ID != "h1" {
		t.Fatalf("expected first block linked to h1, got %+v", first)
	}
	if first.Day.Status != engine.StatusCompleted {
		t.Errorf("seeded skincare should be completed today, got %s", first.Day.Status)
	}
	if statuses[1].Habit != nil {
		t.Error("unlinked block should have no habit")
	}
}

func TestSeedIsValid(t *testing.T) {
	st := Seed(fixedNow)
	for _, h := range st.Habits {
		if err := h.Validate(); err != nil {
			t.Errorf("seed habit %s invalid: %v", h.Name, err)
		}
	}
	if st.WaterIntake["2024-06-12"] != 3 {
		t.Errorf("expected water intake on the seed day, got %v", st.WaterIntake)
	}
}

func TestFindMedia(t *testing.T) {
	st := Seed(fixedNow)
	tests := []struct {
		ref    string
		wantID string
		ok     bool
	}{
		{ref: "g1", wantID: "g1", ok: true},
		{ref: "elden ring", wantID: "g1", ok: true},
		{ref: " Dune ", wantID: "b2", ok: true},
		{ref: "Nope"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, ok := FindMedia(st, tt.ref)
			if ok != tt.ok || got.ID != tt.wantID {
				t.Errorf("FindMedia(%q) = %q, %v, want %q, %v", tt.ref, got.ID, ok, tt.wantID, tt.ok)
			}
		})
	}
}
