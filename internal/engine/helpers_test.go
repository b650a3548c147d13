package engine

import (
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

// 2024-06-10 is a Monday.
func day(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", key, time.UTC)
	if err != nil {
		t.Fatalf("bad day key %q: %v", key, err)
	}
	return d
}

func at(t *testing.T, key, clock string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02 15:04", key+" "+clock, time.UTC)
	if err != nil {
		t.Fatalf("bad timestamp %q %q: %v", key, clock, err)
	}
	return d
}

func countHabit(goal float64, history models.History) models.Habit {
	if history == nil {
		history = models.History{}
	}
	return models.Habit{
		ID:        "count",
		Name:      "Read",
		Kind:      models.KindCount,
		Goal:      goal,
		Unit:      models.UnitMinutes,
		Frequency: models.DefaultFrequency(),
		History:   history,
	}
}

func flexibleHabit(perWeek int, history models.History) models.Habit {
	h := countHabit(1, history)
	h.ID = "flex"
	h.Unit = models.UnitTimes
	h.Frequency = models.FrequencyConfig{Type: models.FrequencyDaysPer, DaysPerWeek: perWeek}
	return h
}

func checklistHabit(history models.History) models.Habit {
	return models.Habit{
		ID:        "list",
		Name:      "Routine",
		Kind:      models.KindChecklist,
		Goal:      1,
		Unit:      models.UnitTimes,
		Frequency: models.DefaultFrequency(),
		History:   history,
		Structure: []models.MicroHabit{
			{ID: "a", Title: "X"},
			{ID: "b", Title: "Y", SubHabits: []models.MicroHabit{{ID: "c", Title: "Z"}}},
		},
	}
}

func quitHabit(t *testing.T, start string, history models.History) models.Habit {
	t.Helper()
	s, err := time.ParseInLocation("2006-01-02T15:04", start, time.UTC)
	if err != nil {
		t.Fatalf("bad start %q: %v", start, err)
	}
	if history == nil {
		history = models.History{}
	}
	return models.Habit{
		ID:        "quit",
		Name:      "Smoking",
		Kind:      models.KindQuit,
		Unit:      models.UnitMinutes,
		QuitStart: &s,
		Frequency: models.DefaultFrequency(),
		History:   history,
	}
}
