package state

import (
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// SortedHabits orders habits morning, any, evening, keeping insertion order within a slot.
func SortedHabits(st models.AppState) []models.Habit {
	out := append([]models.Habit(nil), st.Habits...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeOfDay.Rank() < out[j].TimeOfDay.Rank()
	})
	return out
}

func HabitByID(st models.AppState, id string) (models.Habit, bool) {
	for _, h := range st.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

// HabitByName matches case-insensitively.
func HabitByName(st models.AppState, name string) (models.Habit, bool) {
	name = strings.TrimSpace(name)
	for _, h := range st.Habits {
		if strings.EqualFold(h.Name, name) {
			return h, true
		}
	}
	return models.Habit{}, false
}

// FindHabit resolves a reference that is either an ID, a name or a unique ID prefix.
func FindHabit(st models.AppState, ref string) (models.Habit, bool) {
	if h, ok := HabitByID(st, ref); ok {
		return h, true
	}
	if h, ok := HabitByName(st, ref); ok {
		return h, true
	}
	var match models.Habit
	n := 0
	for _, h := range st.Habits {
		if ref != "" && strings.HasPrefix(h.ID, ref) {
			match = h
			n++
		}
	}
	return match, n == 1
}

// MediaByType lists media of one type; an empty type lists everything.
func MediaByType(st models.AppState, t models.MediaType) []models.MediaItem {
	var out []models.MediaItem
	for _, m := range st.Media {
		if t == "" || m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

// FindMedia resolves a media item by ID or case-insensitive title.
func FindMedia(st models.AppState, ref string) (models.MediaItem, bool) {
	for _, m := range st.Media {
		if m.ID == ref {
			return m, true
		}
	}
	ref = strings.TrimSpace(ref)
	for _, m := range st.Media {
		if strings.EqualFold(m.Title, ref) {
			return m, true
		}
	}
	return models.MediaItem{}, false
}

// MediaChildren lists the direct children of a collection.
func MediaChildren(st models.AppState, parentID string) []models.MediaItem {
	var out []models.MediaItem
	for _, m := range st.Media {
		if m.ParentID == parentID {
			out = append(out, m)
		}
	}
	return out
}

// BlockStatuses pairs a day's schedule with the state of linked habits.
func BlockStatuses(st models.AppState, day time.Time, now time.Time) []engine.BlockStatus {
	return engine.ScheduleStatus(st.Habits, st.DailyBlocks[utils.DayKey(day)], day, now, st.Settings.DayEndTime)
}
