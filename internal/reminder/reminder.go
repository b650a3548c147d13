// Package reminder finds habit reminders that are due and delivers each one
// at most once per habit, time and day.
package reminder

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Due is one reminder firing.
type Due struct {
	HabitID   string
	HabitName string
	Day       string
	Time      string
}

// Message is the notification body.
func (d Due) Message() string {
	return fmt.Sprintf("Time for your goal: %s!", d.HabitName)
}

// DueReminders lists the reminders whose time equals now's HH:MM and whose
// weekday list contains now's weekday. now must already be in the configured
// timezone. Nothing is due while notifications are disabled.
func DueReminders(st models.AppState, now time.Time) []Due {
	if !st.Settings.NotificationsEnabled {
		return nil
	}

	at := now.Format(constants.TimeFormat)
	wd := models.WeekdayOf(now)
	day := utils.DayKey(now)

	var due []Due
	for _, h := range st.Habits {
		seen := map[string]bool{}
		for _, r := range h.Reminders {
			if r.Time != at || seen[r.Time] || !containsDay(r.Days, wd) {
				continue
			}
			seen[r.Time] = true
			due = append(due, Due{HabitID: h.ID, HabitName: h.Name, Day: day, Time: r.Time})
		}
	}
	return due
}

// Upcoming lists today's remaining reminders from now on, ordered by time.
func Upcoming(st models.AppState, now time.Time) []Due {
	at := now.Format(constants.TimeFormat)
	wd := models.WeekdayOf(now)
	day := utils.DayKey(now)

	var out []Due
	for _, h := range st.Habits {
		for _, r := range h.Reminders {
			if r.Time < at || !containsDay(r.Days, wd) {
				continue
			}
			out = append(out, Due{HabitID: h.ID, HabitName: h.Name, Day: day, Time: r.Time})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

func containsDay(days []models.Weekday, wd models.Weekday) bool {
	for _, d := range days {
		if d == wd {
			return true
		}
	}
	return false
}
