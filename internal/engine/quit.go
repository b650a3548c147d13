package engine

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

// Elapsed is a quit duration broken into display units.
type Elapsed struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// QuitElapsed is the time since start, clamped at zero.
func QuitElapsed(start, now time.Time) Elapsed {
	d := now.Sub(start)
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return Elapsed{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// TotalResets sums every relapse logged for a quit habit.
func TotalResets(h models.Habit) int {
	total := 0
	for _, key := range h.History.Keys() {
		if v, _ := DayValue(h, key); v > 0 {
			total += int(v)
		}
	}
	return total
}

// QuitSince is the moment the current clean run started: the quit start, or
// the start of the latest relapse day on or before today when that is later.
func QuitSince(h models.Habit, today time.Time) (time.Time, bool) {
	if h.QuitStart == nil {
		return time.Time{}, false
	}
	since := h.QuitStart.In(today.Location())
	if last, ok := LastRelapse(h, today); ok && last.After(since) {
		since = last
	}
	return since, true
}
