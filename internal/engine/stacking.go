package engine

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

// StackLock reports whether h is locked on date because the habit it is
// stacked after has not been completed or skipped yet. A missing trigger
// never locks.
func StackLock(habits []models.Habit, h models.Habit, date, now time.Time, dayEndTime string) (locked bool, trigger *models.Habit) {
	if h.StackedAfterID == "" || h.StackedAfterID == h.ID {
		return false, nil
	}
	for i := range habits {
		if habits[i].ID != h.StackedAfterID {
			continue
		}
		switch Classify(habits[i], date, now, dayEndTime).Status {
		case StatusCompleted, StatusSkipped:
			return false, &habits[i]
		default:
			return true, &habits[i]
		}
	}
	return false, nil
}

// BlockStatus is a schedule block with the state of its linked habit.
type BlockStatus struct {
	Block   models.DailyBlock
	Habit   *models.Habit
	Day     *DayStatus
	Locked  bool
	Trigger *models.Habit
}

// ScheduleStatus classifies the habits linked from a day's schedule blocks.
func ScheduleStatus(habits []models.Habit, blocks []models.DailyBlock, date, now time.Time, dayEndTime string) []BlockStatus {
	out := make([]BlockStatus, len(blocks))
	for i, b := range blocks {
		out[i].Block = b
		if b.HabitID == "" {
			continue
		}
		for j := range habits {
			if habits[j].ID != b.HabitID {
				continue
			}
			ds := Classify(habits[j], date, now, dayEndTime)
			out[i].Habit = &habits[j]
			out[i].Day = &ds
			out[i].Locked, out[i].Trigger = StackLock(habits, habits[j], date, now, dayEndTime)
			break
		}
	}
	return out
}
