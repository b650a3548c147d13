package engine

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// CurrentStreak derives the running streak of h as of now.
//
// Daily policies count consecutive goal-met days back from today; skipped
// and non-eligible days neither count nor break the run, and today only
// counts once met. Flexible policies count consecutive weeks whose quota was
// met, the current week only once met. Quit habits count whole days since
// the start or the last relapse. Weight habits have no streak.
func CurrentStreak(h models.Habit, now time.Time, dayEndTime string) int {
	today := EffectiveToday(now, dayEndTime)

	switch {
	case h.IsWeight():
		return 0
	case h.IsQuit():
		return quitStreak(h, today)
	case h.IsFlexible():
		return weeklyStreak(h, today)
	default:
		return dailyStreak(h, today)
	}
}

func earliestDay(h models.Habit, loc *time.Location) (time.Time, bool) {
	keys := h.History.Keys()
	if len(keys) == 0 {
		return time.Time{}, false
	}
	first, err := utils.ParseDateInLocation(keys[0], loc)
	if err != nil {
		return time.Time{}, false
	}
	return first, true
}

func dailyStreak(h models.Habit, today time.Time) int {
	first, ok := earliestDay(h, today.Location())
	if !ok {
		return 0
	}

	streak := 0
	if IsDayGoalMet(h, today) {
		streak++
	}
	for d := utils.AddDays(today, -1); !d.Before(first); d = utils.AddDays(d, -1) {
		if _, skipped := DayValue(h, utils.DayKey(d)); skipped {
			continue
		}
		if IsDayGoalMet(h, d) {
			streak++
			continue
		}
		if !IsEligibleDay(h, d) {
			continue
		}
		break
	}
	return streak
}

func weeklyStreak(h models.Habit, today time.Time) int {
	first, ok := earliestDay(h, today.Location())
	if !ok {
		return 0
	}

	streak := 0
	week := StartOfWeek(today)
	if IsWeeklyTargetMet(h, week) {
		streak++
	}
	for w := utils.AddDays(week, -7); !utils.AddDays(w, 6).Before(first); w = utils.AddDays(w, -7) {
		if !IsWeeklyTargetMet(h, w) {
			break
		}
		streak++
	}
	return streak
}

func quitStreak(h models.Habit, today time.Time) int {
	if h.QuitStart == nil {
		return 0
	}
	from := utils.StartOfDay(h.QuitStart.In(today.Location()))
	if last, ok := LastRelapse(h, today); ok && last.After(from) {
		from = last
	}
	if from.After(today) {
		return 0
	}
	return daysBetween(from, today)
}

// LastRelapse returns the latest day on or before today with a logged reset.
func LastRelapse(h models.Habit, today time.Time) (time.Time, bool) {
	todayKey := utils.DayKey(today)
	keys := h.History.Keys()
	for i := len(keys) - 1; i >= 0; i-- {
		if keys[i] > todayKey {
			continue
		}
		if v, _ := DayValue(h, keys[i]); v > 0 {
			d, err := utils.ParseDateInLocation(keys[i], today.Location())
			if err != nil {
				continue
			}
			return d, true
		}
	}
	return time.Time{}, false
}

// daysBetween counts calendar days from a to b, both at midnight.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
