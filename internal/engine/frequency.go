package engine

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// ParseFrequencyConfig decodes a legacy JSON description into a policy,
// falling back to the every-day defaults. It never fails.
func ParseFrequencyConfig(description string) models.FrequencyConfig {
	cfg, _ := models.ParseFrequencyConfig(description)
	return cfg
}

// StartOfWeek returns midnight of the Monday starting date's week.
func StartOfWeek(date time.Time) time.Time {
	return utils.AddDays(date, -int(models.WeekdayOf(date)))
}

// WeekDays returns the seven days of the Monday-start week containing date.
func WeekDays(date time.Time) []time.Time {
	start := StartOfWeek(date)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = utils.AddDays(start, i)
	}
	return days
}

// IsEligibleDay reports whether date is a tracked day under h's policy.
// Only the specific-weekday policy excludes days.
func IsEligibleDay(h models.Habit, date time.Time) bool {
	if h.Frequency.Type != models.FrequencySpecific {
		return true
	}
	return h.Frequency.Includes(models.WeekdayOf(date))
}

// WeeklyTarget is the number of goal-met days a week needs.
func WeeklyTarget(h models.Habit) int {
	if h.IsFlexible() {
		return h.Frequency.DaysPerWeek
	}
	return 7
}

// WeeklyCompletions counts goal-met days in the Monday-start week containing date.
func WeeklyCompletions(h models.Habit, date time.Time) int {
	n := 0
	for _, d := range WeekDays(date) {
		if IsDayGoalMet(h, d) {
			n++
		}
	}
	return n
}

// IsWeeklyTargetMet reports whether the week containing date reached its quota.
func IsWeeklyTargetMet(h models.Habit, date time.Time) bool {
	return WeeklyCompletions(h, date) >= WeeklyTarget(h)
}
