package engine

import (
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/utils"
)

// GraceMinutes returns the post-midnight grace window configured by
// dayEndTime, in minutes after midnight. Only the hour decides whether there
// is a window at all: it must fall between 01 and 11, so 00:xx, noon or
// later, and malformed values give none.
func GraceMinutes(dayEndTime string) int {
	m, err := utils.ParseTimeToMinutes(dayEndTime)
	if err != nil {
		return 0
	}
	if hour := m / 60; hour <= 0 || m >= constants.GraceCutoffMinutes {
		return 0
	}
	return m
}

// EffectiveToday returns midnight of the day the user is living in. While
// the clock is inside the grace window, that is still the previous calendar day.
func EffectiveToday(now time.Time, dayEndTime string) time.Time {
	grace := GraceMinutes(dayEndTime)
	if grace > 0 && now.Hour()*60+now.Minute() < grace {
		return utils.AddDays(now, -1)
	}
	return utils.StartOfDay(now)
}

// EffectiveTodayKey is EffectiveToday formatted as a day key.
func EffectiveTodayKey(now time.Time, dayEndTime string) string {
	return utils.DayKey(EffectiveToday(now, dayEndTime))
}
