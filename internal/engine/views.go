package engine

import (
	"math"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// ReportRange selects the span of a report.
type ReportRange string

const (
	RangeWeek  ReportRange = "week"
	RangeMonth ReportRange = "month"
	RangeYear  ReportRange = "year"
)

// WeekStrip classifies the seven days of the Monday-start week containing ref.
func WeekStrip(h models.Habit, ref, now time.Time, dayEndTime string) []DayStatus {
	days := WeekDays(ref)
	out := make([]DayStatus, len(days))
	for i, d := range days {
		out[i] = Classify(h, d, now, dayEndTime)
	}
	return out
}

// MonthGrid is a calendar month laid out Monday-first.
type MonthGrid struct {
	Year    int
	Month   time.Month
	Leading int // blank cells before the 1st
	Days    []DayStatus
}

// BuildMonthGrid classifies every day of month in loc.
func BuildMonthGrid(h models.Habit, year int, month time.Month, loc *time.Location, now time.Time, dayEndTime string) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	grid := MonthGrid{Year: year, Month: month, Leading: int(models.WeekdayOf(first))}
	for d := first; d.Month() == month; d = utils.AddDays(d, 1) {
		grid.Days = append(grid.Days, Classify(h, d, now, dayEndTime))
	}
	return grid
}

// RangeDays lists the days of the week, month or year containing view.
func RangeDays(r ReportRange, view time.Time) []time.Time {
	var start, end time.Time
	switch r {
	case RangeMonth:
		start = time.Date(view.Year(), view.Month(), 1, 0, 0, 0, 0, view.Location())
		end = time.Date(view.Year(), view.Month()+1, 0, 0, 0, 0, 0, view.Location())
	case RangeYear:
		start = time.Date(view.Year(), time.January, 1, 0, 0, 0, 0, view.Location())
		end = time.Date(view.Year(), time.December, 31, 0, 0, 0, 0, view.Location())
	default:
		start = StartOfWeek(view)
		end = utils.AddDays(start, 6)
	}

	var days []time.Time
	for d := start; !d.After(end); d = utils.AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// Heatmap classifies each of days for a report.
func Heatmap(h models.Habit, days []time.Time, now time.Time, dayEndTime string) []DayStatus {
	out := make([]DayStatus, len(days))
	for i, d := range days {
		out[i] = Classify(h, d, now, dayEndTime)
	}
	return out
}

// CompletionRate is the rounded percentage of days classified completed.
func CompletionRate(h models.Habit, days []time.Time, now time.Time, dayEndTime string) int {
	if len(days) == 0 {
		return 0
	}
	completed := 0
	for _, d := range days {
		if Classify(h, d, now, dayEndTime).Status == StatusCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(days)) * 100))
}
