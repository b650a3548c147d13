package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is a Monday-first day of the week: Monday=0 ... Sunday=6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// AllWeekdays lists every weekday in Monday-first order.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf returns the Monday-first weekday of t.
func WeekdayOf(t time.Time) Weekday {
	return FromTimeWeekday(t.Weekday())
}

// FromTimeWeekday converts Go's Sunday-first weekday to a Monday-first Weekday.
// This is the only place the two orderings are reconciled.
func FromTimeWeekday(wd time.Weekday) Weekday {
	return Weekday((int(wd) + 6) % 7)
}

// Time converts back to Go's Sunday-first weekday.
func (w Weekday) Time() time.Weekday {
	return time.Weekday((int(w) + 1) % 7)
}

// Valid reports whether w is within Monday..Sunday.
func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return w.Time().String()
}

// Short returns the three-letter abbreviation.
func (w Weekday) Short() string {
	return w.String()[:3]
}

// ParseWeekdays parses a comma-separated list of weekday names or Monday-first indexes.
func ParseWeekdays(s string) ([]Weekday, error) {
	dayMap := map[string]Weekday{
		"mon": Monday, "monday": Monday,
		"tue": Tuesday, "tuesday": Tuesday,
		"wed": Wednesday, "wednesday": Wednesday,
		"thu": Thursday, "thursday": Thursday,
		"fri": Friday, "friday": Friday,
		"sat": Saturday, "saturday": Saturday,
		"sun": Sunday, "sunday": Sunday,
	}

	var days []Weekday
	seen := make(map[Weekday]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		wd, ok := dayMap[part]
		if !ok {
			num, err := strconv.Atoi(part)
			if err != nil || !Weekday(num).Valid() {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
			wd = Weekday(num)
		}
		if !seen[wd] {
			seen[wd] = true
			days = append(days, wd)
		}
	}
	return days, nil
}

// FormatWeekdays renders days as a comma-separated list of abbreviations.
func FormatWeekdays(days []Weekday) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, d.Short())
	}
	return strings.Join(names, ",")
}
