package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

// HabitKind is the discriminant deciding how a habit's history is read.
type HabitKind string

// Unit is the measurement unit of a habit's goal.
type Unit string

// TimeOfDay groups habits on the dashboard.
type TimeOfDay string

// FrequencyType selects the frequency policy of count and checklist habits.
type FrequencyType string

// GoalDirection tells whether a weight habit aims down or up.
type GoalDirection string

const (
	KindCount     HabitKind = "count"
	KindChecklist HabitKind = "checklist"
	KindWeight    HabitKind = "weight"
	KindQuit      HabitKind = "quit"

	UnitTimes   Unit = "times"
	UnitMinutes Unit = "minutes"
	UnitKg      Unit = "kg"
	UnitLbs     Unit = "lbs"

	Morning TimeOfDay = "morning"
	Anytime TimeOfDay = "any"
	Evening TimeOfDay = "evening"

	FrequencyEvery    FrequencyType = "every"
	FrequencySpecific FrequencyType = "specific"
	FrequencyDaysPer  FrequencyType = "days_per"

	GoalLose GoalDirection = "lose"
	GoalGain GoalDirection = "gain"
)

// Rank orders times of day: morning, then any, then evening.
func (t TimeOfDay) Rank() int {
	switch t {
	case Morning:
		return 0
	case Evening:
		return 2
	default:
		return 1
	}
}

// IsWeightUnit reports whether u measures body weight.
func (u Unit) IsWeightUnit() bool {
	return u == UnitKg || u == UnitLbs
}

// FrequencyConfig is the completion policy of a habit.
type FrequencyConfig struct {
	Type        FrequencyType `json:"type"`
	Days        []Weekday     `json:"days,omitempty"`
	DaysPerWeek int           `json:"days_per_week"`
}

// DefaultFrequency returns the every-day policy.
func DefaultFrequency() FrequencyConfig {
	return FrequencyConfig{Type: FrequencyEvery, Days: []Weekday{}, DaysPerWeek: 7}
}

// IsFlexible reports whether the policy is N days per week on any days.
func (f FrequencyConfig) IsFlexible() bool {
	return f.Type == FrequencyDaysPer
}

// Includes reports whether wd is one of the configured specific days.
func (f FrequencyConfig) Includes(wd Weekday) bool {
	for _, d := range f.Days {
		if d == wd {
			return true
		}
	}
	return false
}

func (f FrequencyConfig) String() string {
	switch f.Type {
	case FrequencySpecific:
		return "on " + FormatWeekdays(f.Days)
	case FrequencyDaysPer:
		return fmt.Sprintf("%d days/week", f.DaysPerWeek)
	default:
		return "every day"
	}
}

// MicroHabit is a checklist node. Branches and leaves are both checkable.
type MicroHabit struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	SubHabits []MicroHabit `json:"sub_habits,omitempty"`
}

// Reminder fires at Time ("HH:MM") on each listed weekday.
type Reminder struct {
	Time string    `json:"time"`
	Days []Weekday `json:"days"`
}

type Habit struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Notes         string          `json:"notes,omitempty"`
	Color         string          `json:"color"`
	TimeOfDay     TimeOfDay       `json:"time_of_day"`
	Kind          HabitKind       `json:"kind"`
	Goal          float64         `json:"goal"`
	Increment     float64         `json:"increment,omitempty"`
	Unit          Unit            `json:"unit"`
	Frequency     FrequencyConfig `json:"frequency"`
	QuitStart     *time.Time      `json:"quit_start,omitempty"`
	GoalDirection GoalDirection   `json:"goal_direction,omitempty"`
	Streak        int             `json:"streak"`
	History       History         `json:"history"`

	Structure       []MicroHabit             `json:"structure,omitempty"`
	DailyStructures map[Weekday][]MicroHabit `json:"daily_structures,omitempty"`

	Reminders      []Reminder `json:"reminders,omitempty"`
	StackTrigger   string     `json:"stack_trigger,omitempty"`
	StackedAfterID string     `json:"stacked_after_id,omitempty"`
	TimerMinutes   int        `json:"timer_minutes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (h *Habit) IsQuit() bool      { return h.Kind == KindQuit }
func (h *Habit) IsWeight() bool    { return h.Kind == KindWeight }
func (h *Habit) IsChecklist() bool { return h.Kind == KindChecklist }

// IsFlexible reports whether the habit follows an N-days-per-week policy.
func (h *Habit) IsFlexible() bool {
	return h.Frequency.IsFlexible()
}

// HasStructure reports whether a default checklist is configured.
func (h *Habit) HasStructure() bool {
	return len(h.Structure) > 0
}

// Step returns the quick-add increment, falling back to the default.
func (h *Habit) Step() float64 {
	if h.Increment > 0 {
		return h.Increment
	}
	return constants.DefaultIncrement
}

// Validate checks the habit's own fields.
func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}

	switch h.Kind {
	case KindCount, KindChecklist:
		if h.Kind == KindCount && h.Goal <= 0 {
			return fmt.Errorf("goal must be positive for %s habits", h.Kind)
		}
		if err := h.Frequency.Validate(); err != nil {
			return err
		}
	case KindWeight:
		if !h.Unit.IsWeightUnit() {
			return fmt.Errorf("weight habits must use kg or lbs, got %q", h.Unit)
		}
		if h.Goal < 0 {
			return fmt.Errorf("target weight cannot be negative")
		}
	case KindQuit:
		if h.QuitStart == nil {
			return fmt.Errorf("quit habits require a start time")
		}
	default:
		return fmt.Errorf("unknown habit kind %q", h.Kind)
	}

	for i, r := range h.Reminders {
		if _, err := time.Parse(constants.TimeFormat, r.Time); err != nil {
			return fmt.Errorf("reminder %d: invalid time format (expected HH:MM): %w", i+1, err)
		}
		for _, d := range r.Days {
			if !d.Valid() {
				return fmt.Errorf("reminder %d: invalid weekday %d", i+1, int(d))
			}
		}
	}

	return nil
}

// Validate checks the frequency policy parameters.
func (f FrequencyConfig) Validate() error {
	switch f.Type {
	case FrequencyEvery:
	case FrequencySpecific:
		if len(f.Days) == 0 {
			return fmt.Errorf("specific frequency requires at least one weekday")
		}
		for _, d := range f.Days {
			if !d.Valid() {
				return fmt.Errorf("invalid weekday %d", int(d))
			}
		}
	case FrequencyDaysPer:
		if f.DaysPerWeek < 1 || f.DaysPerWeek > 7 {
			return fmt.Errorf("days per week must be between 1 and 7, got %d", f.DaysPerWeek)
		}
	default:
		return fmt.Errorf("unknown frequency type %q", f.Type)
	}
	return nil
}
