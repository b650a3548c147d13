// Package forms holds the huh forms shared by the CLI and the TUI.
package forms

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// HabitFormModel holds the raw answers of the habit form.
type HabitFormModel struct {
	Name      string
	Kind      models.HabitKind
	Goal      string
	Increment string
	Unit      models.Unit
	TimeOfDay models.TimeOfDay
	Color     string
	Frequency models.FrequencyType
	Days      []models.Weekday
	PerWeek   string
	Items     string
	Reminder  string
}

// NewHabitFormModel returns answers pre-filled with the defaults.
func NewHabitFormModel() *HabitFormModel {
	return &HabitFormModel{
		Kind:      models.KindCount,
		Goal:      "1",
		Increment: "1",
		Unit:      models.UnitTimes,
		TimeOfDay: models.Anytime,
		Color:     constants.DefaultColor,
		Frequency: models.FrequencyEvery,
		PerWeek:   "3",
	}
}

// FromHabit pre-fills the form for editing h.
func FromHabit(h models.Habit) *HabitFormModel {
	fm := &HabitFormModel{
		Name:      h.Name,
		Kind:      h.Kind,
		Goal:      strconv.FormatFloat(h.Goal, 'f', -1, 64),
		Increment: strconv.FormatFloat(h.Step(), 'f', -1, 64),
		Unit:      h.Unit,
		TimeOfDay: h.TimeOfDay,
		Color:     h.Color,
		Frequency: h.Frequency.Type,
		Days:      append([]models.Weekday(nil), h.Frequency.Days...),
		PerWeek:   strconv.Itoa(h.Frequency.DaysPerWeek),
		Items:     FormatItems(h.Structure),
	}
	if len(h.Reminders) > 0 {
		fm.Reminder = h.Reminders[0].Time
	}
	return fm
}

func positiveNumber(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func colorOptions() []huh.Option[string] {
	names := make([]string, 0, len(constants.Palette))
	for name := range constants.Palette {
		names = append(names, name)
	}
	sort.Strings(names)
	opts := make([]huh.Option[string], len(names))
	for i, name := range names {
		opts[i] = huh.NewOption(name, name)
	}
	return opts
}

// NewHabitForm builds the add/edit habit form.
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	weekdayOpts := make([]huh.Option[models.Weekday], len(models.AllWeekdays))
	for i, wd := range models.AllWeekdays {
		weekdayOpts[i] = huh.NewOption(wd.String(), wd)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.HabitKind]().
				Title("Kind").
				Options(
					huh.NewOption("Count (reach a daily goal)", models.KindCount),
					huh.NewOption("Checklist", models.KindChecklist),
					huh.NewOption("Weight", models.KindWeight),
					huh.NewOption("Quit", models.KindQuit),
				).
				Value(&fm.Kind),
			huh.NewSelect[models.TimeOfDay]().
				Title("Time of day").
				Options(
					huh.NewOption("Morning", models.Morning),
					huh.NewOption("Any time", models.Anytime),
					huh.NewOption("Evening", models.Evening),
				).
				Value(&fm.TimeOfDay),
			huh.NewSelect[string]().
				Title("Colour").
				Options(colorOptions()...).
				Value(&fm.Color),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Goal").
				Description("Daily amount, or target weight").
				Value(&fm.Goal).
				Validate(positiveNumber),
			huh.NewInput().
				Title("Quick-add step").
				Value(&fm.Increment).
				Validate(positiveNumber),
			huh.NewSelect[models.Unit]().
				Title("Unit").
				Options(
					huh.NewOption("times", models.UnitTimes),
					huh.NewOption("minutes", models.UnitMinutes),
					huh.NewOption("kg", models.UnitKg),
					huh.NewOption("lbs", models.UnitLbs),
				).
				Value(&fm.Unit),
		).WithHideFunc(func() bool { return fm.Kind == models.KindQuit || fm.Kind == models.KindChecklist }),
		huh.NewGroup(
			huh.NewText().
				Title("Checklist").
				Description("One item per line; 'Parent/Child' nests").
				Value(&fm.Items),
		).WithHideFunc(func() bool { return fm.Kind != models.KindChecklist }),
		huh.NewGroup(
			huh.NewSelect[models.FrequencyType]().
				Title("Frequency").
				Options(
					huh.NewOption("Every day", models.FrequencyEvery),
					huh.NewOption("Specific weekdays", models.FrequencySpecific),
					huh.NewOption("N days per week", models.FrequencyDaysPer),
				).
				Value(&fm.Frequency),
		).WithHideFunc(func() bool { return fm.Kind == models.KindQuit || fm.Kind == models.KindWeight }),
		huh.NewGroup(
			huh.NewMultiSelect[models.Weekday]().
				Title("Weekdays").
				Options(weekdayOpts...).
				Value(&fm.Days),
		).WithHideFunc(func() bool { return fm.Frequency != models.FrequencySpecific }),
		huh.NewGroup(
			huh.NewInput().
				Title("Days per week").
				Value(&fm.PerWeek).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > 7 {
						return fmt.Errorf("enter 1 to 7")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return fm.Frequency != models.FrequencyDaysPer }),
		huh.NewGroup(
			huh.NewInput().
				Title("Reminder (HH:MM)").
				Description("Leave empty for none").
				Value(&fm.Reminder).
				Validate(func(s string) error {
					if s = strings.TrimSpace(s); s == "" {
						return nil
					}
					if _, err := strconv.Atoi(strings.Replace(s, ":", "", 1)); err != nil || len(s) != 5 || s[2] != ':' {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// Apply writes the answers onto h, leaving fields the form does not cover untouched.
func (fm *HabitFormModel) Apply(h *models.Habit) error {
	h.Name = strings.TrimSpace(fm.Name)
	h.Kind = fm.Kind
	h.TimeOfDay = fm.TimeOfDay
	h.Color = fm.Color

	switch fm.Kind {
	case models.KindQuit:
		h.Goal = 0
		h.Unit = models.UnitMinutes
		h.Frequency = models.DefaultFrequency()
	case models.KindChecklist:
		structure, err := ParseItems(strings.Split(fm.Items, "\n"))
		if err != nil {
			return err
		}
		h.Structure = structure
		h.Unit = models.UnitTimes
	default:
		goal, err := strconv.ParseFloat(strings.TrimSpace(fm.Goal), 64)
		if err != nil {
			return fmt.Errorf("invalid goal %q", fm.Goal)
		}
		h.Goal = goal
		if inc, err := strconv.ParseFloat(strings.TrimSpace(fm.Increment), 64); err == nil {
			h.Increment = inc
		}
		h.Unit = fm.Unit
		if fm.Kind == models.KindWeight && !h.Unit.IsWeightUnit() {
			h.Unit = models.UnitKg
		}
	}

	if fm.Kind != models.KindQuit && fm.Kind != models.KindWeight {
		freq := models.FrequencyConfig{Type: fm.Frequency, Days: []models.Weekday{}, DaysPerWeek: 7}
		switch fm.Frequency {
		case models.FrequencySpecific:
			freq.Days = append(freq.Days, fm.Days...)
		case models.FrequencyDaysPer:
			n, err := strconv.Atoi(strings.TrimSpace(fm.PerWeek))
			if err != nil {
				return fmt.Errorf("invalid days per week %q", fm.PerWeek)
			}
			freq.DaysPerWeek = n
		}
		h.Frequency = freq
	}

	if r := strings.TrimSpace(fm.Reminder); r != "" {
		h.Reminders = []models.Reminder{{Time: r, Days: append([]models.Weekday(nil), models.AllWeekdays...)}}
	} else {
		h.Reminders = nil
	}
	return nil
}
