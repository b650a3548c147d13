package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tui/forms"
	"github.com/julianstephens/habitual/internal/utils"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits with today's progress."`
	Show    HabitShowCmd    `cmd:"" help:"Show one habit in detail."`
	Log     HabitLogCmd     `cmd:"" help:"Add progress to a count or weight habit."`
	Skip    HabitSkipCmd    `cmd:"" help:"Toggle a skipped day."`
	Check   HabitCheckCmd   `cmd:"" help:"Toggle a checklist item."`
	Weight  HabitWeightCmd  `cmd:"" help:"Record a weight measurement."`
	Relapse HabitRelapseCmd `cmd:"" help:"Record a relapse of a quit habit."`
	Edit    HabitEditCmd    `cmd:"" help:"Edit a habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit and its history."`
	Suggest HabitSuggestCmd `cmd:"" help:"Suggest goal and frequency changes from recent history."`
}

func parseKind(s string) (models.HabitKind, error) {
	switch k := models.HabitKind(strings.ToLower(s)); k {
	case models.KindCount, models.KindChecklist, models.KindWeight, models.KindQuit:
		return k, nil
	default:
		return "", fmt.Errorf("invalid habit kind: %s (expected count|checklist|weight|quit)", s)
	}
}

func parseUnit(s string) (models.Unit, error) {
	switch u := models.Unit(strings.ToLower(s)); u {
	case models.UnitTimes, models.UnitMinutes, models.UnitKg, models.UnitLbs:
		return u, nil
	default:
		return "", fmt.Errorf("invalid unit: %s (expected times|minutes|kg|lbs)", s)
	}
}

func parseTimeOfDay(s string) (models.TimeOfDay, error) {
	switch strings.ToLower(s) {
	case "morning":
		return models.Morning, nil
	case "any", "anytime", "":
		return models.Anytime, nil
	case "evening":
		return models.Evening, nil
	default:
		return "", fmt.Errorf("invalid time of day: %s (expected morning|any|evening)", s)
	}
}

func parseColor(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := constants.Palette[s]; !ok {
		return "", fmt.Errorf("unknown colour: %s", s)
	}
	return s, nil
}

func parseDirection(s string) (models.GoalDirection, error) {
	switch d := models.GoalDirection(strings.ToLower(s)); d {
	case "", models.GoalLose, models.GoalGain:
		return d, nil
	default:
		return "", fmt.Errorf("invalid goal direction: %s (expected lose|gain)", s)
	}
}

// parseFrequency builds a policy from --days and --per-week. "every" or an
// empty days list with no per-week count means every day.
func parseFrequency(days string, perWeek int) (models.FrequencyConfig, error) {
	if perWeek > 0 && days != "" {
		return models.FrequencyConfig{}, fmt.Errorf("--days and --per-week cannot be combined")
	}
	if perWeek > 0 {
		if perWeek > 7 {
			return models.FrequencyConfig{}, fmt.Errorf("days per week must be between 1 and 7")
		}
		return models.FrequencyConfig{Type: models.FrequencyDaysPer, Days: []models.Weekday{}, DaysPerWeek: perWeek}, nil
	}
	if days == "" || strings.EqualFold(days, "every") {
		return models.DefaultFrequency(), nil
	}
	wds, err := models.ParseWeekdays(days)
	if err != nil {
		return models.FrequencyConfig{}, err
	}
	if len(wds) == 0 {
		return models.DefaultFrequency(), nil
	}
	return models.FrequencyConfig{Type: models.FrequencySpecific, Days: wds, DaysPerWeek: 7}, nil
}

// parseReminders turns HH:MM times into reminders firing on days.
func parseReminders(times []string, days string) ([]models.Reminder, error) {
	if len(times) == 0 {
		return nil, nil
	}
	wds := append([]models.Weekday(nil), models.AllWeekdays...)
	if days != "" {
		parsed, err := models.ParseWeekdays(days)
		if err != nil {
			return nil, err
		}
		wds = parsed
	}
	out := make([]models.Reminder, 0, len(times))
	for _, t := range times {
		if !utils.ValidateTimeFormat(t) {
			return nil, fmt.Errorf("invalid reminder time %q (expected HH:MM)", t)
		}
		out = append(out, models.Reminder{Time: t, Days: wds})
	}
	return out, nil
}

// parseDailyItems groups "day=Parent/Child" specs into per-weekday checklists.
func parseDailyItems(specs []string) (map[models.Weekday][]models.MicroHabit, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	paths := map[models.Weekday][]string{}
	for _, spec := range specs {
		day, path, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid day item %q (expected day=Item)", spec)
		}
		wds, err := models.ParseWeekdays(day)
		if err != nil {
			return nil, err
		}
		for _, wd := range wds {
			paths[wd] = append(paths[wd], path)
		}
	}
	out := make(map[models.Weekday][]models.MicroHabit, len(paths))
	for wd, p := range paths {
		forest, err := forms.ParseItems(p)
		if err != nil {
			return nil, err
		}
		out[wd] = forest
	}
	return out, nil
}

func parseQuitStart(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	date, clock, hasClock := strings.Cut(strings.TrimSpace(s), " ")
	if !hasClock {
		clock = "00:00"
	}
	t, err := utils.CombineDateAndTime(date, strings.TrimSpace(clock), loc)
	if err != nil {
		return nil, fmt.Errorf("invalid start %q (expected YYYY-MM-DD or 'YYYY-MM-DD HH:MM'): %w", s, err)
	}
	return &t, nil
}

// resolveStack turns an --after reference into a habit ID. An empty ref clears it.
func resolveStack(ctx *cli.Context, ref, selfID string) (string, error) {
	if ref == "" {
		return "", nil
	}
	trigger, err := ctx.ResolveHabit(ref)
	if err != nil {
		return "", err
	}
	if trigger.ID == selfID {
		return "", fmt.Errorf("a habit cannot be stacked after itself")
	}
	return trigger.ID, nil
}
