package habits

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/tui/forms"
)

type HabitAddCmd struct {
	Name        string   `arg:"" optional:"" help:"Habit name."`
	Kind        string   `short:"k" help:"Habit kind (count|checklist|weight|quit)." default:"count"`
	Goal        float64  `short:"g" help:"Daily goal, or target weight for weight habits."`
	Increment   float64  `help:"Quick-add step used when no amount is given."`
	Unit        string   `short:"u" help:"Unit (times|minutes|kg|lbs)." default:"times"`
	Color       string   `short:"c" help:"Colour name." default:"blue"`
	When        string   `help:"Time of day (morning|any|evening)." default:"any"`
	Days        string   `short:"w" help:"Comma-separated weekdays the habit is due on."`
	PerWeek     int      `help:"Number of days per week, on any days."`
	Item        []string `help:"Checklist item; 'Parent/Child' nests. Repeatable."`
	DayItem     []string `help:"Weekday checklist item, e.g. 'sat=Long run'. Repeatable."`
	Remind      []string `help:"Reminder time (HH:MM). Repeatable."`
	RemindDays  string   `help:"Weekdays reminders fire on (default: every day)."`
	After       string   `help:"Habit this one is stacked after."`
	Trigger     string   `help:"Cue shown for the stacked habit."`
	Timer       int      `help:"Timer length in minutes."`
	Direction   string   `help:"Weight goal direction (lose|gain)."`
	Start       string   `help:"Quit start (YYYY-MM-DD or 'YYYY-MM-DD HH:MM'; default: now)."`
	Notes       string   `help:"Free-form notes."`
	Interactive bool     `short:"i" help:"Fill in the habit with a form."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	var h models.Habit
	var err error
	if c.Interactive {
		fm := forms.NewHabitFormModel()
		fm.Name = c.Name
		if err := forms.NewHabitForm(fm).Run(); err != nil {
			return err
		}
		err = fm.Apply(&h)
	} else {
		h, err = c.habit(ctx)
	}
	if err != nil {
		return err
	}

	if _, exists := state.HabitByName(ctx.State.State(), h.Name); exists {
		return fmt.Errorf("habit with name %q already exists", h.Name)
	}

	st, err := ctx.Dispatch(state.AddHabit{Habit: h})
	if err != nil {
		return err
	}
	added := st.Habits[len(st.Habits)-1]
	ctx.Printf("Added habit: %s (%s, %s)\n", added.Name, added.Kind, added.Frequency)
	ctx.Printf("ID: %s\n", added.ID)
	return nil
}

func (c *HabitAddCmd) habit(ctx *cli.Context) (models.Habit, error) {
	if c.Name == "" {
		return models.Habit{}, fmt.Errorf("habit name is required (or use --interactive)")
	}
	kind, err := parseKind(c.Kind)
	if err != nil {
		return models.Habit{}, err
	}
	if kind == models.KindCount && (len(c.Item) > 0 || len(c.DayItem) > 0) {
		kind = models.KindChecklist
	}
	unit, err := parseUnit(c.Unit)
	if err != nil {
		return models.Habit{}, err
	}
	if kind == models.KindWeight && !unit.IsWeightUnit() {
		unit = models.UnitKg
	}
	when, err := parseTimeOfDay(c.When)
	if err != nil {
		return models.Habit{}, err
	}
	color, err := parseColor(c.Color)
	if err != nil {
		return models.Habit{}, err
	}
	direction, err := parseDirection(c.Direction)
	if err != nil {
		return models.Habit{}, err
	}
	freq, err := parseFrequency(c.Days, c.PerWeek)
	if err != nil {
		return models.Habit{}, err
	}
	structure, err := forms.ParseItems(c.Item)
	if err != nil {
		return models.Habit{}, err
	}
	daily, err := parseDailyItems(c.DayItem)
	if err != nil {
		return models.Habit{}, err
	}
	reminders, err := parseReminders(c.Remind, c.RemindDays)
	if err != nil {
		return models.Habit{}, err
	}
	stackID, err := resolveStack(ctx, c.After, "")
	if err != nil {
		return models.Habit{}, err
	}
	start, err := parseQuitStart(c.Start, ctx.State.Now().Location())
	if err != nil {
		return models.Habit{}, err
	}
	if c.Timer < 0 {
		return models.Habit{}, fmt.Errorf("timer must not be negative")
	}

	h := models.Habit{
		Name:            c.Name,
		Notes:           c.Notes,
		Color:           color,
		TimeOfDay:       when,
		Kind:            kind,
		Goal:            c.Goal,
		Increment:       c.Increment,
		Unit:            unit,
		Frequency:       freq,
		QuitStart:       start,
		GoalDirection:   direction,
		Structure:       structure,
		DailyStructures: daily,
		Reminders:       reminders,
		StackedAfterID:  stackID,
		StackTrigger:    c.Trigger,
		TimerMinutes:    c.Timer,
	}
	if kind == models.KindWeight && direction == "" {
		h.GoalDirection = models.GoalLose
	}
	return h, nil
}
