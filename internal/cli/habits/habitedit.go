package habits

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/tui/forms"
)

type HabitEditCmd struct {
	Habit       string   `arg:"" help:"Habit name or ID."`
	Name        *string  `help:"New name."`
	Goal        *float64 `short:"g" help:"New daily goal or target weight."`
	Increment   *float64 `help:"New quick-add step."`
	Unit        *string  `short:"u" help:"New unit (times|minutes|kg|lbs)."`
	Color       *string  `short:"c" help:"New colour name."`
	When        *string  `help:"New time of day (morning|any|evening)."`
	Days        *string  `short:"w" help:"New weekdays ('every' for every day)."`
	PerWeek     *int     `help:"New days per week."`
	Item        []string `help:"Replace the checklist; 'Parent/Child' nests. Repeatable."`
	DayItem     []string `help:"Replace the weekday checklists, e.g. 'sat=Long run'. Repeatable."`
	Remind      []string `help:"Replace reminders (HH:MM). Repeatable."`
	RemindDays  string   `help:"Weekdays new reminders fire on."`
	NoReminders bool     `help:"Remove all reminders."`
	After       *string  `help:"New habit to stack after ('' to unstack)."`
	Trigger     *string  `help:"New stacking cue."`
	Timer       *int     `help:"New timer length in minutes (0 removes it)."`
	Direction   *string  `help:"New weight goal direction (lose|gain)."`
	Start       *string  `help:"New quit start (YYYY-MM-DD or 'YYYY-MM-DD HH:MM')."`
	Notes       *string  `help:"New notes."`
	Interactive bool     `short:"i" help:"Edit the habit with a form."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	h, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if c.Interactive {
		fm := forms.FromHabit(h)
		if err := forms.NewHabitForm(fm).Run(); err != nil {
			return err
		}
		if err := fm.Apply(&h); err != nil {
			return err
		}
	} else if err := c.apply(ctx, &h); err != nil {
		return err
	}

	if other, ok := state.HabitByName(ctx.State.State(), h.Name); ok && other.ID != h.ID {
		return fmt.Errorf("habit with name %q already exists", h.Name)
	}
	if _, err := ctx.Dispatch(state.UpdateHabit{Habit: h}); err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s\n", h.Name)
	return nil
}

func (c *HabitEditCmd) apply(ctx *cli.Context, h *models.Habit) error {
	if c.Name != nil {
		h.Name = *c.Name
	}
	if c.Goal != nil {
		if *c.Goal < 0 {
			return fmt.Errorf("goal must not be negative")
		}
		h.Goal = *c.Goal
	}
	if c.Increment != nil {
		if *c.Increment < 0 {
			return fmt.Errorf("step must not be negative")
		}
		h.Increment = *c.Increment
	}
	if c.Unit != nil {
		unit, err := parseUnit(*c.Unit)
		if err != nil {
			return err
		}
		h.Unit = unit
	}
	if c.Color != nil {
		color, err := parseColor(*c.Color)
		if err != nil {
			return err
		}
		h.Color = color
	}
	if c.When != nil {
		when, err := parseTimeOfDay(*c.When)
		if err != nil {
			return err
		}
		h.TimeOfDay = when
	}
	if c.Days != nil || c.PerWeek != nil {
		days, perWeek := "", 0
		if c.Days != nil {
			days = *c.Days
		}
		if c.PerWeek != nil {
			perWeek = *c.PerWeek
		}
		freq, err := parseFrequency(days, perWeek)
		if err != nil {
			return err
		}
		h.Frequency = freq
	}
	if len(c.Item) > 0 {
		structure, err := forms.ParseItems(c.Item)
		if err != nil {
			return err
		}
		h.Structure = structure
	}
	if len(c.DayItem) > 0 {
		daily, err := parseDailyItems(c.DayItem)
		if err != nil {
			return err
		}
		h.DailyStructures = daily
	}
	if c.NoReminders {
		h.Reminders = nil
	} else if len(c.Remind) > 0 {
		reminders, err := parseReminders(c.Remind, c.RemindDays)
		if err != nil {
			return err
		}
		h.Reminders = reminders
	}
	if c.After != nil {
		id, err := resolveStack(ctx, *c.After, h.ID)
		if err != nil {
			return err
		}
		h.StackedAfterID = id
		if id == "" {
			h.StackTrigger = ""
		}
	}
	if c.Trigger != nil {
		h.StackTrigger = *c.Trigger
	}
	if c.Timer != nil {
		if *c.Timer < 0 {
			return fmt.Errorf("timer must not be negative")
		}
		h.TimerMinutes = *c.Timer
	}
	if c.Direction != nil {
		dir, err := parseDirection(*c.Direction)
		if err != nil {
			return err
		}
		h.GoalDirection = dir
	}
	if c.Start != nil {
		start, err := parseQuitStart(*c.Start, ctx.State.Now().Location())
		if err != nil {
			return err
		}
		h.QuitStart = start
	}
	if c.Notes != nil {
		h.Notes = *c.Notes
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Yes   bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	h, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if !c.Yes && !ctx.Confirm(fmt.Sprintf("Delete %s and its history?", h.Name)) {
		ctx.Println("Cancelled.")
		return nil
	}
	ctx.PerformAutomaticBackup()
	if _, err := ctx.Dispatch(state.DeleteHabit{ID: h.ID}); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", h.Name)
	return nil
}
