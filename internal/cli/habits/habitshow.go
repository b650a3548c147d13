package habits

import (
	"strings"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
	"github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/utils"
)

// weightHistoryLen is how many recent measurements show lists.
const weightHistoryLen = 7

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `help:"Day to show (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	h, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	st := ctx.State.State()
	now := ctx.State.Now()
	dayEnd := st.Settings.DayEndTime

	ctx.Println(render.Title.Foreground(render.HabitColor(h.Color)).Render(h.Name))
	ctx.Printf("ID: %s\n", h.ID)
	ctx.Printf("Kind: %s", h.Kind)
	if !h.IsQuit() && !h.IsWeight() {
		ctx.Printf(", %s", h.Frequency)
	}
	ctx.Printf(", %s\n", strings.ToLower(timeOfDayLabel(h.TimeOfDay)))

	ds := engine.Classify(h, date, now, dayEnd)
	ctx.Printf("%s: %s %s\n", utils.DayKey(date), render.Cell(h, ds), statusLabel(ds.Status))
	ctx.Printf("Progress: %s\n", render.Summary(h, date, now))
	if s := render.Streak(h); s != "" {
		ctx.Printf("Streak: %s\n", s)
	}

	ctx.Println()
	ctx.Println(render.WeekStrip(h, engine.WeekStrip(h, date, now, dayEnd)))

	switch h.Kind {
	case models.KindCount:
		ctx.Printf("\nGoal: %s %s per day (step %s)\n", render.Number(h.Goal), h.Unit, render.Number(h.Step()))
	case models.KindChecklist:
		structure := engine.ResolveStructure(h, date)
		if len(structure) > 0 {
			entry, _ := h.History.Get(utils.DayKey(date))
			ctx.Printf("\nChecklist for %s:\n", models.WeekdayOf(date))
			printTree(ctx, structure, entry, 1)
		}
	case models.KindQuit:
		if h.QuitStart != nil {
			ctx.Printf("\nStarted: %s\n", h.QuitStart.In(now.Location()).Format(constants.DateFormat+" "+constants.TimeFormat))
		}
		ctx.Printf("Total resets: %d\n", engine.TotalResets(h))
	case models.KindWeight:
		if h.Goal > 0 {
			ctx.Printf("\nTarget: %s %s (%s)\n", render.Number(h.Goal), h.Unit, h.GoalDirection)
		}
		ctx.Printf("Trend: %s\n", render.Trend(h, engine.WeightTrend(h)))
		series := engine.WeightSeries(h)
		if len(series) > weightHistoryLen {
			series = series[len(series)-weightHistoryLen:]
		}
		for _, m := range series {
			ctx.Printf("  %s  %s %s\n", m.Day, render.Number(m.Value), h.Unit)
		}
	}

	if h.StackedAfterID != "" {
		if trigger, ok := state.HabitByID(st, h.StackedAfterID); ok {
			line := "After: " + trigger.Name
			if h.StackTrigger != "" {
				line += " (" + h.StackTrigger + ")"
			}
			if locked, _ := engine.StackLock(st.Habits, h, date, now, dayEnd); locked {
				line += " " + render.Warning.Render("locked")
			}
			ctx.Println(line)
		}
	}
	for _, r := range h.Reminders {
		ctx.Printf("Reminder: %s on %s\n", r.Time, models.FormatWeekdays(r.Days))
	}
	if h.TimerMinutes > 0 {
		ctx.Printf("Timer: %d min\n", h.TimerMinutes)
	}
	if h.Notes != "" {
		ctx.Printf("Notes: %s\n", h.Notes)
	}
	return nil
}

func printTree(ctx *cli.Context, nodes []models.MicroHabit, entry models.Entry, depth int) {
	for _, n := range nodes {
		mark := "[ ]"
		if entry.Has(n.ID) {
			mark = "[x]"
		}
		ctx.Printf("%s%s %s %s\n", strings.Repeat("  ", depth), mark, n.Title, render.Muted.Render(n.ID))
		printTree(ctx, n.SubHabits, entry, depth+1)
	}
}
