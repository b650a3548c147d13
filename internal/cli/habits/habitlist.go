package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
	"github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/utils"
)

type HabitListCmd struct {
	Date string `help:"Day to show (YYYY-MM-DD, today, yesterday)." default:"today"`
	IDs  bool   `help:"Show habit IDs."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	st := ctx.State.State()
	habits := state.SortedHabits(st)
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	now := ctx.State.Now()
	dayEnd := st.Settings.DayEndTime
	ctx.Printf("Habits for %s:\n", utils.DayKey(date))

	var group models.TimeOfDay
	for i, h := range habits {
		if i == 0 || h.TimeOfDay != group {
			group = h.TimeOfDay
			ctx.Printf("\n%s\n", render.Title.Render(timeOfDayLabel(group)))
		}
		ds := engine.Classify(h, date, now, dayEnd)
		line := fmt.Sprintf("%s %-20s %s", render.Cell(h, ds), h.Name, render.Summary(h, date, now))
		if s := render.Streak(h); s != "" {
			line += render.Muted.Render("  streak " + s)
		}
		if locked, trigger := engine.StackLock(st.Habits, h, date, now, dayEnd); locked {
			line += render.Warning.Render("  after " + trigger.Name)
		}
		if c.IDs {
			line += render.Muted.Render("  " + h.ID)
		}
		ctx.Println(line)
	}

	if water := st.WaterIntake[utils.DayKey(date)]; water > 0 {
		ctx.Printf("\nWater: %d glasses\n", water)
	}
	return nil
}

func timeOfDayLabel(t models.TimeOfDay) string {
	switch t {
	case models.Morning:
		return "Morning"
	case models.Evening:
		return "Evening"
	default:
		return "Any time"
	}
}

// statusLabel spells out a day status.
func statusLabel(s engine.Status) string {
	return strings.ReplaceAll(string(s), "_", " ")
}
