package reports

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/render"
)

type CalendarCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Month string `short:"m" help:"Month to show (YYYY-MM, default: the current month)."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	h, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	now := ctx.State.Now()
	today, err := ctx.ResolveDate("today")
	if err != nil {
		return err
	}

	year, month := today.Year(), today.Month()
	if c.Month != "" {
		m, err := time.Parse("2006-01", c.Month)
		if err != nil {
			return fmt.Errorf("invalid month format: %s (expected YYYY-MM)", c.Month)
		}
		year, month = m.Year(), m.Month()
	}

	dayEnd := ctx.State.State().Settings.DayEndTime
	grid := engine.BuildMonthGrid(h, year, month, now.Location(), now, dayEnd)
	ctx.Println(render.Title.Foreground(render.HabitColor(h.Color)).Render(h.Name))
	ctx.Println(render.MonthGrid(h, grid))

	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	rate := engine.CompletionRate(h, engine.RangeDays(engine.RangeMonth, first), now, dayEnd)
	ctx.Printf("\nCompleted: %d%%\n", rate)
	return nil
}
