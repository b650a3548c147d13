package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
	"github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/utils"
)

const barWidth = 20

type ReportCmd struct {
	Range   string `short:"r" help:"Report range (week|month|year)." enum:"week,month,year" default:"week"`
	Date    string `short:"d" help:"Any day inside the range (YYYY-MM-DD, today, yesterday)." default:"today"`
	Habit   string `help:"Only report this habit."`
	Heatmap bool   `help:"Draw a heatmap under each habit."`
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	st := ctx.State.State()
	habits := state.SortedHabits(st)
	if c.Habit != "" {
		h, err := ctx.ResolveHabit(c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{h}
	}
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	r := engine.ReportRange(c.Range)
	days := engine.RangeDays(r, date)
	now := ctx.State.Now()
	dayEnd := st.Settings.DayEndTime

	ctx.Printf("%s report: %s to %s\n\n", strings.ToUpper(c.Range[:1])+c.Range[1:], utils.DayKey(days[0]), utils.DayKey(days[len(days)-1]))
	for _, h := range habits {
		rate := engine.CompletionRate(h, days, now, dayEnd)
		line := fmt.Sprintf("%-*s %s %3d%%", nameWidth, truncate(h.Name, nameWidth),
			render.ProgressBar(float64(rate), barWidth, render.HabitColor(h.Color)), rate)
		switch h.Kind {
		case models.KindQuit:
			line += render.Muted.Render(fmt.Sprintf("  %d resets", resetsIn(h, days)))
		case models.KindWeight:
			line += render.Muted.Render("  " + render.Trend(h, engine.WeightTrend(h)))
		}
		ctx.Println(line)
		if c.Heatmap {
			ctx.Println(render.Heatmap(h, engine.Heatmap(h, days, now, dayEnd)))
			ctx.Println()
		}
	}
	return nil
}

// resetsIn counts relapses logged on days.
func resetsIn(h models.Habit, days []time.Time) int {
	total := 0
	for _, d := range days {
		if v, _ := engine.DayValue(h, utils.DayKey(d)); v > 0 {
			total += int(v)
		}
	}
	return total
}
