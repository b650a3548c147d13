package reports

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

const nameWidth = 20

type WeekCmd struct {
	Date string `short:"d" help:"Any day of the week to show (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
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
	start := engine.StartOfWeek(date)
	ctx.Printf("Week of %s\n\n", utils.DayKey(start))

	head := make([]string, 0, len(models.AllWeekdays))
	for _, wd := range models.AllWeekdays {
		head = append(head, wd.Short()[:1])
	}
	ctx.Printf("%-*s %s\n", nameWidth, "", render.Muted.Render(strings.Join(head, " ")))

	for _, h := range habits {
		days := engine.WeekStrip(h, date, now, st.Settings.DayEndTime)
		cells := make([]string, len(days))
		for i, ds := range days {
			cells[i] = render.Cell(h, ds)
		}
		line := fmt.Sprintf("%-*s %s", nameWidth, truncate(h.Name, nameWidth), strings.Join(cells, " "))
		if h.IsFlexible() && !h.IsQuit() {
			line += render.Muted.Render(fmt.Sprintf("  %d/%d", engine.WeeklyCompletions(h, date), engine.WeeklyTarget(h)))
		}
		ctx.Println(line)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
