package habits

import (
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/optimizer"
	"github.com/julianstephens/habitual/internal/render"
)

type HabitSuggestCmd struct {
	Habit string `arg:"" optional:"" help:"Habit name or ID. All habits when omitted."`
	Days  int    `help:"Number of past days to analyse." default:"28"`
}

func (c *HabitSuggestCmd) Run(ctx *cli.Context) error {
	st := ctx.State.State()
	analyzer := optimizer.NewAnalyzer(c.Days)

	var suggestions []optimizer.Optimization
	if c.Habit != "" {
		h, err := ctx.ResolveHabit(c.Habit)
		if err != nil {
			return err
		}
		suggestions = analyzer.AnalyzeHabit(h, ctx.State.Now(), st.Settings.DayEndTime)
	} else {
		suggestions = analyzer.AnalyzeAll(st, ctx.State.Now())
	}

	if len(suggestions) == 0 {
		ctx.Println("No suggestions. Your goals look about right.")
		return nil
	}

	ctx.Println(render.Title.Render("Suggestions"))
	for _, s := range suggestions {
		ctx.Printf("\n%s  %s\n", s.HabitName, render.Muted.Render(string(s.Type)))
		ctx.Printf("  %s\n", s.Reason)
		switch {
		case s.Type == optimizer.OptimizationRemoveHabit:
			ctx.Printf("  Consider retiring this habit (%s).\n", s.CurrentValue)
		case s.SuggestedValue != "":
			ctx.Printf("  %s -> %s\n", s.CurrentValue, render.Warning.Render(s.SuggestedValue))
		}
	}
	return nil
}

