package habits

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
	"github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/tui/forms"
	"github.com/julianstephens/habitual/internal/utils"
)

type HabitLogCmd struct {
	Habit   string  `arg:"" help:"Habit name or ID."`
	Amount  float64 `arg:"" optional:"" help:"Amount to add (default: the habit's step)."`
	Undo    bool    `help:"Subtract instead of add."`
	Seconds int     `help:"Log a finished timer session of this many seconds."`
	Date    string  `short:"d" help:"Day (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	h, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	delta := c.Amount
	switch {
	case c.Seconds > 0:
		delta = state.TimerDelta(h, c.Seconds)
	case delta == 0:
		delta = h.Step()
	}
	if delta < 0 {
		return fmt.Errorf("amount must be positive; use --undo to subtract")
	}
	if c.Undo {
		delta = -delta
	}

	if _, err := ctx.Dispatch(state.LogDelta{HabitID: h.ID, Day: day, Delta: delta}); err != nil {
		return err
	}
	return report(ctx, h.ID, day)
}

type HabitSkipCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `short:"d" help:"Day (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *HabitSkipCmd) Run(ctx *cli.Context) error {
	h, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	if _, err := ctx.Dispatch(state.ToggleSkip{HabitID: h.ID, Day: day}); err != nil {
		return err
	}
	return report(ctx, h.ID, day)
}

type HabitCheckCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Item  string `arg:"" help:"Checklist item title or ID."`
	Date  string `short:"d" help:"Day (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *HabitCheckCmd) Run(ctx *cli.Context) error {
	h, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	structure := engine.ResolveStructure(h, date)
	if len(structure) == 0 {
		return fmt.Errorf("%s has no checklist", h.Name)
	}
	item, ok := forms.FindItem(structure, c.Item)
	if !ok {
		return fmt.Errorf("checklist item %q not found in %s", c.Item, h.Name)
	}

	day := utils.DayKey(date)
	if _, err := ctx.Dispatch(state.ToggleMicroHabit{HabitID: h.ID, Day: day, NodeID: item.ID}); err != nil {
		return err
	}
	return report(ctx, h.ID, day)
}

type HabitWeightCmd struct {
	Habit string  `arg:"" help:"Habit name or ID."`
	Value float64 `arg:"" help:"Measured weight."`
	Date  string  `short:"d" help:"Day (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *HabitWeightCmd) Run(ctx *cli.Context) error {
	h, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	if _, err := ctx.Dispatch(state.LogWeight{HabitID: h.ID, Day: day, Value: c.Value}); err != nil {
		return err
	}
	return report(ctx, h.ID, day)
}

type HabitRelapseCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `short:"d" help:"Day (YYYY-MM-DD, today, yesterday)." default:"today"`
	Yes   bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *HabitRelapseCmd) Run(ctx *cli.Context) error {
	h, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if !h.IsQuit() {
		return fmt.Errorf("%s is not a quit habit", h.Name)
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	if !c.Yes && !ctx.Confirm(fmt.Sprintf("Reset the streak of %s on %s?", h.Name, day)) {
		ctx.Println("Cancelled.")
		return nil
	}
	if _, err := ctx.Dispatch(state.LogRelapse{HabitID: h.ID, Day: day}); err != nil {
		return err
	}
	return report(ctx, h.ID, day)
}

// report prints the habit's state for day after a change.
func report(ctx *cli.Context, habitID, day string) error {
	st := ctx.State.State()
	h, ok := state.HabitByID(st, habitID)
	if !ok {
		return fmt.Errorf("%w: %s", state.ErrHabitNotFound, habitID)
	}
	date, err := ctx.ResolveDate(day)
	if err != nil {
		return err
	}
	now := ctx.State.Now()
	ds := engine.Classify(h, date, now, st.Settings.DayEndTime)

	line := fmt.Sprintf("%s %s %s: %s", render.Cell(h, ds), h.Name, day, statusLabel(ds.Status))
	if h.Kind != models.KindQuit {
		line += " (" + render.Reading(h, engine.Read(h, date)) + ")"
	}
	if s := render.Streak(h); s != "" {
		line += ", streak " + s
	}
	ctx.Println(line)
	return nil
}
