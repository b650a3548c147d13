package schedule

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
	"github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/utils"
)

type ScheduleCmd struct {
	List   ScheduleListCmd   `cmd:"" default:"withargs" help:"Show a day's schedule."`
	Add    ScheduleAddCmd    `cmd:"" help:"Add a block to a day's schedule."`
	Remove ScheduleRemoveCmd `cmd:"" help:"Remove a block from a day's schedule."`
}

type ScheduleListCmd struct {
	Date string `short:"d" help:"Day (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *ScheduleListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	st := ctx.State.State()
	blocks := state.BlockStatuses(st, date, ctx.State.Now())
	if len(blocks) == 0 {
		ctx.Printf("No schedule for %s.\n", utils.DayKey(date))
		return nil
	}

	ctx.Printf("Schedule for %s:\n\n", utils.DayKey(date))
	for i, bs := range blocks {
		line := fmt.Sprintf("%2d. %s  %s", i+1, bs.Block.Time, bs.Block.Activity)
		if bs.Block.IsFixed {
			line += render.Muted.Render(" [fixed]")
		}
		if bs.Habit != nil && bs.Day != nil {
			line += "  " + render.Cell(*bs.Habit, *bs.Day) + " " + bs.Habit.Name
			if bs.Locked && bs.Trigger != nil {
				line += render.Warning.Render(" after " + bs.Trigger.Name)
			}
		}
		if bs.Block.MediaID != "" {
			if m, ok := state.FindMedia(st, bs.Block.MediaID); ok {
				line += render.Muted.Render("  " + m.Title)
			}
		}
		ctx.Println(line)
	}
	return nil
}

type ScheduleAddCmd struct {
	Time     string `arg:"" help:"Start time (HH:MM)."`
	Activity string `arg:"" help:"What happens."`
	Date     string `short:"d" help:"Day (YYYY-MM-DD, today, yesterday)." default:"today"`
	Fixed    bool   `short:"f" help:"Mark the block as fixed."`
	Habit    string `help:"Habit this block is for (name or ID)."`
	Media    string `help:"Media item this block is for (title or ID)."`
}

func (c *ScheduleAddCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	block := models.DailyBlock{
		Time:     strings.TrimSpace(c.Time),
		Activity: c.Activity,
		IsFixed:  c.Fixed,
	}
	if c.Habit != "" {
		h, err := ctx.ResolveHabit(c.Habit)
		if err != nil {
			return err
		}
		block.HabitID = h.ID
	}
	if c.Media != "" {
		m, ok := state.FindMedia(ctx.State.State(), c.Media)
		if !ok {
			return fmt.Errorf("%w: %q", state.ErrMediaNotFound, c.Media)
		}
		block.MediaID = m.ID
	}

	if _, err := ctx.Dispatch(state.AddBlock{Day: day, Block: block}); err != nil {
		return err
	}
	ctx.Printf("Added %s %s on %s\n", block.Time, block.Activity, day)
	return nil
}

type ScheduleRemoveCmd struct {
	Number int    `arg:"" help:"Block number as shown by 'schedule list'."`
	Date   string `short:"d" help:"Day (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *ScheduleRemoveCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	blocks := ctx.State.State().DailyBlocks[day]
	idx := c.Number - 1
	if _, err := ctx.Dispatch(state.RemoveBlock{Day: day, Index: idx}); err != nil {
		return err
	}
	ctx.Printf("Removed %s %s from %s\n", blocks[idx].Time, blocks[idx].Activity, day)
	return nil
}
