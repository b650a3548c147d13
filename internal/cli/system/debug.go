package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/state"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show storage and log file paths."`
	DumpState    *DebugDumpStateCmd    `cmd:"" help:"Dump the whole state document as JSON."`
	DumpHabit    *DebugDumpHabitCmd    `cmd:"" help:"Dump habit data as JSON."`
	DumpMedia    *DebugDumpMediaCmd    `cmd:"" help:"Dump media item data as JSON."`
	DumpBlocks   *DebugDumpBlocksCmd   `cmd:"" help:"Dump schedule blocks of a day as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path":     ctx.Store.GetConfigPath(),
		"log_file": logger.File(),
	})
}

type DebugDumpStateCmd struct {
	Legacy bool `help:"Write the camelCase document older clients read."`
}

func (cmd *DebugDumpStateCmd) Run(ctx *cli.Context) error {
	if !cmd.Legacy {
		return printJSON(ctx, ctx.State.State())
	}
	data, err := models.EncodeLegacyState(ctx.State.State(), ctx.State.Today())
	if err != nil {
		return err
	}
	ctx.Println(string(data))
	return nil
}

type DebugDumpHabitCmd struct {
	ID string `arg:"" help:"ID or name of the habit to dump."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(cmd.ID)
	if err != nil {
		return err
	}
	return printJSON(ctx, habit)
}

type DebugDumpMediaCmd struct {
	ID string `arg:"" help:"ID or title of the media item to dump."`
}

func (cmd *DebugDumpMediaCmd) Run(ctx *cli.Context) error {
	item, ok := state.FindMedia(ctx.State.State(), cmd.ID)
	if !ok {
		return fmt.Errorf("%w: %q", state.ErrMediaNotFound, cmd.ID)
	}
	return printJSON(ctx, item)
}

type DebugDumpBlocksCmd struct {
	Date string `arg:"" default:"today" help:"Day to dump (YYYY-MM-DD, 'today' or 'yesterday')."`
}

func (cmd *DebugDumpBlocksCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ResolveDay(cmd.Date)
	if err != nil {
		return err
	}
	blocks := ctx.State.State().DailyBlocks[day]
	if len(blocks) == 0 {
		return fmt.Errorf("no schedule blocks for date: %s", day)
	}
	return printJSON(ctx, blocks)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, models.SettingsToMap(ctx.State.State().Settings))
}
