package daily

import (
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/state"
)

type WaterCmd struct {
	Glasses *int   `arg:"" optional:"" help:"Set the number of glasses (default: add one)."`
	Undo    bool   `help:"Remove one glass."`
	Date    string `short:"d" help:"Day (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *WaterCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	glasses := ctx.State.State().WaterIntake[day]
	switch {
	case c.Glasses != nil:
		glasses = *c.Glasses
	case c.Undo:
		if glasses > 0 {
			glasses--
		}
	default:
		glasses++
	}

	if _, err := ctx.Dispatch(state.SetWaterIntake{Day: day, Glasses: glasses}); err != nil {
		return err
	}
	ctx.Printf("Water on %s: %d glasses\n", day, glasses)
	return nil
}

type DumpCmd struct {
	Text  []string `arg:"" optional:"" help:"Text to append; '-' reads standard input."`
	Clear bool     `help:"Empty the brain dump."`
	Yes   bool     `short:"y" help:"Do not ask for confirmation when clearing."`
}

func (c *DumpCmd) Run(ctx *cli.Context) error {
	current := ctx.State.State().BrainDump

	switch {
	case c.Clear:
		if current == "" {
			ctx.Println("Brain dump is already empty.")
			return nil
		}
		if !c.Yes && !ctx.Confirm("Clear the brain dump?") {
			ctx.Println("Cancelled.")
			return nil
		}
		if _, err := ctx.Dispatch(state.SetBrainDump{Text: ""}); err != nil {
			return err
		}
		ctx.Println("Brain dump cleared.")
		return nil

	case len(c.Text) > 0:
		text := strings.Join(c.Text, " ")
		if text == "-" {
			data, err := io.ReadAll(ctx.In)
			if err != nil {
				return fmt.Errorf("failed to read standard input: %w", err)
			}
			text = string(data)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return fmt.Errorf("nothing to add")
		}
		if current != "" {
			text = current + "\n" + text
		}
		if _, err := ctx.Dispatch(state.SetBrainDump{Text: text}); err != nil {
			return err
		}
		ctx.Println("Added to brain dump.")
		return nil
	}

	if current == "" {
		ctx.Println("Brain dump is empty.")
		return nil
	}
	ctx.Println(current)
	return nil
}
