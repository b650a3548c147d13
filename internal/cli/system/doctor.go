package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

type DoctorCmd struct {
	Fix bool `help:"Clear stacking and schedule links that point to deleted items."`
}

type check struct {
	name string
	// needsStore checks are skipped when storage cannot be loaded.
	needsStore bool
	// warnOnly failures do not fail the run.
	warnOnly bool
	run      func(ctx *cli.Context) error
}

func (cmd *DoctorCmd) checks() []check {
	return []check{
		{name: "Storage reachable", run: checkStoreReachable},
		{name: "Schema version", needsStore: true, run: checkSchemaVersion},
		{name: "Migrations complete", needsStore: true, run: checkMigrationsComplete},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "State document", needsStore: true, run: checkStateDocument},
		{name: "Data validation", needsStore: true, run: cmd.checkValidation},
		{name: "Clock/timezone", needsStore: true, run: checkClockTimezone},
		{name: "Habit history", needsStore: true, run: checkHabitHistory},
	}
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	for i, c := range cmd.checks() {
		if c.needsStore && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if i == 0 {
				reachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.LoadState(); err != nil {
		return fmt.Errorf("failed to read state: %w", err)
	}
	return nil
}

func schemaStatus(ctx *cli.Context) (current, latest int, ok bool, err error) {
	migrator, isMigrator := ctx.Store.(storage.Migrator)
	if !isMigrator {
		return 0, 0, false, nil
	}
	current, latest, err = migrator.SchemaStatus()
	if err != nil {
		return 0, 0, true, fmt.Errorf("failed to read schema version: %w", err)
	}
	return current, latest, true, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, ok, err := schemaStatus(ctx)
	if !ok || err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, ok, err := schemaStatus(ctx)
	if !ok || err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')", current, latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !storage.IsFileBacked(ctx.Store) {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkStateDocument(ctx *cli.Context) error {
	data, err := ctx.Store.LoadState()
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("no state stored yet (run '%s init')", constants.AppName)
	}
	loc := ctx.State.Now().Location()
	if _, err := models.DecodeState(data, utils.DayKey(ctx.State.Now()), loc); err != nil {
		return err
	}
	return ctx.State.Load()
}

func (cmd *DoctorCmd) checkValidation(ctx *cli.Context) error {
	result := validation.New().ValidateState(ctx.State.State())
	if !result.HasConflicts() {
		return nil
	}
	if !cmd.Fix {
		return fmt.Errorf("%d conflict(s):\n%s", len(result.Conflicts), result.FormatReport())
	}

	var actions []validation.FixAction
	if _, err := ctx.Dispatch(state.RepairReferences{Report: &actions}); err != nil {
		return fmt.Errorf("failed to repair references: %w", err)
	}
	for _, a := range actions {
		ctx.Printf("   fixed: %s\n", a.Action)
	}

	result = validation.New().ValidateState(ctx.State.State())
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) need manual attention:\n%s", len(result.Conflicts), result.FormatReport())
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	settings := ctx.State.State().Settings
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("configured timezone %q cannot be loaded", settings.Timezone)
	}
	return nil
}

func checkHabitHistory(ctx *cli.Context) error {
	var problems int
	for _, h := range ctx.State.State().Habits {
		for day, e := range h.History {
			if _, err := time.Parse(constants.DateFormat, day); err != nil {
				problems++
				continue
			}
			if e.Checklist != (h.Kind == models.KindChecklist) && !e.IsSkipped() {
				problems++
				continue
			}
			if !e.Checklist && e.Value < 0 && !e.IsSkipped() {
				problems++
			}
		}
	}
	if problems > 0 {
		return fmt.Errorf("found %d history entries with an invalid day or value", problems)
	}
	return nil
}
