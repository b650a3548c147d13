package main

import (
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/cli/backups"
	"github.com/julianstephens/habitual/internal/cli/daily"
	"github.com/julianstephens/habitual/internal/cli/habits"
	"github.com/julianstephens/habitual/internal/cli/media"
	"github.com/julianstephens/habitual/internal/cli/remind"
	"github.com/julianstephens/habitual/internal/cli/reports"
	"github.com/julianstephens/habitual/internal/cli/schedule"
	"github.com/julianstephens/habitual/internal/cli/settings"
	"github.com/julianstephens/habitual/internal/cli/system"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path, *.json path, PostgreSQL connection string or 'keyring'. PostgreSQL strings must NOT embed a password; use the environment, .pgpass or the OS keyring instead." type:"string" default:"${default_config}" env:"HABITUAL_CONFIG"`
	Verbose bool   `name:"debug" help:"Log debug output to stderr as well as the log file."`

	Init     system.InitCmd       `cmd:"" help:"Initialize habitual storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit    habits.HabitCmd      `cmd:"" help:"Manage and log habits."`
	Week     reports.WeekCmd      `cmd:"" help:"Show the week for every habit."`
	Calendar reports.CalendarCmd  `cmd:"" help:"Show a month calendar for a habit."`
	Report   reports.ReportCmd    `cmd:"" help:"Show completion rates for a week, month or year."`
	Media    media.MediaCmd       `cmd:"" help:"Track books, movies, games and drawings."`
	Schedule schedule.ScheduleCmd `cmd:"" help:"Manage the daily schedule."`
	Water    daily.WaterCmd       `cmd:"" help:"Show or change water intake."`
	Dump     daily.DumpCmd        `cmd:"" help:"Show or edit the brain dump."`
	Remind   remind.RemindCmd     `cmd:"" help:"List due reminders or watch for them."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report whether a connection string is stored."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Debug  system.DebugCmd  `cmd:"" help:"Debug commands for troubleshooting."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Scan and send due reminders once (for cron)."`
}

// Commands that open the store themselves, or never touch it.
var skipLoad = []string{"init", "migrate", "doctor", "keyring", "backup", "debug db-path"}

func needsStore(command string) bool {
	return !strings.HasPrefix(command, "keyring") && !strings.HasPrefix(command, "notify --test")
}

func needsLoad(command string) bool {
	for _, prefix := range skipLoad {
		if strings.HasPrefix(command, prefix) {
			return false
		}
	}
	return true
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit progress and streak tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	configDir := filepath.Dir(utils.ExpandPath(CLI.Config))
	if storage.DetectKind(CLI.Config) == storage.KindPostgres {
		configDir = filepath.Dir(utils.ExpandPath(constants.DefaultConfigPath))
	}
	if err := logger.Init(logger.Config{Debug: CLI.Verbose, ConfigDir: configDir}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	command := ctx.Command()
	if CLI.Notify.Test != "" {
		command = "notify --test"
	}
	logger.Debug("Starting", "command", command, "config", CLI.Config)

	store, err := storage.New(CLI.Config)
	if err != nil && needsStore(command) {
		if stderrors.Is(err, postgres.ErrEmbeddedCredentials) {
			err = errors.WithHint(err, "store the full string with 'habitual keyring set', export HABITUAL_DB_CONNECTION, or use a .pgpass file")
		}
		errors.Fatal(err)
	}

	errors.Fatal(run(ctx, store, command))
}

func run(ctx *kong.Context, store storage.Provider, command string) error {
	appCtx := cli.NewContext(store)

	if store != nil && needsLoad(command) && needsStore(command) {
		if err := appCtx.Load(); err != nil {
			return err
		}
	}
	if store != nil {
		defer store.Close()
	}

	return ctx.Run(appCtx)
}
