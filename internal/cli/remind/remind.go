package remind

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/reminder"
	"github.com/julianstephens/habitual/internal/render"
)

// newSender is replaced in tests.
var newSender = func() reminder.Sender { return notifier.New() }

type RemindCmd struct {
	List  RemindListCmd  `cmd:"" default:"withargs" help:"List today's remaining reminders."`
	Watch RemindWatchCmd `cmd:"" help:"Deliver reminders through the tray app until interrupted."`
}

type RemindListCmd struct{}

func (c *RemindListCmd) Run(ctx *cli.Context) error {
	st := ctx.State.State()
	now := ctx.State.Now()
	upcoming := reminder.Upcoming(st, now)
	if !st.Settings.NotificationsEnabled {
		ctx.Println(render.Warning.Render("Notifications are disabled; enable them with 'settings --notifications'."))
	}
	if len(upcoming) == 0 {
		ctx.Println("No more reminders today.")
		return nil
	}
	for _, d := range upcoming {
		ctx.Printf("%s  %s\n", d.Time, d.HabitName)
	}
	return nil
}

type RemindWatchCmd struct {
	Once bool `help:"Scan once and exit."`
}

func (c *RemindWatchCmd) Run(ctx *cli.Context) error {
	w := reminder.NewWatcher(ctx.State, ctx.Store, newSender())
	printSent := func(d reminder.Due) {
		ctx.Printf("[%s] %s\n", d.Time, d.Message())
	}

	if c.Once {
		sent, err := w.Scan(context.Background())
		for _, d := range sent {
			printSent(d)
		}
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx.Printf("Watching reminders (%s). Press Ctrl+C to stop.\n", constants.ReminderScanSpec)
	return w.Run(runCtx, printSent)
}
