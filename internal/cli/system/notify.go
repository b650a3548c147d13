package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/reminder"
)

// newSender is replaced in tests.
var newSender = func() reminder.Sender { return notifier.New() }

// NotifyCmd runs a single reminder scan. It is meant for cron or a systemd
// timer firing once a minute.
type NotifyCmd struct {
	DryRun bool   `help:"Print due reminders instead of sending them."`
	Test   string `help:"Send this text as a test notification and exit."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if c.Test != "" {
		if err := newSender().Notify(context.Background(), c.Test); err != nil {
			return fmt.Errorf("failed to send notification: %w", err)
		}
		ctx.Println("✓ Notification sent")
		return nil
	}

	st := ctx.State.State()
	if !st.Settings.NotificationsEnabled {
		if c.DryRun {
			ctx.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	if c.DryRun {
		due := reminder.DueReminders(st, ctx.State.Now())
		if len(due) == 0 {
			ctx.Println("No reminders due.")
		}
		for _, d := range due {
			ctx.Println("[DryRun] " + d.Message())
		}
		return nil
	}

	w := reminder.NewWatcher(ctx.State, ctx.Store, newSender())
	if _, err := w.Scan(context.Background()); err != nil {
		return err
	}
	return w.Prune()
}
