package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// logRetentionDays is how long fired reminders are remembered.
const logRetentionDays = 7

// Source provides the current document. Load re-reads it so changes made
// by other processes are picked up between scans.
type Source interface {
	Load() error
	State() models.AppState
	Now() time.Time
}

// Ledger records which reminders already fired.
type Ledger interface {
	MarkReminderFired(habitID, day, at string) (bool, error)
	PruneReminderLog(before string) error
}

type Sender interface {
	Notify(ctx context.Context, text string) error
}

// Watcher scans for due reminders on a cron schedule.
type Watcher struct {
	source Source
	ledger Ledger
	sender Sender
	spec   string
}

func NewWatcher(source Source, ledger Ledger, sender Sender) *Watcher {
	return &Watcher{
		source: source,
		ledger: ledger,
		sender: sender,
		spec:   constants.ReminderScanSpec,
	}
}

// Scan delivers every due reminder that has not fired yet and returns the
// ones it sent. A failed delivery is logged and does not stop the scan.
func (w *Watcher) Scan(ctx context.Context) ([]Due, error) {
	if err := w.source.Load(); err != nil {
		return nil, fmt.Errorf("failed to reload state: %w", err)
	}

	var sent []Due
	for _, d := range DueReminders(w.source.State(), w.source.Now()) {
		first, err := w.ledger.MarkReminderFired(d.HabitID, d.Day, d.Time)
		if err != nil {
			return sent, fmt.Errorf("failed to record reminder: %w", err)
		}
		if !first {
			continue
		}
		if err := w.sender.Notify(ctx, d.Message()); err != nil {
			logger.Warn("Reminder not delivered", "habit", d.HabitName, "time", d.Time, "error", err)
			continue
		}
		logger.Info("Reminder sent", "habit", d.HabitName, "time", d.Time)
		sent = append(sent, d)
	}
	return sent, nil
}

// Prune forgets fired reminders older than the retention window.
func (w *Watcher) Prune() error {
	cutoff := utils.DayKey(utils.AddDays(w.source.Now(), -logRetentionDays))
	return w.ledger.PruneReminderLog(cutoff)
}

// Run scans until ctx is cancelled. onSend, when set, is called for every
// delivered reminder.
func (w *Watcher) Run(ctx context.Context, onSend func(Due)) error {
	c := cron.New(cron.WithLocation(w.source.Now().Location()))

	scan := func() {
		sent, err := w.Scan(ctx)
		if err != nil {
			logger.Error("Reminder scan failed", "error", err)
		}
		if onSend != nil {
			for _, d := range sent {
				onSend(d)
			}
		}
	}
	if _, err := c.AddFunc(w.spec, scan); err != nil {
		return fmt.Errorf("invalid scan schedule %q: %w", w.spec, err)
	}
	if _, err := c.AddFunc("@daily", func() {
		if err := w.Prune(); err != nil {
			logger.Warn("Failed to prune reminder log", "error", err)
		}
	}); err != nil {
		return err
	}

	if err := w.Prune(); err != nil {
		logger.Warn("Failed to prune reminder log", "error", err)
	}
	scan()

	c.Start()
	logger.Debug("Reminder watcher started", "spec", w.spec)
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
