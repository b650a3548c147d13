package remind

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/reminder"
	"github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

type recordingSender struct {
	texts []string
}

func (s *recordingSender) Notify(_ context.Context, text string) error {
	s.texts = append(s.texts, text)
	return nil
}

// setupTestDB loads the default data at 2024-06-12 07:30 (a Wednesday) and
// gives Skincare a 07:30 and a 21:00 reminder.
func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	now := time.Date(2024, 6, 12, 7, 30, 0, 0, time.Local)
	ctx := cli.NewContext(store, state.WithClock(func() time.Time { return now }))
	out := &bytes.Buffer{}
	ctx.Out = out
	if err := ctx.Load(); err != nil {
		t.Fatalf("failed to load state: %v", err)
	}

	h, _ := state.HabitByID(ctx.State.State(), "h1")
	h.Reminders = []models.Reminder{
		{Time: "07:30", Days: models.AllWeekdays},
		{Time: "21:00", Days: []models.Weekday{models.Wednesday}},
	}
	if _, err := ctx.Dispatch(state.UpdateHabit{Habit: h}); err != nil {
		t.Fatalf("failed to add reminders: %v", err)
	}
	return ctx, out
}

func stubSender(t *testing.T) *recordingSender {
	t.Helper()
	s := &recordingSender{}
	orig := newSender
	newSender = func() reminder.Sender { return s }
	t.Cleanup(func() { newSender = orig })
	return s
}

func TestRemindListCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	if err := (&RemindListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "07:30  Skincare") || !strings.Contains(got, "21:00  Skincare") {
		t.Errorf("output = %q", got)
	}
	if strings.Index(got, "07:30") > strings.Index(got, "21:00") {
		t.Errorf("reminders not ordered by time:\n%s", got)
	}
}

func TestRemindWatchOnce(t *testing.T) {
	ctx, out := setupTestDB(t)
	sender := stubSender(t)

	cmd := &RemindWatchCmd{Once: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first scan failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second scan failed: %v", err)
	}

	if len(sender.texts) != 1 || sender.texts[0] != "Time for your goal: Skincare!" {
		t.Errorf("sent = %v, want one Skincare reminder", sender.texts)
	}
	if !strings.Contains(out.String(), "[07:30] Time for your goal: Skincare!") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRemindWatchOnceNotificationsOff(t *testing.T) {
	ctx, _ := setupTestDB(t)
	sender := stubSender(t)
	if _, err := ctx.Dispatch(state.SetNotifications{Enabled: false}); err != nil {
		t.Fatalf("failed to disable notifications: %v", err)
	}
	if err := (&RemindWatchCmd{Once: true}).Run(ctx); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(sender.texts) != 0 {
		t.Errorf("sent = %v with notifications disabled", sender.texts)
	}
}
