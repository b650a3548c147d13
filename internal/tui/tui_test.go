package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	appstate "github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/tui/components/detail"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/tui/components/media"
	"github.com/julianstephens/habitual/internal/tui/components/schedule"
)

type memPersister struct {
	data []byte
}

func (p *memPersister) LoadState() ([]byte, error) { return p.data, nil }

func (p *memPersister) SaveState(data []byte) error {
	p.data = append([]byte(nil), data...)
	return nil
}

var testNow = time.Date(2024, 6, 12, 10, 0, 0, 0, time.Local)

const (
	today     = "2024-06-12"
	yesterday = "2024-06-11"
)

func setupModel(t *testing.T) Model {
	t.Helper()
	app := appstate.New(&memPersister{}, appstate.WithClock(func() time.Time { return testNow }))
	if err := app.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m := NewModel(app)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers msg and then feeds back the message produced by the
// returned command, once, the way the runtime would.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil || int(m.State) >= constants.MainViews && m.State != constants.StateDetail {
		return m
	}
	if out := cmd(); out != nil {
		next, _ = m.Update(out)
		m = next.(Model)
	}
	return m
}

func habitValue(t *testing.T, m Model, id, day string) float64 {
	t.Helper()
	h, ok := appstate.HabitByID(m.App.State(), id)
	if !ok {
		t.Fatalf("habit %s not found", id)
	}
	v, _ := engine.DayValue(h, day)
	return v
}

func TestTabNavigation(t *testing.T) {
	m := setupModel(t)

	for i := 0; i < constants.MainViews; i++ {
		m = send(t, m, keyMsg("tab"))
	}
	if m.State != constants.StateHabits {
		t.Errorf("after a full cycle state = %v, want habits", m.State)
	}

	m = send(t, m, keyMsg("shift+tab"))
	if m.State != constants.StateSettings {
		t.Errorf("shift+tab from habits = %v, want settings", m.State)
	}

	m = send(t, m, keyMsg("3"))
	if m.State != constants.StateCalendar {
		t.Errorf("jump 3 = %v, want calendar", m.State)
	}
}

func TestQuit(t *testing.T) {
	m := setupModel(t)
	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if !m.Quitting || cmd == nil {
		t.Error("q should quit from a main view")
	}
	if m.View() != "" {
		t.Error("view should be empty once quitting")
	}
}

func TestLogFromHabitList(t *testing.T) {
	m := setupModel(t)

	// Skincare is the first morning habit and is already done today.
	m = send(t, m, keyMsg("+"))
	if got := habitValue(t, m, "h1", today); got != 2 {
		t.Errorf("Skincare today = %v, want 2", got)
	}

	m = send(t, m, habits.LogMsg{ID: "h3", Day: today, Sign: 1})
	if got := habitValue(t, m, "h3", today); got != 20 {
		t.Errorf("Lettura today = %v, want 20 after one 5 minute step", got)
	}

	m = send(t, m, habits.LogMsg{ID: "h3", Day: today, Sign: -1})
	if got := habitValue(t, m, "h3", today); got != 15 {
		t.Errorf("Lettura today = %v, want 15 after undo", got)
	}
}

func TestLogBlockedByStackLock(t *testing.T) {
	m := setupModel(t)

	h2, _ := appstate.HabitByID(m.App.State(), "h2")
	h2.StackedAfterID = "h1"
	if _, err := m.App.Dispatch(appstate.UpdateHabit{Habit: h2}); err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}
	m.Refresh()

	// Skincare was not done yesterday, so Esercizi stays locked.
	m = send(t, m, habits.LogMsg{ID: "h2", Day: yesterday, Sign: 1})
	if got := habitValue(t, m, "h2", yesterday); got != 1 {
		t.Errorf("Esercizi yesterday = %v, want unchanged 1", got)
	}
	if !strings.Contains(m.Status, "Skincare") {
		t.Errorf("status = %q, want a hint naming the trigger", m.Status)
	}

	// Undo is never blocked.
	m = send(t, m, habits.LogMsg{ID: "h2", Day: yesterday, Sign: -1})
	if got := habitValue(t, m, "h2", yesterday); got != 0 {
		t.Errorf("Esercizi yesterday = %v, want 0 after undo", got)
	}
}

func TestWeightOpensValueForm(t *testing.T) {
	m := setupModel(t)

	next, _ := m.Update(habits.LogMsg{ID: "h5", Day: today, Sign: 1})
	m = next.(Model)
	if m.State != constants.StateLogValue {
		t.Fatalf("state = %v, want the value form", m.State)
	}
	if m.ValueForm.Value != "81" {
		t.Errorf("value form prefilled with %q, want 81", m.ValueForm.Value)
	}

	next, _ = m.Update(keyMsg("esc"))
	m = next.(Model)
	if m.State != constants.StateHabits {
		t.Errorf("esc from value form = %v, want habits", m.State)
	}
}

func TestDeleteHabitConfirmation(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		exists bool
	}{
		{"declined", "n", true},
		{"confirmed", "y", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupModel(t)

			m = send(t, m, habits.DeleteHabitMsg{ID: "h1"})
			if m.State != constants.StateConfirmDelete {
				t.Fatalf("state = %v, want the confirmation dialog", m.State)
			}
			if !strings.Contains(m.View(), "Skincare") {
				t.Error("dialog should name the habit")
			}

			next, cmd := m.Update(keyMsg(tt.answer))
			m = next.(Model)
			if cmd != nil {
				next, _ = m.Update(cmd())
				m = next.(Model)
			}

			if m.State != constants.StateHabits {
				t.Errorf("state after answer = %v, want habits", m.State)
			}
			if _, ok := appstate.HabitByID(m.App.State(), "h1"); ok != tt.exists {
				t.Errorf("habit exists = %v, want %v", ok, tt.exists)
			}
		})
	}
}

func TestWaterIntake(t *testing.T) {
	m := setupModel(t)

	m = send(t, m, habits.WaterMsg{Day: today, Delta: 1})
	if got := m.App.State().WaterIntake[today]; got != 4 {
		t.Errorf("water today = %d, want 4", got)
	}

	m = send(t, m, habits.WaterMsg{Day: yesterday, Delta: -1})
	if got := m.App.State().WaterIntake[yesterday]; got != 0 {
		t.Errorf("water yesterday = %d, want it clamped at 0", got)
	}
	if m.Status != "" {
		t.Errorf("unexpected status %q", m.Status)
	}
}

func TestMediaStatusCycle(t *testing.T) {
	tests := []struct {
		from models.MediaStatus
		want models.MediaStatus
	}{
		{models.MediaOngoing, models.MediaCompleted},
		{models.MediaCompleted, models.MediaPaused},
		{models.MediaPaused, models.MediaOngoing},
	}
	for _, tt := range tests {
		if got := media.NextStatus(tt.from); got != tt.want {
			t.Errorf("NextStatus(%s) = %s, want %s", tt.from, got, tt.want)
		}
	}

	m := setupModel(t)
	m = send(t, m, media.SetStatusMsg{ID: "g1", Status: models.MediaCompleted})
	item, _ := appstate.FindMedia(m.App.State(), "g1")
	if item.Status != models.MediaCompleted || item.CompletedDate != today {
		t.Errorf("g1 = %s completed %q, want completed today", item.Status, item.CompletedDate)
	}
}

func TestRemoveScheduleBlock(t *testing.T) {
	m := setupModel(t)

	m = send(t, m, schedule.RemoveBlockMsg{Day: today, Index: 1})
	blocks := m.App.State().DailyBlocks[today]
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}
	if blocks[1].Activity != "Team Meeting" {
		t.Errorf("block 1 = %q, want Team Meeting", blocks[1].Activity)
	}
}

func TestDetailNavigation(t *testing.T) {
	m := setupModel(t)

	m = send(t, m, keyMsg("enter"))
	if m.State != constants.StateDetail {
		t.Fatalf("enter = %v, want detail", m.State)
	}
	if !strings.Contains(m.View(), "Skincare") {
		t.Error("detail view should show the selected habit")
	}

	m = send(t, m, detail.BackMsg{})
	if m.State != constants.StateHabits {
		t.Errorf("back = %v, want habits", m.State)
	}
}

func TestFailedCommandShowsStatus(t *testing.T) {
	m := setupModel(t)

	m = send(t, m, habits.SkipMsg{ID: "missing", Day: today})
	if m.Status != "That habit no longer exists." {
		t.Errorf("status = %q", m.Status)
	}

	m = send(t, m, keyMsg("tab"))
	if m.Status != "" {
		t.Error("changing view should clear the status")
	}
}

func TestViewsRender(t *testing.T) {
	m := setupModel(t)

	for i := 0; i < constants.MainViews; i++ {
		view := m.View()
		if !strings.Contains(view, "Habits") || !strings.Contains(view, "Settings") {
			t.Errorf("view %d is missing the tab bar", i)
		}
		m = send(t, m, keyMsg("tab"))
	}
}
