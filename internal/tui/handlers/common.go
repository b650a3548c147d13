package handlers

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/logger"
	appstate "github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/tui/state"
)

// dispatch applies cmd and refreshes every view. Failures are shown in the
// status line instead of ending the program.
func dispatch(m *state.Model, cmd appstate.Command) bool {
	if _, err := m.App.Dispatch(cmd); err != nil {
		logger.Warn("TUI command failed", "error", err)
		m.Status = statusFor(err)
		return false
	}
	m.Status = ""
	m.Refresh()
	return true
}

func statusFor(err error) string {
	switch {
	case errors.Is(err, appstate.ErrHabitNotFound):
		return "That habit no longer exists."
	case errors.Is(err, appstate.ErrMediaNotFound):
		return "That media item no longer exists."
	case errors.Is(err, appstate.ErrWrongHabitKind):
		return "That action does not apply to this habit."
	default:
		return "Error: " + err.Error()
	}
}

// DispatchMsg carries a command to be applied by the next Update, so a
// deferred action always runs against the current model.
type DispatchMsg struct {
	Command appstate.Command
}

func dispatchLater(cmd appstate.Command) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return DispatchMsg{Command: cmd} }
	}
}

// HandleDispatchMessages applies deferred commands.
func HandleDispatchMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	if msg, ok := msg.(DispatchMsg); ok {
		dispatch(m, msg.Command)
		return true, nil
	}
	return false, nil
}
