package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/tui/state"
)

// HandleGlobalKeys handles global key presses
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return true, tea.Quit
	}

	// Everything else only applies on the tabbed views.
	if int(m.State) >= constants.MainViews {
		return false, nil
	}

	switch msg.String() {
	case "q":
		m.Quitting = true
		return true, tea.Quit
	case "?":
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	case "tab":
		m.State = constants.SessionState((int(m.State) + 1) % constants.MainViews)
		m.Status = ""
		return true, nil
	case "shift+tab":
		m.State = constants.SessionState((int(m.State) + constants.MainViews - 1) % constants.MainViews)
		m.Status = ""
		return true, nil
	case "1", "2", "3", "4", "5", "6", "7":
		m.State = constants.SessionState(int(msg.String()[0] - '1'))
		m.Status = ""
		return true, nil
	}
	return false, nil
}
