package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/tui/state"
)

// HandleConfirmationMessages opens the confirmation dialog
func HandleConfirmationMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case constants.ConfirmationMsg:
		m.ConfirmMessage = msg.Message
		m.PendingAction = msg.Action
		m.PreviousState = m.State
		m.State = constants.StateConfirmDelete
		return true, nil
	}
	return false, nil
}

// HandleConfirmDeleteState waits for y or n
func HandleConfirmDeleteState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if m.PendingAction != nil {
				cmd = m.PendingAction()
			}
			m.PendingAction = nil
			m.ConfirmMessage = ""
			m.State = m.PreviousState
		case "n", "N", "esc":
			m.PendingAction = nil
			m.ConfirmMessage = ""
			m.State = m.PreviousState
		}
	}
	return cmd
}
