package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	appstate "github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/tui/components/schedule"
	"github.com/julianstephens/habitual/internal/tui/state"
)

// HandleScheduleMessages handles messages from the schedule component
func HandleScheduleMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case schedule.RemoveBlockMsg:
		dispatch(m, appstate.RemoveBlock{Day: msg.Day, Index: msg.Index})
		return true, nil
	}
	return false, nil
}
