package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/constants"
	appstate "github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/tui/components/media"
	"github.com/julianstephens/habitual/internal/tui/state"
)

// HandleMediaMessages handles messages from the media component
func HandleMediaMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case media.SetStatusMsg:
		dispatch(m, appstate.UpdateMediaStatus{ID: msg.ID, Status: msg.Status})
		return true, nil

	case media.DeleteMediaMsg:
		id := msg.ID
		return true, func() tea.Msg {
			return constants.ConfirmationMsg{
				Message: fmt.Sprintf("Delete %q? Items inside a collection are deleted too.", msg.Title),
				Action:  dispatchLater(appstate.DeleteMedia{ID: id}),
			}
		}
	}
	return false, nil
}
