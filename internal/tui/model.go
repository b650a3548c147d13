// Package tui is the interactive terminal interface: tabbed views over the
// habit state with forms for editing.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/constants"
	appstate "github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/tui/state"
)

type Model struct {
	state.Model
}

// NewModel builds the TUI over a loaded store.
func NewModel(app *appstate.Store) Model {
	return Model{Model: state.New(app)}
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.Keys.Tab, m.Keys.Jump, m.Keys.Help, m.Keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.Keys.Tab, m.Keys.ShiftTab, m.Keys.Jump, m.Keys.Help, m.Keys.Quit}
	navigation := []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Enter}
	return [][]key.Binding{global, navigation}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// capturingKeys reports whether the focused view needs raw keys, so global
// shortcuts must not fire.
func (m Model) capturingKeys() bool {
	switch m.State {
	case constants.StateHabits:
		return m.HabitsModel.Filtering()
	case constants.StateMedia:
		return m.MediaModel.Filtering()
	}
	return false
}
