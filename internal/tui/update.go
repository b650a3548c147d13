package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/tui/handlers"
	"github.com/julianstephens/habitual/internal/tui/state"
)

type messageHandler func(m *state.Model, msg tea.Msg) (bool, tea.Cmd)

var messageHandlers = []messageHandler{
	handlers.HandleDispatchMessages,
	handlers.HandleConfirmationMessages,
	handlers.HandleHabitMessages,
	handlers.HandleMediaMessages,
	handlers.HandleScheduleMessages,
	handlers.HandleSettingsMessages,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	// Forms receive every message; the dialog only keys.
	switch m.State {
	case constants.StateAddHabit, constants.StateEditHabit:
		return m, handlers.HandleHabitFormState(&m.Model, msg)
	case constants.StateLogValue:
		return m, handlers.HandleLogValueState(&m.Model, msg)
	case constants.StateEditSettings:
		return m, handlers.HandleEditSettingsState(&m.Model, msg)
	case constants.StateConfirmDelete:
		if isKey(msg) {
			return m, handlers.HandleConfirmDeleteState(&m.Model, msg)
		}
	}

	for _, handle := range messageHandlers {
		if handled, cmd := handle(&m.Model, msg); handled {
			return m, cmd
		}
	}

	if km, ok := msg.(tea.KeyMsg); ok && !m.capturingKeys() {
		if handled, cmd := handlers.HandleGlobalKeys(&m.Model, km); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.State {
	case constants.StateHabits:
		m.HabitsModel, cmd = m.HabitsModel.Update(msg)
	case constants.StateDetail:
		m.DetailModel, cmd = m.DetailModel.Update(msg)
	case constants.StateWeek:
		m.WeekModel, cmd = m.WeekModel.Update(msg)
	case constants.StateCalendar:
		m.CalendarModel, cmd = m.CalendarModel.Update(msg)
	case constants.StateReport:
		m.ReportModel, cmd = m.ReportModel.Update(msg)
	case constants.StateSchedule:
		m.ScheduleModel, cmd = m.ScheduleModel.Update(msg)
	case constants.StateMedia:
		m.MediaModel, cmd = m.MediaModel.Update(msg)
	case constants.StateSettings:
		m.SettingsModel, cmd = m.SettingsModel.Update(msg)
	}
	return m, cmd
}

func isKey(msg tea.Msg) bool {
	_, ok := msg.(tea.KeyMsg)
	return ok
}
