package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/constants"
)

var tabTitles = []string{"Habits", "Week", "Calendar", "Report", "Schedule", "Media", "Settings"}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string

	switch m.State {
	case constants.StateHabits:
		content = docStyle.Render(m.HabitsModel.View())
	case constants.StateDetail:
		content = docStyle.Render(m.DetailModel.View())
	case constants.StateWeek:
		content = docStyle.Render(m.WeekModel.View())
	case constants.StateCalendar:
		content = docStyle.Render(m.CalendarModel.View())
	case constants.StateReport:
		content = docStyle.Render(m.ReportModel.View())
	case constants.StateSchedule:
		content = docStyle.Render(m.ScheduleModel.View())
	case constants.StateMedia:
		content = docStyle.Render(m.MediaModel.View())
	case constants.StateSettings:
		content = m.SettingsModel.View()
	case constants.StateAddHabit, constants.StateEditHabit, constants.StateLogValue, constants.StateEditSettings:
		content = docStyle.Render(m.Form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirm()
	}

	var status string
	if m.Status != "" {
		status = statusStyle.Render(m.Status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewConflictBanner(),
		content,
		status,
		m.Help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	active := m.State
	if active == constants.StateDetail {
		active = constants.StateHabits
	}
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConflictBanner() string {
	if len(m.ValidationConflicts) == 0 {
		return ""
	}

	var bannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214")).
		Bold(true).
		Padding(0, 1)

	return bannerStyle.Render(fmt.Sprintf("%s · run 'habitual doctor' for details", m.ValidationWarning))
}

func (m Model) viewConfirm() string {
	return lipgloss.Place(m.Width, m.Height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(m.ConfirmMessage),
			warningStyle.Render("This cannot be undone."),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
