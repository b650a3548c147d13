package state

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	appstate "github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/tui/components/calendar"
	"github.com/julianstephens/habitual/internal/tui/components/detail"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/tui/components/media"
	"github.com/julianstephens/habitual/internal/tui/components/report"
	"github.com/julianstephens/habitual/internal/tui/components/schedule"
	"github.com/julianstephens/habitual/internal/tui/components/settings"
	"github.com/julianstephens/habitual/internal/tui/components/week"
	"github.com/julianstephens/habitual/internal/tui/forms"
	"github.com/julianstephens/habitual/internal/validation"
)

// SettingsFormModel represents the form model for settings
type SettingsFormModel struct {
	DayEndTime           string
	Timezone             string
	NotificationsEnabled bool
}

// ValueFormModel holds an exact value typed for one habit and day.
type ValueFormModel struct {
	HabitID string
	Day     string
	Value   string
}

// Model represents the shared state for the TUI
type Model struct {
	App                 *appstate.Store
	State               constants.SessionState
	PreviousState       constants.SessionState
	Keys                KeyMap
	Help                help.Model
	HabitsModel         habits.Model
	DetailModel         detail.Model
	WeekModel           week.Model
	CalendarModel       calendar.Model
	ReportModel         report.Model
	ScheduleModel       schedule.Model
	MediaModel          media.Model
	SettingsModel       settings.Model
	Form                *huh.Form
	HabitForm           *forms.HabitFormModel
	SettingsForm        *SettingsFormModel
	ValueForm           *ValueFormModel
	EditingHabitID      string
	ConfirmMessage      string
	PendingAction       func() tea.Cmd
	ValidationWarning   string
	ValidationConflicts []validation.Conflict
	Status              string // last error or notice shown under the content
	Quitting            bool
	Width               int
	Height              int
}

// New creates a new state Model over a loaded store.
func New(app *appstate.Store) Model {
	m := Model{
		App:           app,
		State:         constants.StateHabits,
		Keys:          DefaultKeyMap(),
		Help:          help.New(),
		HabitsModel:   habits.New(0, 0),
		DetailModel:   detail.New(),
		WeekModel:     week.New(),
		CalendarModel: calendar.New(),
		ReportModel:   report.New(),
		ScheduleModel: schedule.New(),
		MediaModel:    media.New(0, 0),
		SettingsModel: settings.New(0, 0),
	}
	m.Refresh()
	return m
}

// Refresh pushes the current snapshot into every component.
func (m *Model) Refresh() {
	st := m.App.State()
	now := m.App.Now()
	m.HabitsModel.SetState(st, now)
	m.DetailModel.SetState(st, now)
	m.WeekModel.SetState(st, now)
	m.CalendarModel.SetState(st, now)
	m.ReportModel.SetState(st, now)
	m.ScheduleModel.SetState(st, now)
	m.MediaModel.SetState(st)
	m.SettingsModel.SetSettings(st.Settings)
	m.UpdateValidationStatus()
}

// SetSize resizes the components that care about the terminal size.
func (m *Model) SetSize(width, height int) {
	m.Width = width
	m.Height = height
	m.Help.Width = width
	m.HabitsModel.SetSize(width-4, height-6)
	m.MediaModel.SetSize(width-4, height-6)
	m.SettingsModel.SetSize(width-4, height-6)
}
