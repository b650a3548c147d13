package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	appstate "github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/tui/components/detail"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/tui/forms"
	"github.com/julianstephens/habitual/internal/tui/state"
	"github.com/julianstephens/habitual/internal/utils"
)

// HandleHabitFormState drives the add and edit habit forms.
func HandleHabitFormState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.State = constants.StateHabits
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		var h models.Habit
		if m.State == constants.StateEditHabit {
			cur, ok := appstate.HabitByID(m.App.State(), m.EditingHabitID)
			if !ok {
				m.Status = "That habit no longer exists."
				m.State = constants.StateHabits
				return tea.Batch(cmds...)
			}
			h = cur
		}
		if err := m.HabitForm.Apply(&h); err != nil {
			m.Status = "Error: " + err.Error()
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}

		var command appstate.Command = appstate.AddHabit{Habit: h}
		if m.State == constants.StateEditHabit {
			command = appstate.UpdateHabit{Habit: h}
		}
		if !dispatch(m, command) {
			// Stay in the form so the user can correct it or cancel with esc.
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.EditingHabitID = ""
		m.State = constants.StateHabits
	case huh.StateAborted:
		m.EditingHabitID = ""
		m.State = constants.StateHabits
	}
	return tea.Batch(cmds...)
}

// HandleHabitMessages handles messages from the habits and detail components
func HandleHabitMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.HabitForm = forms.NewHabitFormModel()
		m.Form = forms.NewHabitForm(m.HabitForm)
		m.State = constants.StateAddHabit
		return true, m.Form.Init()

	case habits.EditHabitMsg:
		h, ok := appstate.HabitByID(m.App.State(), msg.ID)
		if !ok {
			return true, nil
		}
		m.EditingHabitID = h.ID
		m.HabitForm = forms.FromHabit(h)
		m.Form = forms.NewHabitForm(m.HabitForm)
		m.State = constants.StateEditHabit
		return true, m.Form.Init()

	case habits.DeleteHabitMsg:
		h, ok := appstate.HabitByID(m.App.State(), msg.ID)
		if !ok {
			return true, nil
		}
		id := h.ID
		return true, func() tea.Msg {
			return constants.ConfirmationMsg{
				Message: fmt.Sprintf("Delete habit %q and all of its history?", h.Name),
				Action:  dispatchLater(appstate.DeleteHabit{ID: id}),
			}
		}

	case habits.OpenDetailMsg:
		openDetail(m, msg.ID)
		return true, nil

	case habits.LogMsg:
		return true, logStep(m, msg)

	case habits.SkipMsg:
		dispatch(m, appstate.ToggleSkip{HabitID: msg.ID, Day: msg.Day})
		return true, nil

	case habits.RelapseMsg:
		dispatch(m, appstate.LogRelapse{HabitID: msg.ID, Day: msg.Day})
		return true, nil

	case habits.LogValueMsg:
		return true, openValueForm(m, msg.ID, msg.Day)

	case habits.WaterMsg:
		glasses := m.App.State().WaterIntake[msg.Day] + msg.Delta
		dispatch(m, appstate.SetWaterIntake{Day: msg.Day, Glasses: max(0, glasses)})
		return true, nil

	case detail.ToggleItemMsg:
		dispatch(m, appstate.ToggleMicroHabit{HabitID: msg.HabitID, Day: msg.Day, NodeID: msg.NodeID})
		return true, nil

	case detail.BackMsg:
		m.State = constants.StateHabits
		return true, nil
	}
	return false, nil
}

func openDetail(m *state.Model, id string) {
	date, err := utils.ParseDateInLocation(m.HabitsModel.Day(), m.App.Now().Location())
	if err != nil {
		date = engine.EffectiveToday(m.App.Now(), m.App.State().Settings.DayEndTime)
	}
	m.DetailModel.Open(id, date)
	m.PreviousState = m.State
	m.State = constants.StateDetail
}

// logStep adds or removes one step. Checklists open their detail view and
// weight habits ask for a value, since neither is logged by a fixed step.
func logStep(m *state.Model, msg habits.LogMsg) tea.Cmd {
	st := m.App.State()
	h, ok := appstate.HabitByID(st, msg.ID)
	if !ok {
		m.Status = "That habit no longer exists."
		return nil
	}

	switch h.Kind {
	case models.KindChecklist:
		openDetail(m, h.ID)
		return nil
	case models.KindWeight:
		return openValueForm(m, h.ID, msg.Day)
	case models.KindQuit:
		m.Status = "Press r to log a relapse."
		return nil
	}

	now := m.App.Now()
	if msg.Sign > 0 {
		date, err := utils.ParseDateInLocation(msg.Day, now.Location())
		if err == nil {
			if locked, trigger := engine.StackLock(st.Habits, h, date, now, st.Settings.DayEndTime); locked {
				m.Status = fmt.Sprintf("Complete %s first.", trigger.Name)
				return nil
			}
		}
	}
	dispatch(m, appstate.LogDelta{HabitID: h.ID, Day: msg.Day, Delta: float64(msg.Sign) * h.Step()})
	return nil
}
