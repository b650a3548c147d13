package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
	appstate "github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/tui/state"
)

// NewValueForm asks for the exact value of one habit on one day.
func NewValueForm(h models.Habit, fm *state.ValueFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("%s on %s (%s)", h.Name, fm.Day, h.Unit)).
				Value(&fm.Value).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return fmt.Errorf("enter a number")
					}
					if v < 0 {
						return fmt.Errorf("must not be negative")
					}
					if h.IsWeight() && v == 0 {
						return fmt.Errorf("weight must be positive")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func openValueForm(m *state.Model, habitID, day string) tea.Cmd {
	h, ok := appstate.HabitByID(m.App.State(), habitID)
	if !ok {
		return nil
	}
	if h.IsQuit() || h.IsChecklist() {
		m.Status = "That habit is not logged by value."
		return nil
	}
	current, _ := engine.DayValue(h, day)
	m.ValueForm = &state.ValueFormModel{HabitID: h.ID, Day: day}
	if current > 0 {
		m.ValueForm.Value = render.Number(current)
	}
	m.Form = NewValueForm(h, m.ValueForm)
	m.PreviousState = m.State
	m.State = constants.StateLogValue
	return m.Form.Init()
}

// HandleLogValueState sets a day's value: weight habits record a
// measurement, numeric habits are moved to the typed total.
func HandleLogValueState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.State = m.PreviousState
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		m.State = m.PreviousState
		fm := m.ValueForm
		h, ok := appstate.HabitByID(m.App.State(), fm.HabitID)
		if !ok {
			m.Status = "That habit no longer exists."
			break
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(fm.Value), 64)
		if err != nil {
			break
		}
		if h.IsWeight() {
			dispatch(m, appstate.LogWeight{HabitID: h.ID, Day: fm.Day, Value: v})
			break
		}
		current, _ := engine.DayValue(h, fm.Day)
		dispatch(m, appstate.LogDelta{HabitID: h.ID, Day: fm.Day, Delta: v - current})
	case huh.StateAborted:
		m.State = m.PreviousState
	}
	return tea.Batch(cmds...)
}
