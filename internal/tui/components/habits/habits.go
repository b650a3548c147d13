package habits

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
	appstate "github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/utils"
)

type AddHabitMsg struct{}

type EditHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type OpenDetailMsg struct {
	ID string
}

// LogMsg adds (Sign 1) or removes (Sign -1) one step on Day.
type LogMsg struct {
	ID   string
	Day  string
	Sign int
}

type SkipMsg struct {
	ID  string
	Day string
}

type RelapseMsg struct {
	ID  string
	Day string
}

// LogValueMsg asks for an exact value, e.g. a weight measurement.
type LogValueMsg struct {
	ID  string
	Day string
}

type WaterMsg struct {
	Day   string
	Delta int
}

type Item struct {
	Habit   models.Habit
	Day     engine.DayStatus
	Summary string
	Locked  bool
	Trigger string
}

func (i Item) Title() string {
	title := render.Cell(i.Habit, i.Day) + " " + i.Habit.Name
	if i.Locked {
		title += render.Warning.Render("  after " + i.Trigger)
	}
	return title
}

func (i Item) Description() string {
	desc := i.Summary
	if s := render.Streak(i.Habit); s != "" {
		desc += render.Muted.Render("  streak " + s)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Log     key.Binding
	Undo    key.Binding
	Skip    key.Binding
	Value   key.Binding
	Relapse key.Binding
	Detail  key.Binding
	Water   key.Binding
	PrevDay key.Binding
	NextDay key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Log:     key.NewBinding(key.WithKeys("+", " "), key.WithHelp("+/space", "log")),
		Undo:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "undo")),
		Skip:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Value:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "enter value")),
		Relapse: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "relapse")),
		Detail:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Water:   key.NewBinding(key.WithKeys("w", "W"), key.WithHelp("w/W", "water +/-")),
		PrevDay: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous day")),
		NextDay: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next day")),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	date  time.Time
	today time.Time
	water int
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Log, keys.Skip, keys.Detail}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Log, keys.Undo, keys.Skip,
			keys.Value, keys.Relapse, keys.Detail, keys.Water, keys.PrevDay, keys.NextDay}
	}
	return Model{list: l, keys: keys}
}

// SetState rebuilds the rows for the viewed day. The view follows today
// until the user moves to another day.
func (m *Model) SetState(st models.AppState, now time.Time) {
	today := engine.EffectiveToday(now, st.Settings.DayEndTime)
	if m.date.IsZero() || m.date.Equal(m.today) || m.date.After(today) {
		m.date = today
	}
	m.today = today
	m.water = st.WaterIntake[utils.DayKey(m.date)]

	habits := appstate.SortedHabits(st)
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		locked, trigger := engine.StackLock(st.Habits, h, m.date, now, st.Settings.DayEndTime)
		item := Item{
			Habit:   h,
			Day:     engine.Classify(h, m.date, now, st.Settings.DayEndTime),
			Summary: render.Summary(h, m.date, now),
			Locked:  locked,
		}
		if trigger != nil {
			item.Trigger = trigger.Name
		}
		items[i] = item
	}
	m.list.SetItems(items)
}

// Day is the key of the viewed day.
func (m Model) Day() string {
	return utils.DayKey(m.date)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		day := m.Day()
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.PrevDay):
			m.date = utils.AddDays(m.date, -1)
			return m, nil
		case key.Matches(msg, m.keys.NextDay):
			if m.date.Before(m.today) {
				m.date = utils.AddDays(m.date, 1)
			}
			return m, nil
		case key.Matches(msg, m.keys.Water):
			delta := 1
			if msg.String() == "W" {
				delta = -1
			}
			return m, func() tea.Msg { return WaterMsg{Day: day, Delta: delta} }
		}

		if i, ok := m.list.SelectedItem().(Item); ok {
			id := i.Habit.ID
			switch {
			case key.Matches(msg, m.keys.Edit):
				return m, func() tea.Msg { return EditHabitMsg{ID: id} }
			case key.Matches(msg, m.keys.Delete):
				return m, func() tea.Msg { return DeleteHabitMsg{ID: id} }
			case key.Matches(msg, m.keys.Detail):
				return m, func() tea.Msg { return OpenDetailMsg{ID: id} }
			case key.Matches(msg, m.keys.Log):
				return m, func() tea.Msg { return LogMsg{ID: id, Day: day, Sign: 1} }
			case key.Matches(msg, m.keys.Undo):
				return m, func() tea.Msg { return LogMsg{ID: id, Day: day, Sign: -1} }
			case key.Matches(msg, m.keys.Skip):
				return m, func() tea.Msg { return SkipMsg{ID: id, Day: day} }
			case key.Matches(msg, m.keys.Value):
				return m, func() tea.Msg { return LogValueMsg{ID: id, Day: day} }
			case key.Matches(msg, m.keys.Relapse):
				if i.Habit.IsQuit() {
					return m, func() tea.Msg { return RelapseMsg{ID: id, Day: day} }
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := render.Title.Render(m.date.Format("Monday, 2 January 2006"))
	if !m.date.Equal(m.today) {
		header += render.Muted.Render("  (press ] to go forward)")
	}
	footer := render.Muted.Render(fmt.Sprintf("Water: %d glasses", m.water))

	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return header + "\n\n  No habits yet.\n  Press 'a' to add one.\n\n" + footer
	}
	return header + "\n\n" + m.list.View() + "\n" + footer
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height-4)
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
