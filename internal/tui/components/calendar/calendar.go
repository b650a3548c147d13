package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
	appstate "github.com/julianstephens/habitual/internal/state"
)

type KeyMap struct {
	PrevHabit key.Binding
	NextHabit key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevHabit: key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous habit")),
		NextHabit: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next habit")),
		PrevMonth: key.NewBinding(key.WithKeys("[", "left", "h"), key.WithHelp("[", "previous month")),
		NextMonth: key.NewBinding(key.WithKeys("]", "right", "l"), key.WithHelp("]", "next month")),
	}
}

type Model struct {
	keys     KeyMap
	habits   []models.Habit
	selected int
	year     int
	month    time.Month
	now      time.Time
	dayEnd   string
}

func New() Model {
	return Model{keys: DefaultKeyMap()}
}

func (m *Model) SetState(st models.AppState, now time.Time) {
	m.habits = appstate.SortedHabits(st)
	m.now = now
	m.dayEnd = st.Settings.DayEndTime
	if m.year == 0 {
		today := engine.EffectiveToday(now, m.dayEnd)
		m.year, m.month = today.Year(), today.Month()
	}
	if m.selected >= len(m.habits) {
		m.selected = max(0, len(m.habits)-1)
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.PrevHabit):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, m.keys.NextHabit):
			if m.selected < len(m.habits)-1 {
				m.selected++
			}
		case key.Matches(msg, m.keys.PrevMonth):
			m.shift(-1)
		case key.Matches(msg, m.keys.NextMonth):
			m.shift(1)
		}
	}
	return m, nil
}

func (m *Model) shift(months int) {
	first := time.Date(m.year, m.month+time.Month(months), 1, 0, 0, 0, 0, time.Local)
	m.year, m.month = first.Year(), first.Month()
}

func (m Model) View() string {
	if len(m.habits) == 0 {
		return render.Muted.Render("No habits yet.")
	}
	h := m.habits[m.selected]
	loc := m.now.Location()
	grid := engine.BuildMonthGrid(h, m.year, m.month, loc, m.now, m.dayEnd)

	days := make([]time.Time, len(grid.Days))
	for i, ds := range grid.Days {
		days[i] = ds.Date
	}
	rate := engine.CompletionRate(h, days, m.now, m.dayEnd)

	var b strings.Builder
	b.WriteString(render.Title.Foreground(render.HabitColor(h.Color)).Render(h.Name))
	b.WriteString(render.Muted.Render(fmt.Sprintf("  (%d/%d)", m.selected+1, len(m.habits))))
	b.WriteString("\n\n")
	b.WriteString(render.MonthGrid(h, grid))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Completion %3d%% ", rate))
	b.WriteString(render.ProgressBar(float64(rate), 20, render.HabitColor(h.Color)))
	b.WriteString("\n\n" + render.Muted.Render("↑/↓ habit · [/] month"))
	return b.String()
}
