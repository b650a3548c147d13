// Package detail shows one habit: its week, streak and checklist.
package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
	appstate "github.com/julianstephens/habitual/internal/state"
	"github.com/julianstephens/habitual/internal/utils"
)

type BackMsg struct{}

// ToggleItemMsg checks or unchecks a checklist node on Day.
type ToggleItemMsg struct {
	HabitID string
	Day     string
	NodeID  string
}

type row struct {
	node  models.MicroHabit
	depth int
}

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Back   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle item")),
		Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	}
}

type Model struct {
	keys    KeyMap
	habitID string
	habits  []models.Habit
	habit   models.Habit
	found   bool
	date    time.Time
	now     time.Time
	dayEnd  string
	rows    []row
	cursor  int
}

func New() Model {
	return Model{keys: DefaultKeyMap()}
}

// Open selects the habit shown on date.
func (m *Model) Open(id string, date time.Time) {
	if id != m.habitID {
		m.cursor = 0
	}
	m.habitID = id
	m.date = date
	m.load()
}

func (m *Model) SetState(st models.AppState, now time.Time) {
	m.habits = st.Habits
	m.now = now
	m.dayEnd = st.Settings.DayEndTime
	if m.date.IsZero() {
		m.date = engine.EffectiveToday(now, m.dayEnd)
	}
	m.load()
}

func (m *Model) load() {
	m.habit, m.found = appstate.HabitByID(models.AppState{Habits: m.habits}, m.habitID)
	m.rows = nil
	if !m.found {
		return
	}
	var walk func(nodes []models.MicroHabit, depth int)
	walk = func(nodes []models.MicroHabit, depth int) {
		for _, n := range nodes {
			m.rows = append(m.rows, row{node: n, depth: depth})
			walk(n.SubHabits, depth+1)
		}
	}
	walk(engine.ResolveStructure(m.habit, m.date), 0)
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.Toggle):
		if m.cursor < len(m.rows) {
			toggle := ToggleItemMsg{HabitID: m.habitID, Day: utils.DayKey(m.date), NodeID: m.rows[m.cursor].node.ID}
			return m, func() tea.Msg { return toggle }
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.found {
		return render.Muted.Render("Habit not found. Press esc to go back.")
	}
	h := m.habit
	color := render.HabitColor(h.Color)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(color).Render(h.Name))
	b.WriteString(render.Muted.Render(fmt.Sprintf("  %s · %s · %s", h.Kind, h.Frequency, h.TimeOfDay)))
	b.WriteString("\n")
	if h.Notes != "" {
		b.WriteString(render.Muted.Render(h.Notes) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(render.WeekStrip(h, engine.WeekStrip(h, m.date, m.now, m.dayEnd)))
	b.WriteString("\n\n")
	b.WriteString(m.date.Format("Mon 2 Jan") + "  " + render.Summary(h, m.date, m.now))
	b.WriteString("\n")
	if s := render.Streak(h); s != "" {
		b.WriteString("Streak: " + s + "\n")
	}
	if h.IsQuit() {
		b.WriteString(fmt.Sprintf("Resets: %d\n", engine.TotalResets(h)))
	}
	if h.StackTrigger != "" {
		b.WriteString(render.Muted.Render("After: "+h.StackTrigger) + "\n")
	}

	if len(m.rows) > 0 {
		entry, _ := h.History.Get(utils.DayKey(m.date))
		b.WriteString("\n")
		for i, r := range m.rows {
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			check := "[ ]"
			if entry.Has(r.node.ID) {
				check = lipgloss.NewStyle().Foreground(color).Render("[x]")
			}
			b.WriteString(cursor + strings.Repeat("  ", r.depth) + check + " " + r.node.Title + "\n")
		}
		b.WriteString("\n" + render.Muted.Render("space toggle · esc back"))
	} else {
		b.WriteString("\n" + render.Muted.Render("esc back"))
	}
	return b.String()
}
