package report

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
)

type KeyMap struct {
	Week  key.Binding
	Month key.Binding
	Year  key.Binding
	Up    key.Binding
	Down  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Week:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week")),
		Month: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
		Year:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "year")),
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous habit")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next habit")),
	}
}

type Model struct {
	keys     KeyMap
	habits   []models.Habit
	rng      engine.ReportRange
	selected int
	now      time.Time
	dayEnd   string
}

func New() Model {
	return Model{keys: DefaultKeyMap(), rng: engine.RangeWeek}
}

func (m *Model) SetState(st models.AppState, now time.Time) {
	m.habits = appstate.SortedHabits(st)
	m.now = now
	m.dayEnd = st.Settings.DayEndTime
	if m.selected >= len(m.habits) {
		m.selected = max(0, len(m.habits)-1)
	}
}

// Range is the span currently reported on.
func (m Model) Range() engine.ReportRange {
	return m.rng
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Week):
			m.rng = engine.RangeWeek
		case key.Matches(msg, m.keys.Month):
			m.rng = engine.RangeMonth
		case key.Matches(msg, m.keys.Year):
			m.rng = engine.RangeYear
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.habits)-1 {
				m.selected++
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	today := engine.EffectiveToday(m.now, m.dayEnd)
	days := engine.RangeDays(m.rng, today)

	var b strings.Builder
	b.WriteString(render.Title.Render(fmt.Sprintf("Report: %s of %s", m.rng, today.Format("2 Jan 2006"))))
	b.WriteString("\n\n")
	if len(m.habits) == 0 {
		return b.String() + render.Muted.Render("No habits yet.")
	}

	nameWidth := 12
	for _, h := range m.habits {
		nameWidth = max(nameWidth, lipgloss.Width(h.Name)+2)
	}
	name := lipgloss.NewStyle().Width(nameWidth)

	for i, h := range m.habits {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		rate := engine.CompletionRate(h, days, m.now, m.dayEnd)
		b.WriteString(cursor + name.Render(h.Name) +
			render.ProgressBar(float64(rate), 20, render.HabitColor(h.Color)) +
			fmt.Sprintf(" %3d%%\n", rate))
	}

	h := m.habits[m.selected]
	b.WriteString("\n")
	b.WriteString(render.Heatmap(h, engine.Heatmap(h, days, m.now, m.dayEnd)))
	b.WriteString("\n\n" + render.Muted.Render("w/m/y range · ↑/↓ habit"))
	return b.String()
}
