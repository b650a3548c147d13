package week

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

type KeyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Today key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:  key.NewBinding(key.WithKeys("[", "left", "h"), key.WithHelp("[", "previous week")),
		Next:  key.NewBinding(key.WithKeys("]", "right", "l"), key.WithHelp("]", "next week")),
		Today: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "this week")),
	}
}

type Model struct {
	keys   KeyMap
	habits []models.Habit
	now    time.Time
	dayEnd string
	ref    time.Time
	today  time.Time
}

func New() Model {
	return Model{keys: DefaultKeyMap()}
}

func (m *Model) SetState(st models.AppState, now time.Time) {
	m.habits = appstate.SortedHabits(st)
	m.now = now
	m.dayEnd = st.Settings.DayEndTime
	m.today = engine.EffectiveToday(now, m.dayEnd)
	if m.ref.IsZero() {
		m.ref = m.today
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Prev):
			m.ref = utils.AddDays(m.ref, -7)
		case key.Matches(msg, m.keys.Next):
			m.ref = utils.AddDays(m.ref, 7)
		case key.Matches(msg, m.keys.Today):
			m.ref = m.today
		}
	}
	return m, nil
}

func (m Model) View() string {
	days := engine.WeekDays(m.ref)
	var b strings.Builder
	b.WriteString(render.Title.Render(fmt.Sprintf("Week of %s", days[0].Format("2 Jan 2006"))))
	b.WriteString("\n\n")

	nameWidth := 12
	for _, h := range m.habits {
		nameWidth = max(nameWidth, lipgloss.Width(h.Name)+2)
	}
	name := lipgloss.NewStyle().Width(nameWidth)

	head := make([]string, len(days))
	for i, d := range days {
		head[i] = models.WeekdayOf(d).Short()[:1]
	}
	b.WriteString(name.Render("") + render.Muted.Render(strings.Join(head, " ")) + "\n")

	if len(m.habits) == 0 {
		b.WriteString(render.Muted.Render("No habits yet.") + "\n")
	}
	for _, h := range m.habits {
		strip := engine.WeekStrip(h, m.ref, m.now, m.dayEnd)
		cells := make([]string, len(strip))
		for i, ds := range strip {
			cells[i] = render.Cell(h, ds)
		}
		line := name.Render(h.Name) + strings.Join(cells, " ")
		if h.IsFlexible() {
			line += render.Muted.Render(fmt.Sprintf("  %d/%d", engine.WeeklyCompletions(h, m.ref), engine.WeeklyTarget(h)))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + render.Muted.Render("[/] change week · t this week"))
	return b.String()
}
