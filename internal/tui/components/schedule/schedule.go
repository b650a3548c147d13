package schedule

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
	"github.com/julianstephens/habitual/internal/utils"
)

// RemoveBlockMsg removes the block at Index from Day's schedule.
type RemoveBlockMsg struct {
	Day   string
	Index int
}

type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Remove  key.Binding
	PrevDay key.Binding
	NextDay key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove block")),
		PrevDay: key.NewBinding(key.WithKeys("[", "left", "h"), key.WithHelp("[", "previous day")),
		NextDay: key.NewBinding(key.WithKeys("]", "right", "l"), key.WithHelp("]", "next day")),
	}
}

type Model struct {
	keys   KeyMap
	st     models.AppState
	now    time.Time
	date   time.Time
	rows   []engine.BlockStatus
	cursor int
}

func New() Model {
	return Model{keys: DefaultKeyMap()}
}

func (m *Model) SetState(st models.AppState, now time.Time) {
	m.st = st
	m.now = now
	if m.date.IsZero() {
		m.date = engine.EffectiveToday(now, st.Settings.DayEndTime)
	}
	m.load()
}

func (m *Model) load() {
	m.rows = appstate.BlockStatuses(m.st, m.date, m.now)
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.PrevDay):
			m.date = utils.AddDays(m.date, -1)
			m.load()
		case key.Matches(msg, m.keys.NextDay):
			m.date = utils.AddDays(m.date, 1)
			m.load()
		case key.Matches(msg, m.keys.Remove):
			if len(m.rows) > 0 {
				remove := RemoveBlockMsg{Day: utils.DayKey(m.date), Index: m.cursor}
				return m, func() tea.Msg { return remove }
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(render.Title.Render("Schedule for " + m.date.Format("Monday, 2 January")))
	b.WriteString("\n\n")
	if len(m.rows) == 0 {
		b.WriteString(render.Muted.Render("Nothing scheduled.") + "\n")
	}
	for i, bs := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s  %s", cursor, bs.Block.Time, bs.Block.Activity)
		if bs.Block.IsFixed {
			line += render.Muted.Render(" (fixed)")
		}
		if bs.Habit != nil && bs.Day != nil {
			line = fmt.Sprintf("%s %s", line, render.Cell(*bs.Habit, *bs.Day))
		}
		if bs.Locked && bs.Trigger != nil {
			line += render.Warning.Render("  after " + bs.Trigger.Name)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + render.Muted.Render("[/] change day · x remove"))
	return b.String()
}
