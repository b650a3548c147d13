package media

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
	appstate "github.com/julianstephens/habitual/internal/state"
)

// SetStatusMsg moves an item to Status.
type SetStatusMsg struct {
	ID     string
	Status models.MediaStatus
}

type DeleteMediaMsg struct {
	ID    string
	Title string
}

var types = []models.MediaType{models.MediaBook, models.MediaMovie, models.MediaGame, models.MediaDrawing}

// NextStatus cycles ongoing, completed, paused.
func NextStatus(s models.MediaStatus) models.MediaStatus {
	switch s {
	case models.MediaOngoing:
		return models.MediaCompleted
	case models.MediaCompleted:
		return models.MediaPaused
	default:
		return models.MediaOngoing
	}
}

type Item struct {
	Media models.MediaItem
	Depth int
}

func (i Item) Title() string {
	title := strings.Repeat("  ", i.Depth) + i.Media.Title
	if i.Media.IsCollection {
		title += "/"
	}
	return title
}

func (i Item) Description() string {
	desc := strings.Repeat("  ", i.Depth) + fmt.Sprintf("%s · %s", i.Media.Type, i.Media.Status)
	if i.Media.Rating > 0 {
		desc += " · " + strings.Repeat("★", i.Media.Rating)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Media.Title }

type KeyMap struct {
	Status key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Status: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle status")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Media"
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Status, keys.Delete}
	}
	return Model{list: l, keys: keys}
}

// SetState lists media grouped by type with collections followed by
// their children.
func (m *Model) SetState(st models.AppState) {
	var items []list.Item
	var walk func(parent string, depth int, t models.MediaType)
	walk = func(parent string, depth int, t models.MediaType) {
		for _, item := range appstate.MediaChildren(st, parent) {
			if item.Type != t {
				continue
			}
			items = append(items, Item{Media: item, Depth: depth})
			if item.IsCollection {
				walk(item.ID, depth+1, t)
			}
		}
	}
	for _, t := range types {
		walk("", 0, t)
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if i, ok := m.list.SelectedItem().(Item); ok {
			switch {
			case key.Matches(msg, m.keys.Status):
				next := SetStatusMsg{ID: i.Media.ID, Status: NextStatus(i.Media.Status)}
				return m, func() tea.Msg { return next }
			case key.Matches(msg, m.keys.Delete):
				del := DeleteMediaMsg{ID: i.Media.ID, Title: i.Media.Title}
				return m, func() tea.Msg { return del }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return render.Muted.Render("No media tracked yet.")
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
