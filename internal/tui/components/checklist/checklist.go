package checklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/recurrence"
	"github.com/julianstephens/habitual/internal/tracker"
)

type AddHabitMsg struct{}

type MarkHabitMsg struct {
	ID string
}

type UndoHabitMsg struct {
	ID string
}

type Item struct {
	tracker.ChecklistItem
}

func (i Item) Title() string {
	if i.Completed {
		return "✓ " + i.Habit.Name
	}
	return "○ " + i.Habit.Name
}

func (i Item) Description() string {
	desc := recurrence.Describe(i.Habit.Recurrence)
	if i.Habit.Category != "" {
		desc = i.Habit.Category + " · " + desc
	}
	switch {
	case i.Completed && i.Count > 1:
		return fmt.Sprintf("done ×%d · %s", i.Count, desc)
	case i.Completed:
		return "done · " + desc
	default:
		return desc
	}
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add  key.Binding
	Mark key.Binding
	Undo key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m", "mark done"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
	}
}

// Model is the list of habits due on one day.
type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	return Model{
		list: l,
		keys: DefaultKeyMap(),
	}
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// SetItems replaces the list contents, keeping the cursor where it was.
func (m *Model) SetItems(items []tracker.ChecklistItem) {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = Item{ChecklistItem: it}
	}
	m.list.SetItems(listItems)
}

// Selected returns the highlighted item.
func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Mark):
			if i, ok := m.Selected(); ok && !i.Completed {
				return m, func() tea.Msg { return MarkHabitMsg{ID: i.Habit.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Undo):
			if i, ok := m.Selected(); ok && i.Completed {
				return m, func() tea.Msg { return UndoHabitMsg{ID: i.Habit.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No habits due today.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
