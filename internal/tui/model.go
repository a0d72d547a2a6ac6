package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/tui/components/checklist"
)

type sessionState int

const (
	stateChecklist sessionState = iota
	stateAddHabit
)

// chromeHeight is the number of lines taken by the header, status and help.
const chromeHeight = 5

type Model struct {
	tracker   *tracker.Service
	userID    string
	state     sessionState
	keys      KeyMap
	help      help.Model
	checklist checklist.Model
	day       tracker.Checklist
	form      *huh.Form
	habitForm *HabitFormModel
	status    string
	err       error
	quitting  bool
	width     int
	height    int
}

// NewModel builds the checklist view for userID's habits due today.
func NewModel(t *tracker.Service, userID string) Model {
	m := Model{
		tracker:   t,
		userID:    userID,
		state:     stateChecklist,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		checklist: checklist.New(0, 0),
	}
	m.refresh()
	return m
}

// refresh reloads today's checklist from storage.
func (m *Model) refresh() {
	day, err := m.tracker.Checklist(m.userID, m.tracker.Today())
	if err != nil {
		logger.Error("failed to load checklist", "error", err)
		m.err = err
		return
	}
	m.day = day
	m.checklist.SetItems(day.Items)
}

func (m Model) ShortHelp() []key.Binding {
	if m.state == stateAddHabit {
		return []key.Binding{key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))}
	}
	items := m.checklist.Keys()
	return []key.Binding{items.Mark, items.Undo, items.Add, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	items := m.checklist.Keys()
	return [][]key.Binding{
		{items.Mark, items.Undo, items.Add},
		{m.keys.Refresh, m.keys.Quit, m.keys.Help},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}
