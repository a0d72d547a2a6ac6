package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/tui/components/checklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.checklist.SetSize(msg.Width, max(msg.Height-chromeHeight, 1))
		return m, nil
	}

	if m.state == stateAddHabit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if !m.checklist.Filtering() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			case key.Matches(msg, m.keys.Refresh):
				m.err = nil
				m.refresh()
				return m, nil
			}
		}

	case checklist.AddHabitMsg:
		m.habitForm = &HabitFormModel{Type: constants.RecurrenceDaily}
		m.form = NewHabitForm(m.habitForm)
		m.state = stateAddHabit
		m.err = nil
		return m, m.form.Init()

	case checklist.MarkHabitMsg:
		if _, err := m.tracker.MarkComplete(m.userID, msg.ID, m.day.Date, 1); err != nil {
			m.err = err
		} else {
			m.err = nil
			m.status = "Marked done"
		}
		m.refresh()
		return m, nil

	case checklist.UndoHabitMsg:
		if err := m.tracker.UndoLatest(m.userID, msg.ID, m.day.Date); err != nil {
			m.err = err
		} else {
			m.err = nil
			m.status = "Completion removed"
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.checklist, cmd = m.checklist.Update(msg)
	return m, cmd
}

// updateForm drives the add habit form until it is submitted or cancelled.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		input, err := m.habitForm.Input()
		if err == nil {
			_, err = m.tracker.CreateHabit(m.userID, input)
		}
		if err != nil {
			// Reopen the form with the entered values so they can be fixed
			m.err = err
			m.form = NewHabitForm(m.habitForm)
			return m, m.form.Init()
		}
		m.status = fmt.Sprintf("Added %q", input.Name)
		m.closeForm()
		m.refresh()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.state = stateChecklist
	m.form = nil
	m.habitForm = nil
}
