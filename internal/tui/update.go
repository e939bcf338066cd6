package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	if m.state == StateAdding {
		return m.updateAdding(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.active)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Mark):
		m.markSelected()
	case key.Matches(keyMsg, m.keys.New):
		m.rotate()
	case key.Matches(keyMsg, m.keys.Add):
		m.addForm = &AddFormModel{}
		m.form = NewAddForm(m.addForm)
		m.state = StateAdding
		return m, m.form.Init()
	}

	if m.fatal != nil {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) markSelected() {
	if m.cursor >= len(m.active) {
		return
	}
	selected := m.active[m.cursor]
	if selected.Placeholder() {
		m.setStatus("Nothing to mark here. Press n for a new pick.")
		return
	}
	if selected.PrayedFor {
		m.setStatus(fmt.Sprintf("Already prayed for %s", selected.Name))
		return
	}
	if err := m.store.MarkProcessed(m.ctx, selected.Name); err != nil {
		m.fail(err)
		return
	}
	m.setStatus(fmt.Sprintf("✓ Prayed for %s", selected.Name))
	m.refresh()
}

func (m *Model) rotate() {
	picked, err := m.store.Rotate(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.cursor = 0
	m.setStatus("New pick: " + strings.Join(picked, ", "))
	m.refresh()
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		m.state = StateToday
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitAdd()
		m.state = StateToday
		m.form = nil
		if m.fatal != nil {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case huh.StateAborted:
		m.state = StateToday
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m *Model) submitAdd() {
	name := strings.TrimSpace(m.addForm.Name)
	if err := m.store.Add(m.ctx, name); err != nil {
		m.fail(fmt.Errorf("failed to add %q: %w", name, err))
		return
	}
	m.setStatus(fmt.Sprintf("✓ Added %s", name))
}

// NewAddForm builds the form used to add a name.
func NewAddForm(fm *AddFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("Someone to pray for").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
		),
	)
}
