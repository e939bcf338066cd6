package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateAdding:
		content = m.form.View()
	default:
		content = m.viewToday()
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Today"),
		"",
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	))
}

func (m Model) viewToday() string {
	var b strings.Builder
	for i, a := range m.active {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		check := "[ ]"
		name := a.Name
		switch {
		case a.Placeholder():
			name = placeholderStyle.Render(name)
		case a.PrayedFor:
			check = "[✓]"
			name = doneStyle.Render(name)
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, check, name)
	}
	return b.String()
}

func (m Model) viewStatus() string {
	if m.errMsg != "" {
		return errorStyle.Render("Error: " + m.errMsg)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}
