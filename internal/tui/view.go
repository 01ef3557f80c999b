package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ltask/internal/tasklist"
)

var (
	colorAccent = lipgloss.Color("69")
	colorMuted  = lipgloss.Color("241")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle   = lipgloss.NewStyle().Bold(true)
	focusedStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Foreground(colorAccent)
	resolvedStyle = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const keyHelp = "a add · e edit · d delete · x resolve · u undo · tab pane · / filter · l list · q quit"

func (m *Model) View() string {
	snap := m.sess.Snapshot()
	var b strings.Builder

	b.WriteString(titleStyle.Render("ltask") + " · " + headerStyle.Render(snap.ListID))
	b.WriteString("\n\n")

	if f := snap.Filter; f.Visible || f.Query != "" {
		if m.mode == modeFilter {
			b.WriteString(m.input.View())
		} else {
			b.WriteString(mutedStyle.Render("filter: " + f.Query))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderPane(paneActive, "Active", snap.Edit))
	b.WriteString("\n")
	b.WriteString(m.renderPane(paneResolved, "Resolved", nil))

	if m.mode == modeAdd || m.mode == modeEdit {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(keyHelp))
	b.WriteString("\n")

	out := b.String()
	if m.width > 0 {
		out = lipgloss.NewStyle().MaxWidth(m.width).Render(out)
	}
	return out
}

func (m *Model) renderPane(p pane, title string, edit *tasklist.EditState) string {
	rows := m.view(p)

	heading := fmt.Sprintf("%s (%d)", title, len(rows))
	if m.pane == p {
		heading = focusedStyle.Render(heading)
	} else {
		heading = headerStyle.Render(heading)
	}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("  (none)"))
		b.WriteString("\n")
		return b.String()
	}
	for i, e := range rows {
		b.WriteString(m.renderRow(p, i, e, edit))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderRow(p pane, i int, e tasklist.Entry, edit *tasklist.EditState) string {
	marker := "  "
	focused := m.pane == p && m.cursor[p] == i
	if focused {
		marker = "> "
	}

	text := e.Text
	if edit != nil && edit.Index == e.Index {
		text = e.Text + mutedStyle.Render("  (editing)")
	}

	line := fmt.Sprintf("%s%3d  %s", marker, i+1, text)
	switch {
	case p == paneResolved:
		return resolvedStyle.Render(line)
	case focused:
		return selectedStyle.Render(line)
	default:
		return line
	}
}
