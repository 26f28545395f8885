package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/update-all/internal/engine"
	"github.com/atomicstack/update-all/internal/format/table"
)

const (
	selectedMarker   = "> "
	unselectedMarker = "  "
	ellipsis         = "…"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return m.styles.Error.Render("Error: " + m.err.Error())
	}
	if m.frame == nil {
		return ""
	}
	body := m.styles.Frame.Render(strings.Join(m.frameLines(*m.frame), "\n"))
	lines := strings.Split(body, "\n")
	if m.showFooter {
		lines = append(lines, m.styles.Footer.Render(m.help.ShortHelpView(m.keys.bindingsFor(m.frame.UI))))
	}
	lines = applyWidth(lines, m.width)
	lines = limitHeight(lines, m.height)
	return strings.Join(lines, "\n")
}

func (m *Model) frameLines(f engine.Frame) []string {
	lines := make([]string, 0, len(f.Text)+len(f.Entries)+4)
	if f.Header != "" {
		lines = append(lines, m.styles.Header.Render(f.Header), "")
	}
	for _, text := range f.Text {
		lines = append(lines, m.styles.Text.Render(text))
	}
	if len(f.Text) > 0 {
		lines = append(lines, "")
	}
	if len(f.Entries) > 0 {
		lines = append(lines, m.entryLines(f.Entries)...)
		lines = append(lines, "")
	}
	if len(f.Actions) > 0 {
		lines = append(lines, m.actionLine(f.Actions))
	}
	return lines
}

// entryLines lays entries out as a two column table of title and
// description.
func (m *Model) entryLines(entries []engine.FrameEntry) []string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		marker, title, desc := unselectedMarker, m.styles.Entry, m.styles.Description
		if e.Selected {
			marker, title, desc = selectedMarker, m.styles.SelectedEntry, m.styles.SelectedDescription
		}
		row := []string{marker + title.Render(e.Title)}
		if e.Description != "" {
			row = append(row, desc.Render(e.Description))
		}
		rows[i] = row
	}
	return table.Format(rows, table.Options{})
}

func (m *Model) actionLine(actions []engine.FrameAction) string {
	cells := make([]string, len(actions))
	for i, a := range actions {
		style := m.styles.Action
		if a.Selected {
			style = m.styles.SelectedAction
		}
		cells[i] = style.Render("<" + a.Title + ">")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func limitHeight(lines []string, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []string{ellipsis}
	}
	trimmed := make([]string, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	return append(trimmed, ellipsis)
}

func applyWidth(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			line = truncate.StringWithTail(line, uint(width), ellipsis)
		}
		out[i] = line
	}
	return out
}
