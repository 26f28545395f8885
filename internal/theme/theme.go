package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes the Lip Gloss styles the terminal backend paints with.
type Styles struct {
	Frame               *lipgloss.Style
	Header              *lipgloss.Style
	Text                *lipgloss.Style
	Entry               *lipgloss.Style
	SelectedEntry       *lipgloss.Style
	Description         *lipgloss.Style
	SelectedDescription *lipgloss.Style
	Action              *lipgloss.Style
	SelectedAction      *lipgloss.Style
	Footer              *lipgloss.Style
	Error               *lipgloss.Style
}

var defaultStyles = Styles{
	Frame: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("33")).Padding(0, 1),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
	),
	Text: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Entry: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	),
	SelectedEntry: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("51")).Bold(true),
	),
	Description: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedDescription: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("51")),
	),
	Action: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Padding(0, 1),
	),
	SelectedAction: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("255")).Bold(true).Padding(0, 1),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Plain returns styles without colours or borders, used by tests and dumb
// terminals.
func Plain() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Frame:               ptr(plain),
		Header:              ptr(plain),
		Text:                ptr(plain),
		Entry:               ptr(plain),
		SelectedEntry:       ptr(plain),
		Description:         ptr(plain),
		SelectedDescription: ptr(plain),
		Action:              ptr(plain),
		SelectedAction:      ptr(plain),
		Footer:              ptr(plain),
		Error:               ptr(plain),
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
