package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the client.
type Styles struct {
	Title       lipgloss.Style
	Section     lipgloss.Style
	Selected    lipgloss.Style
	Watched     lipgloss.Style
	Recommended lipgloss.Style
	Drop        lipgloss.Style
	Faint       lipgloss.Style
	Status      lipgloss.Style
	ErrorStatus lipgloss.Style
}

// DefaultStyles returns the standard color scheme.
func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Selected:    lipgloss.NewStyle().Reverse(true),
		Watched:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Recommended: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Drop:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Faint:       lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ErrorStatus: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
