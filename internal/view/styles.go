package view

import "github.com/charmbracelet/lipgloss"

// Styles used by the viewer. Built from a renderer so SSH sessions get
// colours matching the remote terminal.
type Styles struct {
	Arena    lipgloss.Style
	Selected lipgloss.Style
	HUD      lipgloss.Style
	Status   lipgloss.Style
	Banner   lipgloss.Style
}

// NewStyles builds the viewer styles for a renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Arena:    r.NewStyle().Foreground(lipgloss.Color("75")),
		Selected: r.NewStyle().Foreground(lipgloss.Color("219")),
		HUD:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("230")),
		Status:   r.NewStyle().Faint(true),
		Banner: r.NewStyle().
			Bold(true).
			Padding(1, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("204")),
	}
}
