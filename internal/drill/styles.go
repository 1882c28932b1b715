package drill

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title   lipgloss.Style
	link    lipgloss.Style
	muted   lipgloss.Style
	correct lipgloss.Style
	wrong   lipgloss.Style
	hint    lipgloss.Style
	score   lipgloss.Style
	prompt  lipgloss.Style
}

// newStyles creates styles for w. Output that is not a terminal gets plain
// text.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true),
		link:    r.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
		muted:   r.NewStyle().Faint(true),
		correct: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		wrong:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		hint:    r.NewStyle().Foreground(lipgloss.Color("11")),
		score:   r.NewStyle().Foreground(lipgloss.Color("14")),
		prompt:  r.NewStyle().Bold(true),
	}
}
