package printer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/mcat/internal/config"
	"github.com/TimelordUK/mcat/internal/render"
	"github.com/TimelordUK/mcat/internal/vcs"
)

// Theme holds the styles of the decorations.
type Theme struct {
	LineNumber lipgloss.Style
	Grid       lipgloss.Style
	Header     lipgloss.Style
	Added      lipgloss.Style
	Modified   lipgloss.Style
	Removed    lipgloss.Style
}

// NewTheme builds decoration styles from the configured colors.
func NewTheme(r *render.Renderer, cfg *config.ThemeConfig) Theme {
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Theme{
		LineNumber: fg(cfg.LineNumbers),
		Grid:       fg(cfg.Grid),
		Header:     fg(cfg.Header).Bold(true),
		Added:      fg(cfg.Added),
		Modified:   fg(cfg.Modified),
		Removed:    fg(cfg.Removed),
	}
}

// glyph returns the marker character and its style.
func (t Theme) glyph(m vcs.Marker) (string, lipgloss.Style) {
	switch m {
	case vcs.Added:
		return "+", t.Added
	case vcs.Modified:
		return "~", t.Modified
	case vcs.RemovedAbove:
		return "‾", t.Removed
	case vcs.RemovedBelow:
		return "_", t.Removed
	}
	return " ", lipgloss.NewStyle()
}
