package render

import (
	"github.com/TimelordUK/mcat/internal/config"
	"github.com/TimelordUK/mcat/pkg/logformat"
	"github.com/charmbracelet/lipgloss"
)

// LevelStyles colors log lines by severity
type LevelStyles struct {
	levels    map[logformat.Level]lipgloss.Style
	timestamp lipgloss.Style
}

// NewLevelStyles creates level styles from config
func NewLevelStyles(r *Renderer, cfg *config.ThemeConfig) *LevelStyles {
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &LevelStyles{
		levels: map[logformat.Level]lipgloss.Style{
			logformat.LevelUnknown: r.NewStyle(),
			logformat.LevelTrace:   color(cfg.Levels.Trace),
			logformat.LevelDebug:   color(cfg.Levels.Debug),
			logformat.LevelInfo:    color(cfg.Levels.Info),
			logformat.LevelWarn:    color(cfg.Levels.Warn),
			logformat.LevelError:   color(cfg.Levels.Error),
			logformat.LevelFatal:   color(cfg.Levels.Fatal).Bold(true),
		},
		timestamp: color(cfg.Timestamp),
	}
}

// Level returns the style for a level
func (s *LevelStyles) Level(level logformat.Level) lipgloss.Style {
	return s.levels[level]
}

// Timestamp returns the style for a detected timestamp
func (s *LevelStyles) Timestamp() lipgloss.Style {
	return s.timestamp
}
