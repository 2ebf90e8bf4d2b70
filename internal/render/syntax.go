package render

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
)

// SyntaxTheme maps chroma token types to lipgloss styles for one theme
type SyntaxTheme struct {
	name     string
	style    *chroma.Style
	renderer *Renderer
	cache    map[chroma.TokenType]lipgloss.Style
}

// NewSyntaxTheme binds a chroma style to a renderer
func NewSyntaxTheme(r *Renderer, style *chroma.Style) *SyntaxTheme {
	return &SyntaxTheme{
		name:     style.Name,
		style:    style,
		renderer: r,
		cache:    make(map[chroma.TokenType]lipgloss.Style),
	}
}

// Name returns the chroma style name
func (t *SyntaxTheme) Name() string {
	return t.name
}

// Style returns the lipgloss style for a token type
func (t *SyntaxTheme) Style(tt chroma.TokenType) lipgloss.Style {
	if style, ok := t.cache[tt]; ok {
		return style
	}

	entry := t.style.Get(tt)
	style := t.renderer.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	t.cache[tt] = style
	return style
}
