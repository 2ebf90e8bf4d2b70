package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode decides whether output carries SGR sequences
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color value
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	case "":
		return ColorAuto, nil
	}
	return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
}

// Renderer creates lipgloss styles bound to one output's color profile.
// Its styles never touch tabs; expansion is column dependent and belongs to
// the printer.
type Renderer struct {
	lg *lipgloss.Renderer
}

// NewRenderer creates a renderer for w. In auto mode the profile is
// detected from w; always forces color and never strips it.
func NewRenderer(w io.Writer, mode ColorMode) *Renderer {
	lg := lipgloss.NewRenderer(w)
	switch mode {
	case ColorNever:
		lg.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		if lg.ColorProfile() == termenv.Ascii {
			lg.SetColorProfile(forcedProfile())
		}
	}

	return &Renderer{lg: lg}
}

// NewProfileRenderer creates a renderer with a fixed profile
func NewProfileRenderer(w io.Writer, profile termenv.Profile) *Renderer {
	r := NewRenderer(w, ColorAuto)
	r.lg.SetColorProfile(profile)
	return r
}

// forcedProfile picks the richest profile the environment advertises
func forcedProfile() termenv.Profile {
	switch strings.ToLower(os.Getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return termenv.TrueColor
	}
	return termenv.ANSI256
}

// NewStyle returns an empty style for this renderer
func (r *Renderer) NewStyle() lipgloss.Style {
	return r.lg.NewStyle().TabWidth(lipgloss.NoTabConversion)
}

// Colored reports whether styles emit SGR sequences
func (r *Renderer) Colored() bool {
	return r.lg.ColorProfile() != termenv.Ascii
}

// Paint renders text with style, leaving a trailing line terminator
// unstyled so styles never span a line break
func Paint(style lipgloss.Style, text string) string {
	body := strings.TrimRight(text, "\r\n")
	eol := text[len(body):]
	if body == "" {
		return eol
	}
	return style.Render(body) + eol
}
