package render

import (
	"bytes"
	"testing"

	"github.com/TimelordUK/mcat/internal/config"
	"github.com/TimelordUK/mcat/pkg/logformat"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]ColorMode{"": ColorAuto, "auto": ColorAuto, "ALWAYS": ColorAlways, "never": ColorNever} {
		got, err := ParseColorMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestRenderer_NeverIsPlain(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, ColorNever)
	assert.False(t, r.Colored())

	style := r.NewStyle().Foreground(lipgloss.Color("#ff0000")).Bold(true)
	assert.Equal(t, "abc", style.Render("abc"))
}

func TestRenderer_AlwaysForcesColor(t *testing.T) {
	t.Setenv("COLORTERM", "truecolor")
	r := NewRenderer(&bytes.Buffer{}, ColorAlways)
	assert.True(t, r.Colored())

	out := NewSyntaxTheme(r, styles.Get("monokai")).Style(chroma.Keyword).Render("func")
	assert.NotEqual(t, "func", out)
	assert.Equal(t, "func", ansi.Strip(out))
}

func TestRenderer_KeepsTabs(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, ColorNever)
	assert.Equal(t, "a\tb", r.NewStyle().Render("a\tb"))

	colored := NewProfileRenderer(&bytes.Buffer{}, termenv.TrueColor)
	out := colored.NewStyle().Foreground(lipgloss.Color("#00ff00")).Render("\tx")
	assert.Equal(t, "\tx", ansi.Strip(out))
}

func TestPaint_KeepsTerminatorUnstyled(t *testing.T) {
	r := NewProfileRenderer(&bytes.Buffer{}, termenv.TrueColor)
	style := r.NewStyle().Foreground(lipgloss.Color("#00ff00"))

	out := Paint(style, "hello\n")
	assert.True(t, len(out) > len("hello\n"))
	assert.Equal(t, byte('\n'), out[len(out)-1])
	assert.Equal(t, "hello\n", ansi.Strip(out))

	assert.Equal(t, "\r\n", Paint(style, "\r\n"))
	assert.Equal(t, "", Paint(style, ""))
}

func TestSyntaxTheme_Caches(t *testing.T) {
	r := NewProfileRenderer(&bytes.Buffer{}, termenv.TrueColor)
	theme := NewSyntaxTheme(r, styles.Get("monokai"))
	assert.Equal(t, "monokai", theme.Name())

	first := theme.Style(chroma.Comment)
	assert.Len(t, theme.cache, 1)
	second := theme.Style(chroma.Comment)
	assert.Equal(t, first.Render("x"), second.Render("x"))
	assert.Len(t, theme.cache, 1)
}

func TestLevelStyles(t *testing.T) {
	r := NewProfileRenderer(&bytes.Buffer{}, termenv.ANSI256)
	s := NewLevelStyles(r, &config.DefaultConfig().Theme)

	errOut := s.Level(logformat.LevelError).Render("boom")
	assert.NotEqual(t, "boom", errOut)
	assert.Equal(t, "boom", ansi.Strip(errOut))
	assert.Equal(t, "plain", s.Level(logformat.LevelUnknown).Render("plain"))
}
