package printer

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// tabExpander replaces tabs with spaces up to the next stop. The column is
// carried across the regions of one line.
type tabExpander struct {
	width int
	col   int
}

func (e *tabExpander) expand(text string) string {
	if !strings.ContainsRune(text, '\t') {
		e.col += runewidth.StringWidth(strings.TrimRight(text, "\r\n"))
		return text
	}

	var b strings.Builder
	for _, r := range text {
		switch r {
		case '\t':
			n := e.width - e.col%e.width
			b.WriteString(strings.Repeat(" ", n))
			e.col += n
		case '\r', '\n':
			b.WriteRune(r)
		default:
			b.WriteRune(r)
			e.col += runewidth.RuneWidth(r)
		}
	}
	return b.String()
}
