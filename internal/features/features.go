// Package features implements the informational commands that do not
// render files.
package features

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/TimelordUK/mcat/internal/highlight"
)

const (
	nameSeparator    = " "
	patternSeparator = ", "
	// fallbackNameWidth is used when there are no languages at all.
	fallbackNameWidth = 32
)

// ListLanguages writes one row per language: its name padded to the
// longest name, then its file patterns, wrapped to termWidth and aligned
// under the first pattern.
func ListLanguages(w io.Writer, langs []highlight.Language, termWidth int, patternStyle lipgloss.Style) error {
	langs = append([]highlight.Language(nil), langs...)
	sort.SliceStable(langs, func(i, j int) bool {
		return strings.ToUpper(langs[i].Name) < strings.ToUpper(langs[j].Name)
	})

	longest := 0
	for _, l := range langs {
		longest = max(longest, runewidth.StringWidth(l.Name))
	}
	if longest == 0 {
		longest = fallbackNameWidth
	}
	desired := termWidth - longest - len(nameSeparator)
	indent := strings.Repeat(" ", longest) + nameSeparator

	bw := bufio.NewWriter(w)
	for _, l := range langs {
		bw.WriteString(runewidth.FillRight(l.Name, longest))
		bw.WriteString(nameSeparator)

		chars := 0
		for i, pattern := range l.Patterns {
			n := runewidth.StringWidth(pattern) + len(patternSeparator)
			if chars+n >= desired {
				chars = 0
				bw.WriteString("\n" + indent)
			}
			chars += n
			bw.WriteString(patternStyle.Render(pattern))
			if i < len(l.Patterns)-1 {
				bw.WriteString(patternSeparator)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ListThemes writes one theme name per line.
func ListThemes(w io.Writer, themes []string) error {
	for _, name := range themes {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}
