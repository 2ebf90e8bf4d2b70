// Package highlight turns raw lines into styled regions.
//
// A Highlighter is bound to one grammar and one theme. Highlighting is
// sequential within a file: the caller owns a State, created per file,
// and passes it to every Highlight or Skip call in line order. States are
// never shared between files.
//
// Regions are lossless: concatenating the Text of the regions returned for
// a line reproduces the line, including its terminator.
package highlight

import (
	"strings"

	"github.com/TimelordUK/mcat/pkg/logformat"
	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
)

// Region is a contiguous substring of one line tagged with one style.
type Region struct {
	Token chroma.TokenType
	Style lipgloss.Style
	Text  string
}

// Highlighter styles the lines of one file.
type Highlighter interface {
	// Name returns the language name.
	Name() string

	// NewState returns a fresh parse state for a new file.
	NewState() *State

	// Highlight styles line, which includes its terminator if any.
	Highlight(st *State, line string) []Region

	// Skip advances st past a line that will not be shown.
	Skip(st *State, line string)
}

// lookbackBytes caps the context re-tokenised with each line, so long
// lines cannot multiply the work by the full line limit.
const lookbackBytes = 8 << 10

// State is the parse context carried from one line to the next.
type State struct {
	lookback []string
	size     int // bytes held in lookback
	limit    int
	maxBytes int
	level    logformat.Level
}

func newState(limit int) *State {
	if limit < 0 {
		limit = 0
	}
	return &State{limit: limit, maxBytes: lookbackBytes}
}

// context returns the preceding lines joined.
func (s *State) context() string {
	return strings.Join(s.lookback, "")
}

// push records line as the most recent context line.
func (s *State) push(line string) {
	if s.limit == 0 {
		return
	}
	s.lookback = append(s.lookback, line)
	s.size += len(line)
	for len(s.lookback) > 0 && (len(s.lookback) > s.limit || s.size > s.maxBytes) {
		s.size -= len(s.lookback[0])
		s.lookback = s.lookback[1:]
	}
}

// Text concatenates the text of regions.
func Text(regions []Region) string {
	var b strings.Builder
	for _, r := range regions {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Decode interprets raw bytes as UTF-8, replacing invalid sequences.
func Decode(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "\uFFFD")
}
