// Package printer writes decorated lines to an output sink.
//
// A Printer renders exactly one file. It owns the file's line counter,
// which advances once per line read whether or not the line is shown,
// and consults a linerange.Filter for the keep or skip decision.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/TimelordUK/mcat/internal/highlight"
	"github.com/TimelordUK/mcat/internal/index"
	"github.com/TimelordUK/mcat/internal/linerange"
	"github.com/TimelordUK/mcat/internal/render"
	"github.com/TimelordUK/mcat/internal/vcs"
)

// DefaultTermWidth is used for rules when the width is unknown.
const DefaultTermWidth = 80

// Options are shared by the printers of one run.
type Options struct {
	Components     Components
	Theme          Theme
	Filter         *linerange.Filter
	MinNumberWidth int
	TermWidth      int
	// TabWidth > 0 expands tabs to stops of that width. Plain output
	// keeps its tabs.
	TabWidth int
	// Colored prefixes every line with an SGR reset.
	Colored bool
}

// File describes the input being printed.
type File struct {
	Name      string
	LineCount int
	Counted   bool // LineCount is known
	Changes   *vcs.Decorator
}

// renderState is the per-file printing state.
type renderState struct {
	lineNumber  int
	emittedAny  bool
	pendingSGR  string
	numberWidth int
}

// Printer decorates the lines of one file.
type Printer struct {
	w     io.Writer
	opts  Options
	file  File
	state renderState
	buf   strings.Builder
}

// New creates a printer for file writing to w.
func New(w io.Writer, opts Options, file File) *Printer {
	if opts.Filter == nil {
		opts.Filter = linerange.NewFilter(nil)
	}
	if opts.TermWidth <= 0 {
		opts.TermWidth = DefaultTermWidth
	}

	p := &Printer{w: w, opts: opts, file: file}
	p.state.lineNumber = 1
	p.state.numberWidth = numberWidth(opts, file)
	if opts.Colored {
		p.state.pendingSGR = ansi.ResetStyle
	}
	return p
}

// numberWidth sizes the gutter for the largest line number expected.
func numberWidth(opts Options, file File) int {
	largest, bounded := opts.Filter.LastLine()
	if file.Counted && (!bounded || file.LineCount < largest) {
		largest, bounded = file.LineCount, true
	}

	width := opts.MinNumberWidth
	if bounded {
		width = max(width, index.Digits(largest))
	}
	return width
}

// LineNumber returns the number of the next line to be read.
func (p *Printer) LineNumber() int {
	return p.state.lineNumber
}

// EmittedAny reports whether any content line has been printed.
func (p *Printer) EmittedAny() bool {
	return p.state.emittedAny
}

// Wants reports whether the next line should be highlighted and printed.
func (p *Printer) Wants() bool {
	return p.opts.Filter.ShouldEmit(p.state.lineNumber)
}

// Exhausted reports whether no further line of the file can be printed.
func (p *Printer) Exhausted() bool {
	return p.opts.Filter.IsPastAllRanges(p.state.lineNumber)
}

// SkipLine advances past a line that is not shown.
func (p *Printer) SkipLine() {
	p.state.lineNumber++
}

func (p *Printer) changesShown() bool {
	return p.opts.Components.Has(Changes) && p.file.Changes.Active()
}

// gutter renders the number and marker cells of line, or "" when neither
// is enabled. width is the visible width of the result.
func (p *Printer) gutter(line int) (text string, width int) {
	var cells []string

	if p.opts.Components.Has(Numbers) {
		cells = append(cells, p.opts.Theme.LineNumber.Render(fmt.Sprintf("%*d", p.state.numberWidth, line)))
	}
	if p.changesShown() {
		m, _ := p.file.Changes.MarkerFor(line)
		glyph, style := p.opts.Theme.glyph(m)
		cells = append(cells, style.Render(glyph))
	}

	text = strings.Join(cells, " ")
	return text, ansi.StringWidth(text)
}

// gutterWidth is the column of the grid separator, or 0 without a gutter.
func (p *Printer) gutterWidth() int {
	_, w := p.gutter(0)
	if w == 0 {
		return 0
	}
	return w + 1
}

// rule draws a horizontal grid line with junction at the gutter column.
func (p *Printer) rule(junction string) string {
	width := p.opts.TermWidth
	gw := p.gutterWidth()
	if gw == 0 || gw+1 >= width {
		return p.opts.Theme.Grid.Render(strings.Repeat("─", width)) + "\n"
	}
	line := strings.Repeat("─", gw) + junction + strings.Repeat("─", width-gw-1)
	return p.opts.Theme.Grid.Render(line) + "\n"
}

// PrintHeader writes the file banner. It is written even for empty files.
func (p *Printer) PrintHeader() error {
	if !p.opts.Components.Has(Header) {
		return nil
	}

	p.buf.Reset()
	grid := p.opts.Components.Has(Grid)
	gw := p.gutterWidth()

	if grid {
		p.buf.WriteString(p.rule("┬"))
	}

	title := "File: " + p.file.Name
	if grid && gw > 0 {
		p.buf.WriteString(strings.Repeat(" ", gw))
		p.buf.WriteString(p.opts.Theme.Grid.Render("│"))
		p.buf.WriteByte(' ')
		title = runewidth.Truncate(title, max(p.opts.TermWidth-gw-2, 1), "…")
	} else {
		title = runewidth.Truncate(title, p.opts.TermWidth, "…")
	}
	p.buf.WriteString(p.opts.Theme.Header.Render(title))
	p.buf.WriteByte('\n')

	if grid {
		p.buf.WriteString(p.rule("┼"))
	}
	return p.flush()
}

// PrintLine writes regions as the current line and advances the counter.
func (p *Printer) PrintLine(regions []highlight.Region) error {
	line := p.state.lineNumber
	p.state.lineNumber++

	p.buf.Reset()
	p.buf.WriteString(p.state.pendingSGR)

	gutter, width := p.gutter(line)
	if width > 0 {
		p.buf.WriteString(gutter)
		p.buf.WriteByte(' ')
		if p.opts.Components.Has(Grid) {
			p.buf.WriteString(p.opts.Theme.Grid.Render("│"))
			p.buf.WriteByte(' ')
		}
	}

	var tabs *tabExpander
	if p.opts.TabWidth > 0 && p.opts.Components != Plain {
		tabs = &tabExpander{width: p.opts.TabWidth}
	}

	var last string
	for _, r := range regions {
		text := r.Text
		if tabs != nil {
			text = tabs.expand(text)
		}
		p.buf.WriteString(render.Paint(r.Style, text))
		if r.Text != "" {
			last = r.Text
		}
	}
	// A decorated last line without terminator would run into the footer.
	if p.opts.Components != Plain && !strings.HasSuffix(last, "\n") {
		p.buf.WriteByte('\n')
	}

	p.state.emittedAny = true
	return p.flush()
}

// PrintFooter writes the closing rule.
func (p *Printer) PrintFooter() error {
	if !p.opts.Components.Has(Grid) {
		return nil
	}
	p.buf.Reset()
	p.buf.WriteString(p.rule("┴"))
	return p.flush()
}

// flush writes the buffered line in one call.
func (p *Printer) flush() error {
	_, err := io.WriteString(p.w, p.buf.String())
	return err
}
