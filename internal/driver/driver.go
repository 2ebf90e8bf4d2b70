// Package driver runs the render loop over a list of inputs.
//
// Each input gets its own source, highlighter state, change decorator and
// printer. A failure confined to one input is reported and the run moves
// on; a fatal failure or a lost output consumer ends the run.
package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/mcat/internal/fault"
	"github.com/TimelordUK/mcat/internal/highlight"
	"github.com/TimelordUK/mcat/internal/linerange"
	"github.com/TimelordUK/mcat/internal/printer"
	"github.com/TimelordUK/mcat/internal/source"
	"github.com/TimelordUK/mcat/internal/vcs"
)

// ErrorPrefix starts every diagnostic line.
const ErrorPrefix = "[mcat error]:"

// Options configures a Driver.
type Options struct {
	// Files to render in order. Empty, "" and "-" mean standard input.
	Files    []string
	Language string
	Ranges   []linerange.LineRange

	Assets  *highlight.Assets
	Printer printer.Options
	// Changes provides change markers; nil disables them.
	Changes vcs.Provider

	Out        io.Writer
	Errs       io.Writer
	ErrorStyle lipgloss.Style
	// Stdin replaces the process's standard input when set.
	Stdin io.Reader
	Log   *slog.Logger
}

// Result is the outcome of one input.
type Result struct {
	Name string
	Err  error
}

// Results holds the outcomes of a run in input order.
type Results []Result

// AllSucceeded reports whether no input failed.
func (r Results) AllSucceeded() bool {
	for _, res := range r {
		if res.Err != nil {
			return false
		}
	}
	return true
}

// Driver renders inputs one at a time.
type Driver struct {
	opts Options
	log  *slog.Logger
}

// New validates opts. An unknown language override is fatal.
func New(opts Options) (*Driver, error) {
	if opts.Assets == nil {
		return nil, fault.Fatalf("no highlighting assets")
	}
	if opts.Language != "" {
		if err := highlight.CheckLanguage(opts.Language); err != nil {
			return nil, fault.Fatal(err)
		}
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Errs == nil {
		opts.Errs = io.Discard
	}

	opts.Printer.Filter = linerange.NewFilter(opts.Ranges)
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}

	return &Driver{opts: opts, log: opts.Log}, nil
}

// SetOutput redirects rendered output to w.
func (d *Driver) SetOutput(w io.Writer) {
	d.opts.Out = w
}

// Run renders every input. Failures of single inputs are reported to Errs
// as they happen and recorded in the results. The returned error is set
// only when the run was cut short, by a fatal error or a broken pipe.
func (d *Driver) Run() (Results, error) {
	files := d.opts.Files
	if len(files) == 0 {
		files = []string{"-"}
	}

	results := make(Results, 0, len(files))
	for _, path := range files {
		err := d.renderFile(path)
		results = append(results, Result{Name: displayName(path), Err: err})
		if err == nil {
			continue
		}

		switch fault.Of(err) {
		case fault.KindBrokenPipe:
			d.log.Debug("output closed", "file", path)
			return results, err
		case fault.KindFatal:
			return results, err
		}

		d.log.Info("file failed", "file", path, "err", err)
		Report(d.opts.Errs, d.opts.ErrorStyle, err)
	}
	return results, nil
}

func isStdin(path string) bool {
	return path == "" || path == "-"
}

func displayName(path string) string {
	if isStdin(path) {
		return source.StdinName
	}
	return path
}

func (d *Driver) open(path string) (source.LineSource, error) {
	if isStdin(path) && d.opts.Stdin != nil {
		return source.NewStreamSource(io.NopCloser(d.opts.Stdin), source.StdinName, ""), nil
	}
	return source.Open(path)
}

// renderFile runs the line loop for one input.
func (d *Driver) renderFile(path string) error {
	name := displayName(path)

	src, err := d.open(path)
	if err != nil {
		return fault.File(name, err)
	}
	defer src.Close()

	hl, err := d.opts.Assets.For(d.opts.Language, src.Path(), src.Peek())
	if err != nil {
		return fault.Fatal(err)
	}

	file := printer.File{Name: src.Name()}
	file.LineCount, file.Counted = src.LineCount()
	if d.opts.Printer.Components.Has(printer.Changes) {
		file.Changes = vcs.NewDecorator(d.opts.Changes, src.Path())
	}
	d.log.Debug("rendering", "file", name, "syntax", hl.Name(), "lines", file.LineCount, "changes", file.Changes.Active())

	p := printer.New(d.opts.Out, d.opts.Printer, file)
	if err := p.PrintHeader(); err != nil {
		return fault.Fatal(err)
	}

	st := hl.NewState()
	for !p.Exhausted() {
		raw, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fault.File(name, err)
		}

		line := highlight.Decode(raw)
		if !p.Wants() {
			hl.Skip(st, line)
			p.SkipLine()
			continue
		}
		if err := p.PrintLine(hl.Highlight(st, line)); err != nil {
			return fault.Fatal(err)
		}
	}

	return fault.Fatal(p.PrintFooter())
}

// Report writes one diagnostic line for err.
func Report(w io.Writer, style lipgloss.Style, err error) {
	fmt.Fprintf(w, "%s %s\n", style.Render(ErrorPrefix), err)
}

// ExitCode maps the outcome of a run to the process status: 0 when every
// input succeeded or the output consumer went away, 1 otherwise.
func ExitCode(results Results, err error) int {
	if err != nil {
		if fault.Of(err) == fault.KindBrokenPipe {
			return 0
		}
		return 1
	}
	if !results.AllSucceeded() {
		return 1
	}
	return 0
}
