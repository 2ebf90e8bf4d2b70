package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TimelordUK/mcat/internal/config"
	"github.com/TimelordUK/mcat/internal/driver"
	"github.com/TimelordUK/mcat/internal/fault"
	"github.com/TimelordUK/mcat/internal/features"
	"github.com/TimelordUK/mcat/internal/highlight"
	"github.com/TimelordUK/mcat/internal/linerange"
	"github.com/TimelordUK/mcat/internal/output"
	"github.com/TimelordUK/mcat/internal/printer"
	"github.com/TimelordUK/mcat/internal/render"
	"github.com/TimelordUK/mcat/internal/vcs"
)

var termGetSize = term.GetSize

type flags struct {
	language      string
	theme         string
	lineRanges    []string
	number        bool
	plain         bool
	style         string
	color         string
	paging        string
	pager         string
	tabs          int
	listLanguages bool
	listThemes    bool
}

type app struct {
	stdin          io.Reader
	stdout, stderr *os.File
	log            *slog.Logger
	flags          flags
	exitCode       int
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "mcat [flags] [file...]",
		Short:         "Print files with syntax highlighting, line numbers and git changes",
		Long:          "mcat concatenates files to standard output like cat, highlighting their\nsyntax and decorating them with line numbers and git change markers.\nWith no file, or when file is -, standard input is read.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runRender,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	f := root.Flags()
	f.StringVarP(&a.flags.language, "language", "l", "", "Set the language for highlighting")
	f.StringVar(&a.flags.theme, "theme", "", "Set the theme for highlighting")
	f.StringArrayVarP(&a.flags.lineRanges, "line-range", "r", nil, "Only print lines in range N:M (repeatable; N:, :M, N and N-$ also accepted)")
	f.BoolVarP(&a.flags.number, "number", "n", false, "Show line numbers")
	f.BoolVarP(&a.flags.plain, "plain", "p", false, "Show no decorations")
	f.StringVar(&a.flags.style, "style", "", "Decorations: comma list of header,grid,numbers,changes or full/plain")
	f.StringVar(&a.flags.color, "color", "", "When to use colors: auto, always, never")
	f.StringVar(&a.flags.paging, "paging", "", "When to page output: auto, always, never")
	f.StringVar(&a.flags.pager, "pager", "", "Pager command (default: $MCAT_PAGER, config, $PAGER, less)")
	f.IntVar(&a.flags.tabs, "tabs", 0, "Expand tabs to stops of this width in decorated output (0 keeps tabs)")
	f.BoolVar(&a.flags.listLanguages, "list-languages", false, "List supported languages and exit")
	f.BoolVar(&a.flags.listThemes, "list-themes", false, "List available themes and exit")

	root.AddCommand(a.configCommand())
	return root
}

// loadConfig reads the config file and overlays the flags that were set.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", config.GetConfigPath(), err)
	}

	f := cmd.Flags()
	if f.Changed("theme") {
		cfg.Theme.Name = a.flags.theme
	}
	if f.Changed("style") {
		cfg.Display.Style = a.flags.style
	}
	if f.Changed("color") {
		cfg.Display.Color = a.flags.color
	}
	if f.Changed("paging") {
		cfg.Paging.Mode = a.flags.paging
	}
	if f.Changed("tabs") {
		cfg.Display.TabWidth = a.flags.tabs
	}
	return cfg, nil
}

func (a *app) components(cfg *config.Config) (printer.Components, error) {
	if a.flags.plain {
		return printer.Plain, nil
	}
	c, err := printer.ParseStyle(cfg.Display.Style)
	if err != nil {
		return 0, err
	}
	if a.flags.number {
		c |= printer.Numbers
	}
	return c, nil
}

func (a *app) termWidth(cfg *config.Config) int {
	if cfg.Display.TermWidth > 0 {
		return cfg.Display.TermWidth
	}
	if w, _, err := termGetSize(int(a.stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return printer.DefaultTermWidth
}

func (a *app) errorStyle(mode render.ColorMode) lipgloss.Style {
	return render.NewRenderer(a.stderr, mode).NewStyle().Foreground(lipgloss.Color("1"))
}

func (a *app) runRender(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return fault.Fatal(err)
	}

	colorMode, err := render.ParseColorMode(cfg.Display.Color)
	if err != nil {
		return fault.Fatal(err)
	}
	pagingMode, err := output.ParsePagingMode(cfg.Paging.Mode)
	if err != nil {
		return fault.Fatal(err)
	}
	components, err := a.components(cfg)
	if err != nil {
		return fault.Fatal(err)
	}
	ranges, err := linerange.ParseAll(a.flags.lineRanges)
	if err != nil {
		return fault.Fatal(err)
	}

	r := render.NewRenderer(a.stdout, colorMode)
	width := a.termWidth(cfg)

	switch {
	case a.flags.listLanguages:
		green := r.NewStyle().Foreground(lipgloss.Color("2"))
		return a.quiet(features.ListLanguages(a.stdout, highlight.Languages(), width, green))
	case a.flags.listThemes:
		return a.quiet(features.ListThemes(a.stdout, highlight.Themes()))
	}

	assets, err := highlight.NewAssets(cfg, r)
	if err != nil {
		return fault.Fatal(err)
	}

	var changes vcs.Provider
	if components.Has(printer.Changes) {
		changes = vcs.NewGitProvider(a.log)
	}

	d, err := driver.New(driver.Options{
		Files:    args,
		Language: a.flags.language,
		Ranges:   ranges,
		Assets:   assets,
		Printer: printer.Options{
			Components:     components,
			Theme:          printer.NewTheme(r, &cfg.Theme),
			MinNumberWidth: cfg.Display.MinNumberWidth,
			TabWidth:       cfg.Display.TabWidth,
			TermWidth:      width,
			Colored:        r.Colored(),
		},
		Changes:    changes,
		Errs:       a.stderr,
		ErrorStyle: a.errorStyle(colorMode),
		Stdin:      a.stdin,
		Log:        a.log,
	})
	if err != nil {
		return err
	}

	// The pager starts only once nothing fatal can happen before the first
	// byte of output.
	sink := output.Open(output.Options{
		Mode:        pagingMode,
		Command:     output.ResolvePager(a.flags.pager, cfg.Paging.Pager),
		Stdout:      a.stdout,
		Stderr:      a.stderr,
		Interactive: output.IsTerminal(a.stdout),
		Log:         a.log,
	})
	d.SetOutput(sink)

	results, runErr := d.Run()
	if err := sink.Close(); err != nil {
		a.log.Warn("closing output", "err", err)
	}

	a.exitCode = driver.ExitCode(results, runErr)
	if runErr != nil && fault.Of(runErr) != fault.KindBrokenPipe {
		return runErr
	}
	return nil
}

// quiet drops broken pipe errors from listing output.
func (a *app) quiet(err error) error {
	if fault.IsBrokenPipe(err) {
		return nil
	}
	return err
}
