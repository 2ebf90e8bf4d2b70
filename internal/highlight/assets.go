package highlight

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/TimelordUK/mcat/internal/config"
	"github.com/TimelordUK/mcat/internal/render"
	"github.com/TimelordUK/mcat/pkg/logformat"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Assets resolves grammars and themes and builds highlighters.
type Assets struct {
	renderer     *render.Renderer
	theme        *render.SyntaxTheme
	levels       *render.LevelStyles
	detector     *logformat.LevelDetector
	mapping      []globMapping
	contextLines int
}

type globMapping struct {
	glob     string
	language string
}

// NewAssets loads the configured theme. An unknown theme or a mapping to an
// unknown language is an error: nothing can be rendered without them.
func NewAssets(cfg *config.Config, r *render.Renderer) (*Assets, error) {
	style, err := LoadTheme(cfg.Theme.Name)
	if err != nil {
		return nil, err
	}

	a := &Assets{
		renderer:     r,
		theme:        render.NewSyntaxTheme(r, style),
		levels:       render.NewLevelStyles(r, &cfg.Theme),
		detector:     logformat.NewLevelDetector(&cfg.LogLevels),
		contextLines: cfg.Highlight.ContextLines,
	}

	for glob, language := range cfg.Highlight.Mapping {
		if _, err := filepath.Match(glob, ""); err != nil {
			return nil, fmt.Errorf("invalid syntax mapping pattern %q: %w", glob, err)
		}
		if err := CheckLanguage(language); err != nil {
			return nil, fmt.Errorf("syntax mapping %q: %w", glob, err)
		}
		a.mapping = append(a.mapping, globMapping{glob: glob, language: language})
	}
	sort.Slice(a.mapping, func(i, j int) bool { return a.mapping[i].glob < a.mapping[j].glob })

	return a, nil
}

// Theme returns the bound syntax theme.
func (a *Assets) Theme() *render.SyntaxTheme {
	return a.theme
}

// LoadTheme looks up a chroma style by name.
func LoadTheme(name string) (*chroma.Style, error) {
	style, ok := styles.Registry[name]
	if !ok {
		style, ok = styles.Registry[strings.ToLower(name)]
	}
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (see --list-themes)", name)
	}
	return style, nil
}

// CheckLanguage reports whether name resolves to a grammar.
func CheckLanguage(name string) error {
	if isLog(name) || lexers.Get(name) != nil {
		return nil
	}
	return fmt.Errorf("unknown syntax %q (see --list-languages)", name)
}

func isLog(name string) bool {
	return strings.EqualFold(name, LogLanguage)
}

// For returns a highlighter for one file. Resolution order: the explicit
// language, the configured glob mapping, *.log files, chroma's file name
// match, a shebang or XML prolog on the first line, then plain text.
func (a *Assets) For(language, path string, firstLine []byte) (Highlighter, error) {
	if language != "" {
		return a.named(language)
	}

	if path != "" {
		base := filepath.Base(path)
		for _, m := range a.mapping {
			if ok, _ := filepath.Match(m.glob, base); ok {
				return a.named(m.language)
			}
		}
		if strings.EqualFold(filepath.Ext(base), ".log") {
			return a.logHighlighter(), nil
		}
		if lexer := lexers.Match(base); lexer != nil {
			return a.syntax(lexer), nil
		}
	}

	if lexer := analyseFirstLine(firstLine); lexer != nil {
		return a.syntax(lexer), nil
	}
	return a.syntax(plainText()), nil
}

func (a *Assets) named(language string) (Highlighter, error) {
	if isLog(language) {
		return a.logHighlighter(), nil
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil, fmt.Errorf("unknown syntax %q (see --list-languages)", language)
	}
	return a.syntax(lexer), nil
}

func (a *Assets) syntax(lexer chroma.Lexer) Highlighter {
	return NewSyntaxHighlighter(lexer, a.theme, a.contextLines)
}

func (a *Assets) logHighlighter() Highlighter {
	return NewLogHighlighter(a.detector, a.levels)
}

// plainText returns the grammar used when nothing else matches.
func plainText() chroma.Lexer {
	if lexer := lexers.Get("plaintext"); lexer != nil {
		return lexer
	}
	return lexers.Fallback
}

// analyseFirstLine only trusts content analysis for lines that announce
// their language.
func analyseFirstLine(line []byte) chroma.Lexer {
	text := string(line)
	if !strings.HasPrefix(text, "#!") && !strings.HasPrefix(text, "<?") {
		return nil
	}
	return lexers.Analyse(text)
}

// Language describes one listable grammar.
type Language struct {
	Name     string
	Patterns []string
}

// Languages returns every grammar that matches at least one file name
// pattern, including the built-in log highlighter.
func Languages() []Language {
	langs := []Language{{Name: LogLanguage, Patterns: []string{"*.log"}}}
	for _, lexer := range lexers.GlobalLexerRegistry.Lexers {
		cfg := lexer.Config()
		if len(cfg.Filenames) == 0 {
			continue
		}
		langs = append(langs, Language{Name: cfg.Name, Patterns: append([]string(nil), cfg.Filenames...)})
	}
	return langs
}

// Themes returns the names of every available theme, sorted.
func Themes() []string {
	return styles.Names()
}
