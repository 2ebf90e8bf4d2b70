package highlight

import (
	"github.com/TimelordUK/mcat/internal/render"
	"github.com/alecthomas/chroma/v2"
)

// SyntaxHighlighter highlights with a chroma lexer.
//
// chroma tokenises whole texts, so each line is tokenised together with
// the lines kept in its State and only the line's own span is returned.
// Constructs opened on earlier lines style later lines correctly as long
// as the opener is within the lookback window.
type SyntaxHighlighter struct {
	lexer        chroma.Lexer
	theme        *render.SyntaxTheme
	contextLines int
}

// NewSyntaxHighlighter binds lexer and theme. contextLines bounds the
// lookback window; 0 tokenises every line on its own.
func NewSyntaxHighlighter(lexer chroma.Lexer, theme *render.SyntaxTheme, contextLines int) *SyntaxHighlighter {
	return &SyntaxHighlighter{
		lexer:        chroma.Coalesce(lexer),
		theme:        theme,
		contextLines: contextLines,
	}
}

func (h *SyntaxHighlighter) Name() string {
	return h.lexer.Config().Name
}

func (h *SyntaxHighlighter) NewState() *State {
	return newState(h.contextLines)
}

func (h *SyntaxHighlighter) Highlight(st *State, line string) []Region {
	prefix := st.context()
	st.push(line)

	regions := h.tokenise(prefix+line, len(prefix))
	if Text(regions) != line {
		return []Region{{Token: chroma.Text, Style: h.theme.Style(chroma.Text), Text: line}}
	}
	return regions
}

func (h *SyntaxHighlighter) Skip(st *State, line string) {
	st.push(line)
}

// tokenise lexes text and returns the regions covering text[start:].
func (h *SyntaxHighlighter) tokenise(text string, start int) []Region {
	if len(text) == start {
		return nil
	}

	it, err := h.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		return nil
	}

	var regions []Region
	pos := 0
	for tok := it(); tok != chroma.EOF && pos < len(text); tok = it() {
		end := pos + len(tok.Value)
		if end > start {
			from := max(pos, start) - pos
			to := min(end, len(text)) - pos
			if to > from {
				regions = append(regions, Region{
					Token: tok.Type,
					Style: h.theme.Style(tok.Type),
					Text:  tok.Value[from:to],
				})
			}
		}
		pos = end
	}
	return regions
}
