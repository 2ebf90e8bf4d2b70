package highlight

import (
	"github.com/TimelordUK/mcat/internal/render"
	"github.com/TimelordUK/mcat/pkg/logformat"
	"github.com/alecthomas/chroma/v2"
)

// LogLanguage is the name of the built-in log highlighter.
const LogLanguage = "Log"

// LogHighlighter colors lines by detected log level. Lines with no level
// of their own (exception messages, stack frames, wrapped text) continue
// the level of the line before them.
type LogHighlighter struct {
	detector   *logformat.LevelDetector
	timestamps *logformat.TimestampParser
	styles     *render.LevelStyles
}

// NewLogHighlighter creates a log highlighter
func NewLogHighlighter(detector *logformat.LevelDetector, styles *render.LevelStyles) *LogHighlighter {
	return &LogHighlighter{
		detector:   detector,
		timestamps: logformat.NewTimestampParser(),
		styles:     styles,
	}
}

func (h *LogHighlighter) Name() string {
	return LogLanguage
}

func (h *LogHighlighter) NewState() *State {
	return newState(0)
}

var levelTokens = map[logformat.Level]chroma.TokenType{
	logformat.LevelUnknown: chroma.Text,
	logformat.LevelTrace:   chroma.Comment,
	logformat.LevelDebug:   chroma.Comment,
	logformat.LevelInfo:    chroma.Text,
	logformat.LevelWarn:    chroma.GenericStrong,
	logformat.LevelError:   chroma.GenericError,
	logformat.LevelFatal:   chroma.GenericError,
}

func (h *LogHighlighter) Highlight(st *State, line string) []Region {
	level := h.advance(st, line)
	style := h.styles.Level(level)
	token := levelTokens[level]

	start, end, ts := h.timestamps.Locate(line)
	if ts == nil {
		return []Region{{Token: token, Style: style, Text: line}}
	}

	var regions []Region
	if start > 0 {
		regions = append(regions, Region{Token: token, Style: style, Text: line[:start]})
	}
	regions = append(regions, Region{Token: chroma.LiteralDate, Style: h.styles.Timestamp(), Text: line[start:end]})
	if end < len(line) {
		regions = append(regions, Region{Token: token, Style: style, Text: line[end:]})
	}
	return regions
}

func (h *LogHighlighter) Skip(st *State, line string) {
	h.advance(st, line)
}

// advance updates the carried level and returns the level for line.
func (h *LogHighlighter) advance(st *State, line string) logformat.Level {
	level := h.detector.Detect(line)
	if level == logformat.LevelUnknown {
		return st.level
	}
	st.level = level
	return level
}
