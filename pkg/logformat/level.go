package logformat

import (
	"strings"

	"github.com/TimelordUK/mcat/internal/config"
)

// Level represents a log severity level
type Level int

const (
	LevelUnknown Level = iota
	LevelTrace
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "unknown"
}

// detectionOrder checks the most severe levels first
var detectionOrder = []Level{LevelFatal, LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace}

// LevelDetector detects log levels from line content
type LevelDetector struct {
	patterns map[Level][]string
}

// NewLevelDetector creates a detector from config
func NewLevelDetector(cfg *config.LogLevelConfig) *LevelDetector {
	return &LevelDetector{
		patterns: map[Level][]string{
			LevelTrace: cfg.TracePatterns,
			LevelDebug: cfg.DebugPatterns,
			LevelInfo:  cfg.InfoPatterns,
			LevelWarn:  cfg.WarnPatterns,
			LevelError: cfg.ErrorPatterns,
			LevelFatal: cfg.FatalPatterns,
		},
	}
}

// Detect returns the log level for a line
func (d *LevelDetector) Detect(line string) Level {
	for _, level := range detectionOrder {
		for _, pattern := range d.patterns[level] {
			if strings.Contains(line, pattern) {
				return level
			}
		}
	}
	return LevelUnknown
}
