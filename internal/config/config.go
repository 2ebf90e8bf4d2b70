package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Theme     ThemeConfig     `toml:"theme"`
	LogLevels LogLevelConfig  `toml:"log_levels"`
	Display   DisplayConfig   `toml:"display"`
	Paging    PagingConfig    `toml:"paging"`
	Highlight HighlightConfig `toml:"highlight"`
}

// ThemeConfig defines color schemes
type ThemeConfig struct {
	Name        string         `toml:"name"`
	LineNumbers string         `toml:"line_numbers"`
	Grid        string         `toml:"grid"`
	Header      string         `toml:"header"`
	Added       string         `toml:"added"`
	Modified    string         `toml:"modified"`
	Removed     string         `toml:"removed"`
	Timestamp   string         `toml:"timestamp"`
	Levels      LogLevelColors `toml:"levels"`
}

// LogLevelColors defines colors for each log level
type LogLevelColors struct {
	Trace string `toml:"trace"`
	Debug string `toml:"debug"`
	Info  string `toml:"info"`
	Warn  string `toml:"warn"`
	Error string `toml:"error"`
	Fatal string `toml:"fatal"`
}

// LogLevelConfig defines log level detection patterns
type LogLevelConfig struct {
	TracePatterns []string `toml:"trace_patterns"`
	DebugPatterns []string `toml:"debug_patterns"`
	InfoPatterns  []string `toml:"info_patterns"`
	WarnPatterns  []string `toml:"warn_patterns"`
	ErrorPatterns []string `toml:"error_patterns"`
	FatalPatterns []string `toml:"fatal_patterns"`
}

// DisplayConfig holds display options
type DisplayConfig struct {
	// Style is a comma separated component list: header, grid, numbers,
	// changes, or one of the presets full and plain.
	Style          string `toml:"style"`
	TabWidth       int    `toml:"tab_width"`
	MinNumberWidth int    `toml:"min_number_width"`
	Color          string `toml:"color"`
	TermWidth      int    `toml:"term_width"`
}

// PagingConfig selects between direct and paged output
type PagingConfig struct {
	Mode  string `toml:"mode"`
	Pager string `toml:"pager"`
}

// HighlightConfig tunes syntax detection and highlighting
type HighlightConfig struct {
	// ContextLines bounds how many preceding lines are re-tokenised with
	// each line so multi-line constructs keep their style.
	ContextLines int `toml:"context_lines"`

	// Mapping maps file name globs (e.g. "*.conf") to language names.
	Mapping map[string]string `toml:"mapping"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			Name:        "monokai",
			LineNumbers: "240", // Dark gray
			Grid:        "238", // Darker gray
			Header:      "252", // Light gray
			Added:       "34",  // Green
			Modified:    "214", // Orange
			Removed:     "167", // Soft red
			Timestamp:   "109", // Muted blue
			Levels: LogLevelColors{
				Trace: "240", // Dark gray
				Debug: "244", // Medium gray
				Info:  "250", // Light gray (default)
				Warn:  "214", // Orange
				Error: "167", // Soft red
				Fatal: "196", // Bright red
			},
		},
		LogLevels: LogLevelConfig{
			TracePatterns: []string{"[TRC]", "[TRACE]", "TRACE", "TRC"},
			DebugPatterns: []string{"[DBG]", "[DEBUG]", "DEBUG", "DBG"},
			InfoPatterns:  []string{"[INF]", "[INFO]", "INFO", "INF"},
			WarnPatterns:  []string{"[WRN]", "[WARN]", "[WARNING]", "WARN", "WRN", "WARNING"},
			ErrorPatterns: []string{"[ERR]", "[ERROR]", "ERROR", "ERR"},
			FatalPatterns: []string{"[FTL]", "[FATAL]", "FATAL", "FTL", "[CRIT]", "CRITICAL"},
		},
		Display: DisplayConfig{
			Style:          "full",
			TabWidth:       0,
			MinNumberWidth: 4,
			Color:          "auto",
		},
		Paging: PagingConfig{
			Mode: "auto",
		},
		Highlight: HighlightConfig{
			ContextLines: 32,
			Mapping:      map[string]string{},
		},
	}
}

// Load loads config from file, falling back to defaults
func Load() (*Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFrom loads config from the given path. An empty path or a missing
// file yields the defaults.
func LoadFrom(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv lets the environment override file settings
func applyEnv(cfg *Config) {
	if theme := os.Getenv("MCAT_THEME"); theme != "" {
		cfg.Theme.Name = theme
	}
	if pager := os.Getenv("MCAT_PAGER"); pager != "" {
		cfg.Paging.Pager = pager
	}
}

// SaveTo writes cfg to configPath, creating parent directories.
func SaveTo(configPath string, cfg *Config) error {
	if configPath == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if explicit := os.Getenv("MCAT_CONFIG_PATH"); explicit != "" {
		return explicit
	}

	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mcat", "config.toml")
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "mcat", "config.toml")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}
