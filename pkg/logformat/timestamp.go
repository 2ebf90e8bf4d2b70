package logformat

import (
	"regexp"
	"time"
)

// TimestampParser detects and parses timestamps from log lines
type TimestampParser struct {
	patterns []timestampPattern
}

type timestampPattern struct {
	regex  *regexp.Regexp
	layout string
}

// NewTimestampParser creates a parser with common timestamp formats
func NewTimestampParser() *TimestampParser {
	return &TimestampParser{
		patterns: []timestampPattern{
			// ISO 8601 / RFC 3339 variants
			// 2024-01-15T10:30:45.123Z
			// 2024-01-15T10:30:45.123+00:00
			{
				regex:  regexp.MustCompile(`(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d{3})?(?:Z|[+-]\d{2}:\d{2})?)`),
				layout: time.RFC3339,
			},
			// Common log format with milliseconds
			// 2024-01-15 10:30:45.123
			{
				regex:  regexp.MustCompile(`(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3})`),
				layout: "2006-01-02 15:04:05.000",
			},
			// Common log format without milliseconds
			// 2024-01-15 10:30:45
			{
				regex:  regexp.MustCompile(`(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`),
				layout: "2006-01-02 15:04:05",
			},
			// Syslog format
			// Jan 15 10:30:45
			{
				regex:  regexp.MustCompile(`([A-Z][a-z]{2} \d{1,2} \d{2}:\d{2}:\d{2})`),
				layout: "Jan 2 15:04:05",
			},
			// Apache/nginx common log format
			// 15/Jan/2024:10:30:45 +0000
			{
				regex:  regexp.MustCompile(`(\d{2}/[A-Z][a-z]{2}/\d{4}:\d{2}:\d{2}:\d{2} [+-]\d{4})`),
				layout: "02/Jan/2006:15:04:05 -0700",
			},
			// Unix timestamp (seconds)
			// 1705315845
			{
				regex:  regexp.MustCompile(`^(\d{10})(?:\D|$)`),
				layout: "unix",
			},
			// Unix timestamp with milliseconds
			// 1705315845123
			{
				regex:  regexp.MustCompile(`^(\d{13})(?:\D|$)`),
				layout: "unix_ms",
			},
			// Bracket format common in many loggers
			// [2024-01-15 10:30:45.123]
			{
				regex:  regexp.MustCompile(`\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d{3})?)\]`),
				layout: "2006-01-02 15:04:05.000",
			},
			// Time only (assume today)
			// 10:30:45.123
			{
				regex:  regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}(?:\.\d{3})?)`),
				layout: "15:04:05.000",
			},
		},
	}
}

// Locate finds the first recognised timestamp in line and returns its byte
// span alongside the parsed time. start == end == -1 when none matches.
func (p *TimestampParser) Locate(line string) (int, int, *time.Time) {
	for _, pattern := range p.patterns {
		loc := pattern.regex.FindStringSubmatchIndex(line)
		if len(loc) < 4 || loc[2] < 0 {
			continue
		}

		start, end := loc[2], loc[3]
		if t := parseMatch(pattern.layout, line[start:end]); t != nil {
			return start, end, t
		}
	}

	return -1, -1, nil
}

// parseMatch parses one matched timestamp string with the pattern's layout
func parseMatch(layout, timeStr string) *time.Time {
	// Handle unix timestamps specially
	if layout == "unix" {
		t := time.Unix(parseUnixTimestamp(timeStr), 0)
		return &t
	}

	if layout == "unix_ms" {
		t := time.UnixMilli(parseUnixTimestamp(timeStr))
		return &t
	}

	// Try with milliseconds first, then without
	layouts := []string{layout}
	if layout == "2006-01-02 15:04:05.000" {
		layouts = append(layouts, "2006-01-02 15:04:05")
	}
	if layout == "15:04:05.000" {
		layouts = append(layouts, "15:04:05")
	}

	for _, l := range layouts {
		t, err := time.Parse(l, timeStr)
		if err != nil {
			continue
		}
		// For time-only formats, use today's date
		if l == "15:04:05" || l == "15:04:05.000" {
			now := time.Now()
			t = time.Date(now.Year(), now.Month(), now.Day(),
				t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
		}
		// For syslog format without year, use current year
		if l == "Jan 2 15:04:05" {
			t = time.Date(time.Now().Year(), t.Month(), t.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, time.Local)
		}
		return &t
	}
	return nil
}

// parseUnixTimestamp parses the leading digits of s
func parseUnixTimestamp(s string) int64 {
	var n int64
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int64(c-'0')
	}
	return n
}
