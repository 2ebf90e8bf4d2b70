package logformat

import (
	"testing"

	"github.com/TimelordUK/mcat/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDetector_Detect(t *testing.T) {
	d := NewLevelDetector(&config.DefaultConfig().LogLevels)

	tests := []struct {
		line string
		want Level
	}{
		{"2024-01-15 10:30:45 [INF] started", LevelInfo},
		{"2024-01-15 10:30:45 [WRN] slow disk", LevelWarn},
		{"ERROR: connection refused", LevelError},
		{"[FATAL] giving up", LevelFatal},
		{"TRACE entering loop", LevelTrace},
		{"[DBG] x=1", LevelDebug},
		{"\tat com.example.Main(Main.java:10)", LevelUnknown},
		// Severity wins when several patterns match.
		{"[INFO] retry after ERROR", LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Detect(tt.line))
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "warn", LevelWarn.String())
	assert.Equal(t, "unknown", Level(42).String())
}

func TestTimestampParser_Locate(t *testing.T) {
	p := NewTimestampParser()

	line := "[INF] 2024-01-15 10:30:45.123 request served"
	start, end, ts := p.Locate(line)
	require.NotNil(t, ts)
	assert.Equal(t, "2024-01-15 10:30:45.123", line[start:end])
	assert.Equal(t, 10, ts.Hour())
	assert.Equal(t, 30, ts.Minute())

	start, end, ts = p.Locate("no time in here")
	assert.Nil(t, ts)
	assert.Equal(t, -1, start)
	assert.Equal(t, -1, end)
}

func TestTimestampParser_Formats(t *testing.T) {
	p := NewTimestampParser()

	tests := []struct {
		name  string
		line  string
		match string
	}{
		{"rfc3339", "2024-01-15T10:30:45Z boot", "2024-01-15T10:30:45Z"},
		{"plain", "2024-01-15 10:30:45 boot", "2024-01-15 10:30:45"},
		{"syslog", "Jan 15 10:30:45 host sshd[1]: ok", "Jan 15 10:30:45"},
		{"apache", `127.0.0.1 - - [15/Jan/2024:10:30:45 +0000] "GET /"`, "15/Jan/2024:10:30:45 +0000"},
		{"unix", "1705315845 event", "1705315845"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ts := p.Locate(tt.line)
			require.NotNil(t, ts)
			assert.Equal(t, tt.match, tt.line[start:end])
		})
	}
}

func TestTimestampParser_UnixMillis(t *testing.T) {
	p := NewTimestampParser()
	start, end, ts := p.Locate("1705315845123 millis")
	require.NotNil(t, ts)
	assert.Equal(t, 0, start)
	assert.Equal(t, 13, end)
	assert.Equal(t, int64(1705315845123), ts.UnixMilli())
}
