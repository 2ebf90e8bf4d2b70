// Package linerange parses and evaluates inclusive line windows.
package linerange

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unbounded is the upper bound of an open-ended range.
const Unbounded = math.MaxInt

// LineRange is an inclusive window over 1-based line numbers.
type LineRange struct {
	Lower int
	Upper int
}

// Contains reports whether line lies inside the window.
func (r LineRange) Contains(line int) bool {
	return line >= r.Lower && line <= r.Upper
}

func (r LineRange) String() string {
	if r.Upper == Unbounded {
		return fmt.Sprintf("%d:", r.Lower)
	}
	return fmt.Sprintf("%d:%d", r.Lower, r.Upper)
}

// Parse parses a range such as "10:20", "10:", ":20", "15", "10-20" or
// "100-$".
func Parse(s string) (LineRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LineRange{}, fmt.Errorf("empty line range")
	}

	lowerStr, upperStr, found := cut(s)
	if !found {
		n, err := parseBound(s, 0)
		if err != nil {
			return LineRange{}, fmt.Errorf("invalid line range %q: %w", s, err)
		}
		return validate(s, LineRange{Lower: n, Upper: n})
	}
	if strings.TrimSpace(lowerStr) == "" && strings.TrimSpace(upperStr) == "" {
		return LineRange{}, fmt.Errorf("invalid line range %q: missing bounds", s)
	}

	lower, err := parseBound(lowerStr, 1)
	if err != nil {
		return LineRange{}, fmt.Errorf("invalid line range %q: %w", s, err)
	}
	upper, err := parseBound(upperStr, Unbounded)
	if err != nil {
		return LineRange{}, fmt.Errorf("invalid line range %q: %w", s, err)
	}
	return validate(s, LineRange{Lower: lower, Upper: upper})
}

// cut splits at the first ':' or '-' separator.
func cut(s string) (string, string, bool) {
	if i := strings.IndexAny(s, ":-"); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

func parseBound(ref string, empty int) (int, error) {
	ref = strings.TrimSpace(ref)
	switch ref {
	case "":
		if empty == 0 {
			return 0, fmt.Errorf("missing line number")
		}
		return empty, nil
	case "$":
		return Unbounded, nil
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("not a line number: %q", ref)
	}
	return n, nil
}

func validate(s string, r LineRange) (LineRange, error) {
	if r.Lower < 1 {
		return LineRange{}, fmt.Errorf("invalid line range %q: lines start at 1", s)
	}
	if r.Upper < r.Lower {
		return LineRange{}, fmt.Errorf("invalid line range %q: upper bound is below lower bound", s)
	}
	return r, nil
}

// ParseAll parses every range in exprs.
func ParseAll(exprs []string) ([]LineRange, error) {
	ranges := make([]LineRange, 0, len(exprs))
	for _, expr := range exprs {
		r, err := Parse(expr)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}
