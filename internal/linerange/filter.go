package linerange

// Filter decides which line numbers are retained. The zero value retains
// every line. Decisions depend only on the line number and the ranges.
type Filter struct {
	ranges   []LineRange
	minLower int
	maxUpper int
}

// NewFilter builds a filter over ranges. No ranges means all lines.
func NewFilter(ranges []LineRange) *Filter {
	f := &Filter{ranges: append([]LineRange(nil), ranges...)}
	for i, r := range f.ranges {
		if i == 0 || r.Lower < f.minLower {
			f.minLower = r.Lower
		}
		if r.Upper > f.maxUpper {
			f.maxUpper = r.Upper
		}
	}
	return f
}

// ShouldEmit reports whether line falls inside any window.
func (f *Filter) ShouldEmit(line int) bool {
	if len(f.ranges) == 0 {
		return true
	}
	for _, r := range f.ranges {
		if r.Contains(line) {
			return true
		}
	}
	return false
}

// IsBeforeAllRanges reports whether line precedes every window.
func (f *Filter) IsBeforeAllRanges(line int) bool {
	return len(f.ranges) > 0 && line < f.minLower
}

// IsPastAllRanges reports whether no line at or after line can be emitted.
func (f *Filter) IsPastAllRanges(line int) bool {
	return len(f.ranges) > 0 && f.maxUpper != Unbounded && line > f.maxUpper
}

// LastLine returns the highest line any window can emit, or false when
// output is not bounded.
func (f *Filter) LastLine() (int, bool) {
	if len(f.ranges) == 0 || f.maxUpper == Unbounded {
		return 0, false
	}
	return f.maxUpper, true
}
