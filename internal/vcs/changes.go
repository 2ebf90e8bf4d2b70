package vcs

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Marker is the change kind of one line.
type Marker int

const (
	Unchanged Marker = iota
	Added
	Modified
	// RemovedAbove marks the line following a deletion.
	RemovedAbove
	// RemovedBelow marks the last line when lines were deleted at the end
	// of the file.
	RemovedBelow
)

func (m Marker) String() string {
	switch m {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case RemovedAbove:
		return "removed-above"
	case RemovedBelow:
		return "removed-below"
	}
	return "unchanged"
}

// Changes maps 1-based line numbers of the new text to markers. Lines not
// present are unchanged.
type Changes map[int]Marker

// mark records m unless line already carries a marker.
func (c Changes) mark(line int, m Marker) {
	if _, ok := c[line]; !ok {
		c[line] = m
	}
}

// ComputeChanges line-diffs oldText against newText. It returns nil when
// the texts have the same lines.
func ComputeChanges(oldText, newText string) Changes {
	dmp := diffmatchpatch.New()
	oldRunes, newRunes, _ := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)

	total := len(newRunes)
	changes := Changes{}
	line := 1
	var dels, ins int

	flush := func() {
		switch {
		case ins > 0 && dels > 0:
			for n := line - ins; n < line; n++ {
				changes.mark(n, Modified)
			}
		case ins > 0:
			for n := line - ins; n < line; n++ {
				changes.mark(n, Added)
			}
		case dels > 0:
			if line <= total {
				changes.mark(line, RemovedAbove)
			} else if total > 0 {
				changes.mark(total, RemovedBelow)
			}
		}
		dels, ins = 0, 0
	}

	// Each rune of a diff's text stands for one line.
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			line += n
		case diffmatchpatch.DiffDelete:
			dels += n
		case diffmatchpatch.DiffInsert:
			ins += n
			line += n
		}
	}
	flush()

	if len(changes) == 0 {
		return nil
	}
	return changes
}
