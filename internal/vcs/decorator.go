package vcs

// Decorator answers which marker belongs on a line of one file.
type Decorator struct {
	changes Changes
}

// NewDecorator asks p for the changes of path once. A nil provider or an
// empty path (standard input) yields an inactive decorator.
func NewDecorator(p Provider, path string) *Decorator {
	if p == nil || path == "" {
		return &Decorator{}
	}
	return &Decorator{changes: p.LineChanges(path)}
}

// Active reports whether the file has a change mapping.
func (d *Decorator) Active() bool {
	return d != nil && d.changes != nil
}

// MarkerFor returns the marker of line. ok is false when the decorator is
// inactive.
func (d *Decorator) MarkerFor(line int) (m Marker, ok bool) {
	if !d.Active() {
		return Unchanged, false
	}
	return d.changes[line], true
}
