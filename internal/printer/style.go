package printer

import (
	"fmt"
	"strings"
)

// Components is the set of decorations drawn around file content.
type Components uint8

const (
	Header Components = 1 << iota
	Grid
	Numbers
	Changes

	Plain Components = 0
	Full             = Header | Grid | Numbers | Changes
)

// Has reports whether every component in c2 is enabled.
func (c Components) Has(c2 Components) bool {
	return c&c2 == c2
}

func (c Components) String() string {
	if c == Plain {
		return "plain"
	}
	var names []string
	for _, n := range componentNames {
		if c.Has(n.c) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}

var componentNames = []struct {
	name string
	c    Components
}{
	{"header", Header},
	{"grid", Grid},
	{"numbers", Numbers},
	{"changes", Changes},
}

// ParseStyle parses a comma separated component list such as
// "numbers,changes" or one of the presets full and plain.
func ParseStyle(s string) (Components, error) {
	var c Components
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		switch part {
		case "":
			continue
		case "full":
			c |= Full
			continue
		case "plain":
			continue
		}

		found := false
		for _, n := range componentNames {
			if n.name == part {
				c |= n.c
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown style component %q", part)
		}
	}
	return c, nil
}
