// Package looseversion splits free-form version strings such as "11.2b1" or
// "9.6_beta-3" into integer and text components.
package looseversion

import (
	"regexp"
	"strconv"
	"strings"
)

var separators = regexp.MustCompile(`[._-]`)

// Component is one separator-delimited token of a version string.
type Component struct {
	Number  int
	Text    string
	Numeric bool
}

func (c Component) String() string {
	if c.Numeric {
		return strconv.Itoa(c.Number)
	}
	return c.Text
}

// LooseVersion is a parsed version string. The zero value is an empty version.
type LooseVersion struct {
	raw        string
	components []Component
}

// Parse splits vstring on ".", "_" and "-". Tokens that read as a decimal
// integer (surrounding spaces and a leading "+" allowed) become numbers,
// everything else, including empty tokens, is kept as text.
func Parse(vstring string) LooseVersion {
	parts := separators.Split(vstring, -1)
	components := make([]Component, 0, len(parts))
	for _, p := range parts {
		components = append(components, component(p))
	}
	return LooseVersion{raw: vstring, components: components}
}

func component(token string) Component {
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return Component{Text: token}
	}
	return Component{Number: n, Numeric: true}
}

// Components returns a copy of the parsed components.
func (v LooseVersion) Components() []Component {
	out := make([]Component, len(v.components))
	copy(out, v.components)
	return out
}

// Leading returns the run of integer components at the start of v, so
// "9.6.3beta" yields [9 6] and "beta1" yields nothing.
func (v LooseVersion) Leading() []int {
	var out []int
	for _, c := range v.components {
		if !c.Numeric {
			break
		}
		out = append(out, c.Number)
	}
	return out
}

// String returns the original version string.
func (v LooseVersion) String() string { return v.raw }

// Compare orders v against other component by component. Numbers compare
// numerically and sort before text; text compares lexically. When one
// version is a prefix of the other the shorter sorts first.
func (v LooseVersion) Compare(other LooseVersion) int {
	for i := 0; i < len(v.components) && i < len(other.components); i++ {
		if c := compareComponent(v.components[i], other.components[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(v.components) < len(other.components):
		return -1
	case len(v.components) > len(other.components):
		return 1
	}
	return 0
}

func compareComponent(a, b Component) int {
	switch {
	case a.Numeric && b.Numeric:
		switch {
		case a.Number < b.Number:
			return -1
		case a.Number > b.Number:
			return 1
		}
		return 0
	case a.Numeric:
		return -1
	case b.Numeric:
		return 1
	}
	return strings.Compare(a.Text, b.Text)
}
