// Package cells answers how runes occupy a fixed-width character grid.
package cells

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Width returns the number of grid cells r occupies.
func Width(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		fallback := uniseg.StringWidth(string(r))
		if fallback > w {
			w = fallback
		}
	}
	return w
}

// StringWidth returns the total cell width of s.
func StringWidth(s string) int {
	n := 0
	for _, r := range s {
		n += Width(r)
	}
	return n
}

// Printable reports whether r can be drawn as one or more visible cells.
func Printable(r rune) bool {
	if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
		return false
	}
	return Width(r) > 0
}

// IsSpace reports whether r separates words inside a single line.
// Newlines are line boundaries, not word separators.
func IsSpace(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}
