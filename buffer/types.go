package buffer

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrInvalidRune is returned when a rune cannot be stored in the buffer.
	ErrInvalidRune = errors.New("buffer: rune cannot be represented")
	// ErrOffsetOutOfRange is returned for offsets outside [0, Len()].
	ErrOffsetOutOfRange = errors.New("buffer: offset out of range")
)

// Representable reports whether r may be inserted into a buffer.
//
// Newlines are accepted; every other rune must be a valid, printable code
// point.
func Representable(r rune) bool {
	if r == '\n' {
		return true
	}
	if r == utf8.RuneError || !utf8.ValidRune(r) {
		return false
	}
	return unicode.IsPrint(r)
}

func invalidRuneError(r rune) error {
	return fmt.Errorf("insert %U: %w", r, ErrInvalidRune)
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
