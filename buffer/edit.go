package buffer

import "strings"

// InsertRune inserts r at the cursor and advances the cursor past it.
func (b *Buffer) InsertRune(r rune) error {
	if !Representable(r) {
		return invalidRuneError(r)
	}
	b.splice(b.cursor, b.cursor, []rune{r})
	return nil
}

// InsertText inserts s at the cursor. Either every rune of s is inserted or,
// when one of them is not representable, none is.
func (b *Buffer) InsertText(s string) error {
	if s == "" {
		return nil
	}
	ins := []rune(s)
	for _, r := range ins {
		if !Representable(r) {
			return invalidRuneError(r)
		}
	}
	b.splice(b.cursor, b.cursor, ins)
	return nil
}

func (b *Buffer) InsertNewline() {
	b.splice(b.cursor, b.cursor, []rune{'\n'})
}

// InsertTab inserts size literal spaces.
func (b *Buffer) InsertTab(size int) {
	if size <= 0 {
		return
	}
	b.splice(b.cursor, b.cursor, []rune(strings.Repeat(" ", size)))
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	if b.cursor == 0 {
		return
	}
	b.splice(b.cursor-1, b.cursor, nil)
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() {
	if b.cursor == len(b.text) {
		return
	}
	b.splice(b.cursor, b.cursor+1, nil)
}

// splice replaces text[start:end] with ins and leaves the cursor right after
// the inserted runes.
func (b *Buffer) splice(start, end int, ins []rune) {
	if start < 0 || end < start || end > len(b.text) {
		panic("buffer: splice range outside text")
	}
	if start == end && len(ins) == 0 {
		return
	}

	out := make([]rune, 0, len(b.text)-(end-start)+len(ins))
	out = append(out, b.text[:start]...)
	out = append(out, ins...)
	out = append(out, b.text[end:]...)

	b.text = out
	b.cursor = start + len(ins)
	b.version++
	b.checkInvariant()
}
