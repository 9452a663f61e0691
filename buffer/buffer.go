package buffer

import "fmt"

// Buffer is the pure document state: text and cursor.
type Buffer struct {
	text    []rune
	cursor  int
	version uint64
}

func New(text string) *Buffer {
	return &Buffer{text: []rune(text)}
}

func (b *Buffer) Text() string { return string(b.text) }

// Runes returns a copy of the buffer contents.
func (b *Buffer) Runes() []rune { return append([]rune(nil), b.text...) }

func (b *Buffer) Len() int { return len(b.text) }

// Version increases on every effective mutation, including cursor moves.
func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) Cursor() int { return b.cursor }

// SetCursor moves the cursor to off.
//
// Offsets outside [0, Len()] are rejected rather than clamped: they point at
// text that does not exist.
func (b *Buffer) SetCursor(off int) error {
	if off < 0 || off > len(b.text) {
		return fmt.Errorf("set cursor %d (len %d): %w", off, len(b.text), ErrOffsetOutOfRange)
	}
	if off == b.cursor {
		return nil
	}
	b.cursor = off
	b.version++
	b.checkInvariant()
	return nil
}

// Reset replaces the whole text and puts the cursor at 0.
func (b *Buffer) Reset(text string) {
	b.text = []rune(text)
	b.cursor = 0
	b.version++
	b.checkInvariant()
}

func (b *Buffer) checkInvariant() {
	if b.cursor < 0 || b.cursor > len(b.text) {
		panic(fmt.Sprintf("buffer: cursor %d outside [0, %d]", b.cursor, len(b.text)))
	}
}
