package buffer

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirHome // start of text
	DirEnd  // end of text
)

func (b *Buffer) MoveLeft() { b.Move(DirLeft) }

func (b *Buffer) MoveRight() { b.Move(DirRight) }

// Move shifts the cursor one rune, or to either end of the text. Moves past
// the ends are no-ops.
func (b *Buffer) Move(dir MoveDir) {
	next := b.cursor
	switch dir {
	case DirLeft:
		next--
	case DirRight:
		next++
	case DirHome:
		next = 0
	case DirEnd:
		next = len(b.text)
	}
	next = clampInt(next, 0, len(b.text))
	if next == b.cursor {
		return
	}
	b.cursor = next
	b.version++
	b.checkInvariant()
}
