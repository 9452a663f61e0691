package layout

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrOffsetOutOfRange is returned for offsets outside [0, TextLen()].
	ErrOffsetOutOfRange = errors.New("layout: offset out of range")
	// ErrNegativeCoordinate is returned for visual positions with a negative
	// line or column.
	ErrNegativeCoordinate = errors.New("layout: negative visual coordinate")
)

// Visual maps a buffer offset to the visual position the cursor is drawn at.
func (l *Layout) Visual(off int) (Pos, error) {
	i, err := l.lineIndexFor(off)
	if err != nil {
		return Pos{}, err
	}
	return Pos{Line: i, Col: off - l.lines[i].Start}, nil
}

// Offset maps a visual position back to a buffer offset.
//
// A line past the last one maps to the end of the text. A column past the end
// of its line is clamped to the line's last cursor column.
func (l *Layout) Offset(p Pos) (int, error) {
	if p.Line < 0 || p.Col < 0 {
		return 0, fmt.Errorf("offset for %+v: %w", p, ErrNegativeCoordinate)
	}
	if p.Line >= len(l.lines) {
		return l.textLen, nil
	}
	ln := l.lines[p.Line]
	col := p.Col
	if last := ln.lastCol(); col > last {
		col = last
	}
	return ln.Start + col, nil
}

// Up returns the offset one visual line above off, keeping the column where
// the target line is long enough. On the first line it returns off.
func (l *Layout) Up(off int) (int, error) { return l.vertical(off, -1) }

// Down returns the offset one visual line below off. On the last line it
// returns off.
func (l *Layout) Down(off int) (int, error) { return l.vertical(off, 1) }

func (l *Layout) vertical(off, delta int) (int, error) {
	cur, err := l.Visual(off)
	if err != nil {
		return 0, err
	}
	target := cur.Line + delta
	if target < 0 || target >= len(l.lines) {
		return off, nil
	}
	col := cur.Col
	if last := l.lines[target].lastCol(); col > last {
		col = last
	}
	return l.Offset(Pos{Line: target, Col: col})
}

// lineIndexFor finds the line holding off. Offsets on a soft break belong to
// the following line; offsets on a paragraph end belong to its last line.
func (l *Layout) lineIndexFor(off int) (int, error) {
	if off < 0 || off > l.textLen {
		return 0, fmt.Errorf("visual for %d (len %d): %w", off, l.textLen, ErrOffsetOutOfRange)
	}
	i := sort.Search(len(l.lines), func(i int) bool {
		ln := l.lines[i]
		if ln.Wrapped {
			return ln.End > off
		}
		return ln.End >= off
	})
	if i == len(l.lines) {
		// segments always ends with a paragraph-final line at textLen.
		panic(fmt.Sprintf("layout: no line holds offset %d", off))
	}
	return i, nil
}
