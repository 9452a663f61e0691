package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/vix597/jackit/internal/cells"
)

// ErrInvalidWidth is returned when a wrap width is smaller than one column.
var ErrInvalidWidth = errors.New("layout: wrap width must be at least 1")

type token struct {
	start int
	end   int
}

// Wrap splits text into visual lines no wider than width columns.
//
// Explicit newlines always break; an empty logical line yields one empty
// visual line. Whitespace is kept verbatim, and words longer than width are
// hard-split, so joining the lines of a paragraph reproduces it exactly.
func Wrap(text string, width int) ([]string, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	segs := segments([]rune(text), width)
	out := make([]string, 0, len(segs))
	for _, seg := range segs {
		out = append(out, seg.Text)
	}
	return out, nil
}

// WidthFor derives a wrap width from a surface width and the average width of
// one glyph, both in the same unit. One column is kept free so a cursor placed
// after the last rune of a full line stays on the surface.
func WidthFor(surface, glyph float64) int {
	if glyph <= 0 || surface <= 0 || math.IsNaN(surface) || math.IsNaN(glyph) {
		return 1
	}
	w := int(math.Floor(surface/glyph)) - 1
	if w < 1 {
		return 1
	}
	return w
}

func checkWidth(width int) error {
	if width < 1 {
		return fmt.Errorf("width %d: %w", width, ErrInvalidWidth)
	}
	return nil
}

// segments is the single wrap decision shared by Wrap and Layout.
//
// Lines are returned in order with Start/End offsets into text. Every line but
// the last of each paragraph has Wrapped set.
func segments(text []rune, width int) []Line {
	lines := make([]Line, 0, 1+len(text)/width)
	paragraph := 0
	start := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '\n' {
			continue
		}
		lines = wrapParagraph(lines, text, start, i, paragraph, width)
		paragraph++
		start = i + 1
	}
	return lines
}

func wrapParagraph(lines []Line, text []rune, start, end, paragraph, width int) []Line {
	emit := func(s, e int, wrapped bool) {
		lines = append(lines, Line{
			Text:      string(text[s:e]),
			Start:     s,
			End:       e,
			Paragraph: paragraph,
			Wrapped:   wrapped,
		})
	}

	lineStart, lineLen := start, 0
	for _, tok := range tokenize(text, start, end) {
		n := tok.end - tok.start
		if lineLen+n <= width {
			lineLen += n
			continue
		}
		if lineLen > 0 {
			emit(lineStart, lineStart+lineLen, true)
		}

		s := tok.start
		for n > width {
			emit(s, s+width, true)
			s += width
			n -= width
		}
		lineStart, lineLen = s, n
	}
	emit(lineStart, lineStart+lineLen, false)
	return lines
}

// tokenize splits text[start:end] into maximal runs of whitespace and of
// non-whitespace.
func tokenize(text []rune, start, end int) []token {
	var toks []token
	for i := start; i < end; {
		space := cells.IsSpace(text[i])
		j := i + 1
		for j < end && cells.IsSpace(text[j]) == space {
			j++
		}
		toks = append(toks, token{start: i, end: j})
		i = j
	}
	return toks
}
