package layout

// Line is one visual row: the runes text[Start:End] of the buffer.
type Line struct {
	Text  string
	Start int
	End   int

	// Paragraph is the index of the logical ('\n'-separated) line this row
	// belongs to.
	Paragraph int

	// Wrapped is true when a soft break follows the line, i.e. the next line
	// continues the same paragraph.
	Wrapped bool
}

func (l Line) Len() int { return l.End - l.Start }

// lastCol is the largest column a cursor can occupy on the line. The offset
// right after a soft-wrapped line is column 0 of the next one.
func (l Line) lastCol() int {
	if l.Wrapped {
		return l.Len() - 1
	}
	return l.Len()
}

// Pos is a visual cursor position. Line and Col are 0-based.
type Pos struct {
	Line int
	Col  int
}

// Layout is the wrapped form of one text at one width. It is immutable.
type Layout struct {
	width   int
	textLen int
	lines   []Line
}

// New wraps text at width.
func New(text string, width int) (*Layout, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	runes := []rune(text)
	return &Layout{
		width:   width,
		textLen: len(runes),
		lines:   segments(runes, width),
	}, nil
}

func (l *Layout) Width() int { return l.width }

// TextLen is the rune length of the wrapped text.
func (l *Layout) TextLen() int { return l.textLen }

func (l *Layout) LineCount() int { return len(l.lines) }

// Lines returns a copy of the line table.
func (l *Layout) Lines() []Line { return append([]Line(nil), l.lines...) }

func (l *Layout) Line(i int) (Line, bool) {
	if i < 0 || i >= len(l.lines) {
		return Line{}, false
	}
	return l.lines[i], true
}

// Texts returns the text of every line.
func (l *Layout) Texts() []string {
	out := make([]string, len(l.lines))
	for i, ln := range l.lines {
		out[i] = ln.Text
	}
	return out
}
