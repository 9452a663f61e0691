package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vix597/jackit/internal/cells"
	"github.com/vix597/jackit/layout"
)

// ErrUnrenderable is returned for text the cell grid cannot draw.
var ErrUnrenderable = errors.New("editor: line cannot be rendered")

// renderLine styles one visual line with the cursor at cursorCol, or
// without a cursor when cursorCol is negative.
func renderLine(st Style, text string, cursorCol int) (string, error) {
	for _, r := range text {
		if !cells.Printable(r) {
			return "", fmt.Errorf("render %U: %w", r, ErrUnrenderable)
		}
	}
	return renderVisualLine(st, text, cursorCol), nil
}

func renderVisualLine(st Style, text string, cursorCol int) string {
	if cursorCol < 0 {
		return renderText(st, text)
	}
	runes := []rune(text)
	if cursorCol >= len(runes) {
		// End of line: draw the cursor over a placeholder cell.
		return renderText(st, string(runes)) + st.Cursor.Render(" ")
	}
	return renderText(st, string(runes[:cursorCol])) +
		st.Cursor.Render(string(runes[cursorCol])) +
		renderText(st, string(runes[cursorCol+1:]))
}

func renderText(st Style, s string) string {
	if s == "" {
		return ""
	}
	return st.Text.Render(s)
}

func (m *Model) renderContent() string {
	f, err := m.sess.Frame()
	if err != nil {
		m.log.Error("build frame", "err", err)
		return ""
	}

	digitCount := 0
	if m.cfg.ShowLineNums {
		digitCount = gutterDigits(paragraphCount(f.Lines))
	}
	cursorParagraph := -1
	if f.Cursor.Line < len(f.Lines) {
		cursorParagraph = f.Lines[f.Cursor.Line].Paragraph
	}

	out := make([]string, 0, len(f.Lines))
	unrenderable := false
	for i, ln := range f.Lines {
		var sb strings.Builder

		if m.cfg.ShowLineNums {
			first := i == 0 || f.Lines[i-1].Paragraph != ln.Paragraph
			numStyle := m.cfg.Style.LineNum
			if first && ln.Paragraph == cursorParagraph && m.sess.Running() {
				numStyle = m.cfg.Style.LineNumActive
			}
			num := fmt.Sprintf("%*s", digitCount, "")
			if first {
				num = fmt.Sprintf("%*d", digitCount, ln.Paragraph+1)
			}
			sb.WriteString(numStyle.Render(num))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}

		col := -1
		if i == f.Cursor.Line && m.sess.Running() {
			col = f.Cursor.Col
		}
		s, err := renderLine(m.cfg.Style, ln.Text, col)
		if err != nil {
			if !unrenderable {
				m.log.Warn("unrenderable line", "line", i, "err", err)
			}
			unrenderable = true
			s = renderVisualLine(m.cfg.Style, strings.Repeat("*", ln.Len()), col)
		}
		sb.WriteString(s)

		out = append(out, sb.String())
	}
	if unrenderable {
		m.out.hint(hintUnrenderable)
	}

	return strings.Join(out, "\n")
}

func paragraphCount(lines []layout.Line) int {
	if len(lines) == 0 {
		return 1
	}
	return lines[len(lines)-1].Paragraph + 1
}

func gutterDigits(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	return len(fmt.Sprintf("%d", lineCount))
}
