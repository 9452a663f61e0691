package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vix597/jackit/buffer"
	"github.com/vix597/jackit/layout"
)

// ErrAlreadyRunning is returned by Open on a running session.
var ErrAlreadyRunning = errors.New("editor: session already running")

// Frame is the wrapped view of a session at one buffer version.
// Lines is shared between calls and must be treated as read-only.
type Frame struct {
	Lines   []layout.Line
	Cursor  layout.Pos
	Width   int
	Version uint64
}

// Session is an edit session over a single buffer.
//
// A session is either running or not. Open starts it with fresh text, Stop
// ends it and commits the text. Key events outside a run are ignored.
// Session is not safe for concurrent use.
type Session struct {
	cfg Config
	log *slog.Logger
	buf *buffer.Buffer

	running bool
	repeat  RepeatHandle

	wrapWidth int
	dirty     bool
	layout    *layout.Layout
	frame     Frame
}

func NewSession(cfg Config) (*Session, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:       cfg,
		log:       cfg.Logger,
		buf:       buffer.New(""),
		wrapWidth: cfg.WrapWidth,
		dirty:     true,
	}, nil
}

// Open starts a run with text and the cursor at 0.
func (s *Session) Open(text string) error {
	if s.running {
		return ErrAlreadyRunning
	}
	if s.cfg.Repeater != nil {
		h, err := s.cfg.Repeater.AcquireRepeat(s.cfg.RepeatDelay, s.cfg.RepeatInterval)
		if err != nil {
			return fmt.Errorf("acquire key repeat: %w", err)
		}
		s.repeat = h
		s.log.Debug("key repeat acquired", "delay", s.cfg.RepeatDelay, "interval", s.cfg.RepeatInterval)
	}

	s.buf.Reset(text)
	s.running = true
	s.markDirty()
	s.log.Debug("editor session opened", "runes", s.buf.Len(), "wrap_width", s.wrapWidth)
	return nil
}

// Stop ends the run, releases key repeat and emits the commit.
// Stopping a session that is not running does nothing.
func (s *Session) Stop() {
	if !s.running {
		return
	}
	s.running = false
	if s.repeat != nil {
		h := s.repeat
		s.repeat = nil
		h.Release()
		s.log.Debug("key repeat released")
	}

	c := Commit{Text: s.buf.Text()}
	s.log.Debug("editor session stopped", "runes", s.buf.Len())
	if s.cfg.OnCommit != nil {
		s.cfg.OnCommit(c)
	}
}

// HandleKey applies one key event. It reports whether the event was
// consumed, which is false for releases and while the session is stopped.
func (s *Session) HandleKey(ev KeyEvent) bool {
	if !s.running || ev.Up {
		return false
	}

	switch ev.Key {
	case KeyEscape:
		s.Stop()
	case KeyDelete:
		s.apply(s.buf.DeleteForward)
	case KeyBackspace:
		s.apply(s.buf.DeleteBackward)
	case KeyTab:
		s.apply(func() { s.buf.InsertTab(s.cfg.TabSize) })
	case KeyEnter:
		s.apply(s.buf.InsertNewline)
	case KeyLeft:
		s.apply(s.buf.MoveLeft)
	case KeyRight:
		s.apply(s.buf.MoveRight)
	case KeyUp:
		s.moveVertical(-1)
	case KeyDown:
		s.moveVertical(1)
	case KeyLeftShift, KeyRightShift:
		// Modifier state arrives on the character event.
	default:
		s.insertKey(ev)
	}
	return true
}

// Paste inserts text at the cursor. Carriage returns are normalized to
// newlines. Text with any unrepresentable rune is rejected whole.
func (s *Session) Paste(text string) {
	if !s.running || text == "" {
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var err error
	s.apply(func() { err = s.buf.InsertText(text) })
	if err != nil {
		s.log.Warn("rejected paste", "runes", len([]rune(text)), "err", err)
		s.hint(hintInvalidCharacter)
	}
}

// SetWrapWidth changes the wrap width used by the next Frame.
func (s *Session) SetWrapWidth(width int) error {
	if width < 1 {
		return fmt.Errorf("set wrap width %d: %w", width, layout.ErrInvalidWidth)
	}
	if width != s.wrapWidth {
		s.wrapWidth = width
		s.markDirty()
	}
	return nil
}

func (s *Session) WrapWidth() int { return s.wrapWidth }

func (s *Session) Text() string { return s.buf.Text() }

// Cursor returns the cursor as a rune offset into Text.
func (s *Session) Cursor() int { return s.buf.Cursor() }

func (s *Session) Running() bool { return s.running }

// Dirty reports whether the next Frame will recompute the layout.
func (s *Session) Dirty() bool { return s.dirty }

// Frame returns the wrapped text and the cursor's visual position. The
// layout is rebuilt only when the buffer or wrap width changed since the
// previous call.
func (s *Session) Frame() (Frame, error) {
	if !s.dirty {
		return s.frame, nil
	}
	l, err := s.relayout()
	if err != nil {
		return Frame{}, err
	}
	cur, err := l.Visual(s.buf.Cursor())
	if err != nil {
		return Frame{}, fmt.Errorf("locate cursor: %w", err)
	}
	s.frame = Frame{
		Lines:   l.Lines(),
		Cursor:  cur,
		Width:   l.Width(),
		Version: s.buf.Version(),
	}
	s.dirty = false
	return s.frame, nil
}

func (s *Session) relayout() (*layout.Layout, error) {
	if s.layout != nil {
		return s.layout, nil
	}
	l, err := layout.New(s.buf.Text(), s.wrapWidth)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	s.layout = l
	return l, nil
}

func (s *Session) moveVertical(delta int) {
	l, err := s.relayout()
	if err != nil {
		s.log.Error("vertical move without layout", "err", err)
		return
	}
	cur := s.buf.Cursor()
	var off int
	if delta < 0 {
		off, err = l.Up(cur)
	} else {
		off, err = l.Down(cur)
	}
	if err != nil {
		// The layout was built from the current buffer; a miss is a bug.
		panic(fmt.Sprintf("editor: cursor %d outside layout: %v", cur, err))
	}
	s.apply(func() {
		if err := s.buf.SetCursor(off); err != nil {
			panic(fmt.Sprintf("editor: vertical target %d: %v", off, err))
		}
	})
}

func (s *Session) insertKey(ev KeyEvent) {
	r, err := Resolve(ev)
	if err != nil {
		s.log.Warn("rejected key", "key", ev.Key, "shift", ev.Shift, "err", err)
		s.hint(hintInvalidCharacter)
		return
	}
	s.apply(func() { err = s.buf.InsertRune(r) })
	if err != nil {
		s.log.Warn("rejected rune", "rune", r, "err", err)
		s.hint(hintInvalidCharacter)
	}
}

// apply runs fn and publishes the change if the buffer version moved.
func (s *Session) apply(fn func()) {
	before := s.buf.Version()
	fn()
	if s.buf.Version() == before {
		return
	}
	s.markDirty()
	if s.cfg.OnChange != nil {
		s.cfg.OnChange(buildChangeEvent(s.buf))
	}
}

func (s *Session) markDirty() {
	s.dirty = true
	s.layout = nil
}

func (s *Session) hint(h Hint) {
	if s.cfg.OnHint != nil {
		s.cfg.OnHint(h)
	}
}
