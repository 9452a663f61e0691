package editor

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vix597/jackit/layout"
)

// CommitMsg is delivered through a command once the session stops.
type CommitMsg Commit

type hintExpiredMsg struct{ seq int }

// Model is a Bubble Tea component that runs a Session in a viewport.
//
// The last row of the model's height is reserved for hints.
type Model struct {
	cfg  Config
	log  *slog.Logger
	sess *Session
	out  *outbox

	viewport viewport.Model

	hint    Hint
	hintSeq int
}

// outbox collects session output raised while handling a message so that
// Update can turn it into commands.
type outbox struct {
	hints   []Hint
	commits []Commit

	onHint   func(Hint)
	onCommit func(Commit)
}

func (o *outbox) hint(h Hint) {
	o.hints = append(o.hints, h)
	if o.onHint != nil {
		o.onHint(h)
	}
}

func (o *outbox) commit(c Commit) {
	o.commits = append(o.commits, c)
	if o.onCommit != nil {
		o.onCommit(c)
	}
}

func (o *outbox) drain() ([]Hint, []Commit) {
	hints, commits := o.hints, o.commits
	o.hints, o.commits = nil, nil
	return hints, commits
}

// New opens a session on cfg.Text.
func New(cfg Config) (Model, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return Model{}, err
	}

	out := &outbox{onHint: cfg.OnHint, onCommit: cfg.OnCommit}
	sc := cfg
	sc.OnHint = out.hint
	sc.OnCommit = out.commit
	sess, err := NewSession(sc)
	if err != nil {
		return Model{}, err
	}
	if err := sess.Open(cfg.Text); err != nil {
		return Model{}, err
	}

	m := Model{
		cfg:      cfg,
		log:      cfg.Logger,
		sess:     sess,
		out:      out,
		viewport: viewport.New(0, 0),
	}
	m.rebuildContent()
	return m, nil
}

func (m Model) Session() *Session { return m.sess }

// Hint returns the hint currently shown, if any.
func (m Model) Hint() (Hint, bool) { return m.hint, m.hint.Text != "" }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	height--
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		m = m.updateKey(msg)
	case hintExpiredMsg:
		if msg.seq == m.hintSeq {
			m.hint = Hint{}
		}
		return m, nil
	}
	return m.flush()
}

func (m Model) View() string {
	return m.viewport.View() + "\n" + m.cfg.Style.Hint.Render(m.hint.Text)
}

func (m Model) updateKey(msg tea.KeyMsg) Model {
	if !m.sess.Running() {
		return m
	}

	// Paste events insert literal text and never trigger bindings.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.sess.Paste(string(msg.Runes))
	} else {
		for _, ev := range m.cfg.KeyMap.events(msg) {
			m.sess.HandleKey(ev)
		}
	}

	m.rebuildContent()
	m.followCursor()
	return m
}

// flush turns pending hints and commits into commands.
func (m Model) flush() (Model, tea.Cmd) {
	hints, commits := m.out.drain()
	var cmds []tea.Cmd
	for _, h := range hints {
		m.hintSeq++
		m.hint = h
		seq := m.hintSeq
		cmds = append(cmds, tea.Tick(h.Duration, func(time.Time) tea.Msg {
			return hintExpiredMsg{seq: seq}
		}))
	}
	for _, c := range commits {
		cmds = append(cmds, func() tea.Msg { return CommitMsg(c) })
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) rebuildContent() {
	m.syncWrapWidth()
	m.viewport.SetContent(m.renderContent())
}

// syncWrapWidth fits the wrap width to the viewport minus the gutter and
// one column for an end of line cursor.
func (m *Model) syncWrapWidth() {
	if m.viewport.Width <= 0 {
		return
	}
	contentWidth := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	if m.cfg.ShowLineNums {
		contentWidth -= gutterDigits(strings.Count(m.sess.Text(), "\n")+1) + 1
	}
	_ = m.sess.SetWrapWidth(layout.WidthFor(float64(contentWidth), 1))
}

func (m *Model) followCursor() {
	f, err := m.sess.Frame()
	if err != nil {
		return
	}
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	row := f.Cursor.Line
	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}
