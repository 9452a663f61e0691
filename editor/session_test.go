package editor

import (
	"errors"
	"testing"
	"time"

	"github.com/vix597/jackit/layout"
)

type fakeRepeater struct {
	acquired, released int
	delay, interval    time.Duration
	err                error
}

func (r *fakeRepeater) AcquireRepeat(delay, interval time.Duration) (RepeatHandle, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.acquired++
	r.delay, r.interval = delay, interval
	return ReleaseFunc(func() { r.released++ }), nil
}

func openSession(t *testing.T, cfg Config, text string) *Session {
	t.Helper()
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Open(text); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func press(s *Session, keys ...Key) {
	for _, k := range keys {
		s.HandleKey(KeyEvent{Key: k})
	}
}

func TestSession_OpenAcquiresRepeat(t *testing.T) {
	rep := &fakeRepeater{}
	s := openSession(t, Config{
		Repeater:       rep,
		RepeatDelay:    300 * time.Millisecond,
		RepeatInterval: 30 * time.Millisecond,
	}, "print(1)")

	if !s.Running() {
		t.Fatalf("expected running session")
	}
	if got, want := rep.acquired, 1; got != want {
		t.Fatalf("acquired: got %d, want %d", got, want)
	}
	if rep.delay != 300*time.Millisecond || rep.interval != 30*time.Millisecond {
		t.Fatalf("repeat params: got %v/%v", rep.delay, rep.interval)
	}
	if got, want := s.Cursor(), 0; got != want {
		t.Fatalf("cursor: got %d, want %d", got, want)
	}
	if got, want := s.Text(), "print(1)"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if !s.Dirty() {
		t.Fatalf("expected dirty session after open")
	}
}

func TestSession_OpenWhileRunningFails(t *testing.T) {
	rep := &fakeRepeater{}
	s := openSession(t, Config{Repeater: rep}, "a")

	if err := s.Open("b"); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Open: got %v, want ErrAlreadyRunning", err)
	}
	if got, want := rep.acquired, 1; got != want {
		t.Fatalf("acquired: got %d, want %d", got, want)
	}
	if got, want := s.Text(), "a"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestSession_OpenRepeatFailureStaysStopped(t *testing.T) {
	boom := errors.New("boom")
	s, err := NewSession(Config{Repeater: &fakeRepeater{err: boom}})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Open("x"); !errors.Is(err, boom) {
		t.Fatalf("Open: got %v, want %v", err, boom)
	}
	if s.Running() {
		t.Fatalf("expected stopped session")
	}
}

func TestSession_StopIsIdempotent(t *testing.T) {
	rep := &fakeRepeater{}
	var commits []Commit
	s := openSession(t, Config{
		Repeater: rep,
		OnCommit: func(c Commit) { commits = append(commits, c) },
	}, "x")

	s.Stop()
	s.Stop()

	if s.Running() {
		t.Fatalf("expected stopped session")
	}
	if got, want := rep.released, 1; got != want {
		t.Fatalf("released: got %d, want %d", got, want)
	}
	if got, want := len(commits), 1; got != want {
		t.Fatalf("commits: got %d, want %d", got, want)
	}
}

func TestSession_ReopenAfterStop(t *testing.T) {
	rep := &fakeRepeater{}
	s := openSession(t, Config{Repeater: rep}, "first")
	s.Stop()
	if err := s.Open("second"); err != nil {
		t.Fatalf("Open after Stop: %v", err)
	}
	s.Stop()

	if rep.acquired != 2 || rep.released != 2 {
		t.Fatalf("acquire/release: got %d/%d, want 2/2", rep.acquired, rep.released)
	}
}

func TestSession_EscapeCommitsVerbatim(t *testing.T) {
	var got []Commit
	s := openSession(t, Config{OnCommit: func(c Commit) { got = append(got, c) }}, "ab")

	press(s, KeyRight, KeyRight, KeyEnter, Key('c'), KeyTab)
	if !s.HandleKey(KeyEvent{Key: KeyEscape}) {
		t.Fatalf("escape not consumed")
	}

	if len(got) != 1 {
		t.Fatalf("commits: got %d, want 1", len(got))
	}
	if want := "ab\nc    "; got[0].Text != want {
		t.Fatalf("commit: got %q, want %q", got[0].Text, want)
	}
	if s.Running() {
		t.Fatalf("expected stopped session")
	}
}

func TestSession_IgnoresKeysWhenStoppedOrReleased(t *testing.T) {
	changes := 0
	s := openSession(t, Config{OnChange: func(ChangeEvent) { changes++ }}, "")

	if s.HandleKey(KeyEvent{Key: 'a', Up: true}) {
		t.Fatalf("key up consumed")
	}
	s.Stop()
	if s.HandleKey(KeyEvent{Key: 'a'}) {
		t.Fatalf("key consumed by stopped session")
	}
	s.Paste("zzz")

	if got := s.Text(); got != "" {
		t.Fatalf("text: got %q, want empty", got)
	}
	if changes != 0 {
		t.Fatalf("changes: got %d, want 0", changes)
	}
}

func TestSession_TypedCharactersResolveShift(t *testing.T) {
	s := openSession(t, Config{}, "")
	for _, ev := range []KeyEvent{
		{Key: 'h', Shift: true},
		{Key: 'i'},
		{Key: KeyLeftShift},
		{Key: '1', Shift: true},
		{Key: KeyKP4},
	} {
		if !s.HandleKey(ev) {
			t.Fatalf("HandleKey(%v) not consumed", ev.Key)
		}
	}
	if got, want := s.Text(), "Hi!4"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := s.Cursor(), 4; got != want {
		t.Fatalf("cursor: got %d, want %d", got, want)
	}
}

func TestSession_TabUsesTabSize(t *testing.T) {
	s := openSession(t, Config{}, "x := 1")
	press(s, KeyTab)
	if got, want := s.Text(), "    x := 1"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := s.Cursor(), 4; got != want {
		t.Fatalf("cursor: got %d, want %d", got, want)
	}

	s = openSession(t, Config{TabSize: 2}, "x")
	press(s, KeyTab)
	if got, want := s.Text(), "  x"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestSession_BackspaceAndDelete(t *testing.T) {
	s := openSession(t, Config{}, "abc")
	press(s, KeyBackspace)
	if got, want := s.Text(), "abc"; got != want {
		t.Fatalf("backspace at 0: got %q, want %q", got, want)
	}
	press(s, KeyDelete)
	if got, want := s.Text(), "bc"; got != want {
		t.Fatalf("delete: got %q, want %q", got, want)
	}
	press(s, KeyRight, KeyRight, KeyDelete, KeyBackspace)
	if got, want := s.Text(), "b"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := s.Cursor(), 1; got != want {
		t.Fatalf("cursor: got %d, want %d", got, want)
	}
}

func TestSession_InvalidKeyRaisesHint(t *testing.T) {
	var hints []Hint
	changes := 0
	s := openSession(t, Config{
		OnHint:   func(h Hint) { hints = append(hints, h) },
		OnChange: func(ChangeEvent) { changes++ },
	}, "ok")

	if !s.HandleKey(KeyEvent{Key: KeyUnknown}) {
		t.Fatalf("unknown key not consumed")
	}

	if len(hints) != 1 {
		t.Fatalf("hints: got %d, want 1", len(hints))
	}
	if got, want := hints[0].Text, "Attempt to enter an invalid character!"; got != want {
		t.Fatalf("hint: got %q, want %q", got, want)
	}
	if got, want := hints[0].Duration, 2*time.Second; got != want {
		t.Fatalf("hint duration: got %v, want %v", got, want)
	}
	if s.Text() != "ok" || changes != 0 {
		t.Fatalf("buffer changed: text=%q changes=%d", s.Text(), changes)
	}
}

func TestSession_Paste(t *testing.T) {
	var hints []Hint
	s := openSession(t, Config{OnHint: func(h Hint) { hints = append(hints, h) }}, "")

	s.Paste("a\r\nb\rc")
	if got, want := s.Text(), "a\nb\nc"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := s.Cursor(), 5; got != want {
		t.Fatalf("cursor: got %d, want %d", got, want)
	}

	s.Paste("x\x07y")
	if got, want := s.Text(), "a\nb\nc"; got != want {
		t.Fatalf("text after rejected paste: got %q, want %q", got, want)
	}
	if len(hints) != 1 {
		t.Fatalf("hints: got %d, want 1", len(hints))
	}
}

func TestSession_OnChangeTracksVersion(t *testing.T) {
	var evs []ChangeEvent
	s := openSession(t, Config{OnChange: func(ev ChangeEvent) { evs = append(evs, ev) }}, "")

	press(s, 'a', 'b', KeyLeft, KeyLeft, KeyLeft)

	if got, want := len(evs), 4; got != want {
		t.Fatalf("events: got %d, want %d", got, want)
	}
	for i := 1; i < len(evs); i++ {
		if evs[i].Version <= evs[i-1].Version {
			t.Fatalf("version not increasing at %d: %d <= %d", i, evs[i].Version, evs[i-1].Version)
		}
	}
	last := evs[len(evs)-1]
	if last.Text != "ab" || last.Cursor != 0 {
		t.Fatalf("last event: got (%q, %d), want (\"ab\", 0)", last.Text, last.Cursor)
	}
}

func TestSession_FrameOnlyRecomputesWhenDirty(t *testing.T) {
	s := openSession(t, Config{}, "ab")

	f1, err := s.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if s.Dirty() {
		t.Fatalf("expected clean session after Frame")
	}
	f2, _ := s.Frame()
	if f1.Version != f2.Version || &f1.Lines[0] != &f2.Lines[0] {
		t.Fatalf("clean Frame recomputed")
	}

	press(s, KeyLeft)
	if s.Dirty() {
		t.Fatalf("no-op move marked session dirty")
	}
	press(s, KeyRight)
	if !s.Dirty() {
		t.Fatalf("expected dirty session after move")
	}
	f3, _ := s.Frame()
	if got, want := f3.Cursor, (layout.Pos{Line: 0, Col: 1}); got != want {
		t.Fatalf("cursor: got %+v, want %+v", got, want)
	}

	if err := s.SetWrapWidth(s.WrapWidth()); err != nil {
		t.Fatalf("SetWrapWidth: %v", err)
	}
	if s.Dirty() {
		t.Fatalf("unchanged wrap width marked session dirty")
	}
	if err := s.SetWrapWidth(1); err != nil {
		t.Fatalf("SetWrapWidth: %v", err)
	}
	if !s.Dirty() {
		t.Fatalf("expected dirty session after wrap width change")
	}
	if err := s.SetWrapWidth(0); !errors.Is(err, layout.ErrInvalidWidth) {
		t.Fatalf("SetWrapWidth(0): got %v, want ErrInvalidWidth", err)
	}
}

func TestSession_FrameCursorAroundBlankLine(t *testing.T) {
	s := openSession(t, Config{}, "Hello\n\nWorld")

	tests := []struct {
		rights int
		want   layout.Pos
	}{
		{5, layout.Pos{Line: 0, Col: 5}},
		{6, layout.Pos{Line: 1, Col: 0}},
		{7, layout.Pos{Line: 2, Col: 0}},
		{12, layout.Pos{Line: 2, Col: 5}},
	}
	moved := 0
	for _, tt := range tests {
		for ; moved < tt.rights; moved++ {
			press(s, KeyRight)
		}
		f, err := s.Frame()
		if err != nil {
			t.Fatalf("Frame: %v", err)
		}
		if f.Cursor != tt.want {
			t.Fatalf("cursor after %d rights: got %+v, want %+v", tt.rights, f.Cursor, tt.want)
		}
	}
}

func TestSession_VerticalNavigation(t *testing.T) {
	s := openSession(t, Config{}, "long line\nab\nlong line")
	for i := 0; i < 7; i++ {
		press(s, KeyRight)
	}

	steps := []struct {
		k    Key
		want int
	}{
		{KeyDown, 12},
		{KeyDown, 15},
		{KeyDown, 15},
		{KeyUp, 12},
		{KeyUp, 2},
		{KeyUp, 2},
	}
	for i, st := range steps {
		press(s, st.k)
		if got := s.Cursor(); got != st.want {
			t.Fatalf("step %d (%v): got cursor %d, want %d", i, st.k, got, st.want)
		}
	}
}

func TestSession_VerticalNavigationAcrossSoftWraps(t *testing.T) {
	s := openSession(t, Config{WrapWidth: 4}, "abcdefgh")
	for i := 0; i < 8; i++ {
		press(s, KeyRight)
	}
	press(s, KeyUp)
	if got, want := s.Cursor(), 3; got != want {
		t.Fatalf("up: got %d, want %d", got, want)
	}

	// Inserting text rewraps; navigation follows the new layout.
	press(s, 'x', 'x', 'x', 'x')
	f, _ := s.Frame()
	if got, want := len(f.Lines), 3; got != want {
		t.Fatalf("lines after rewrap: got %d, want %d", got, want)
	}
	press(s, KeyDown)
	if got, want := s.Cursor(), 11; got != want {
		t.Fatalf("down: got %d, want %d", got, want)
	}
}

func TestNewSession_RejectsInvalidConfig(t *testing.T) {
	for _, cfg := range []Config{
		{TabSize: -1},
		{WrapWidth: -3},
		{RepeatDelay: -time.Second},
	} {
		if _, err := NewSession(cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("NewSession(%+v): got %v, want ErrInvalidConfig", cfg, err)
		}
	}
}
