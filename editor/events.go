package editor

import (
	"time"

	"github.com/vix597/jackit/buffer"
)

// ChangeEvent is emitted after every effective buffer mutation, cursor moves
// included.
type ChangeEvent struct {
	Version uint64
	Cursor  int

	// Full text; hosts can diff if needed.
	Text string
}

func buildChangeEvent(b *buffer.Buffer) ChangeEvent {
	return ChangeEvent{
		Version: b.Version(),
		Cursor:  b.Cursor(),
		Text:    b.Text(),
	}
}

// Commit carries the buffer text out of a stopped session, verbatim.
type Commit struct {
	Text string
}

// Hint is a short message for the player, shown for Duration.
type Hint struct {
	Text     string
	Duration time.Duration
}

const hintDuration = 2 * time.Second

var (
	hintInvalidCharacter = Hint{Text: "Attempt to enter an invalid character!", Duration: hintDuration}
	hintUnrenderable     = Hint{Text: "That thing you just entered was real bad!", Duration: hintDuration}
)
