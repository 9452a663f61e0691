package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultWrapWidth = 80
	DefaultTabSize   = 4
)

// ErrInvalidConfig is returned by NewSession and New for unusable settings.
var ErrInvalidConfig = errors.New("editor: invalid config")

// Config configures a Session and the Model wrapping it.
//
// Zero values select defaults.
type Config struct {
	// Initial text opened by New. Sessions take their text from Open.
	Text string

	// Wrap width in columns. Model recomputes it from its size.
	WrapWidth int
	// Spaces inserted by Tab.
	TabSize int

	RepeatDelay    time.Duration
	RepeatInterval time.Duration
	// Optional. Nil means the host does not manage key repeat.
	Repeater Repeater

	// Called once per stop with the final text.
	OnCommit func(Commit)
	// Called for player facing messages.
	OnHint func(Hint)
	// Called after every effective mutation.
	OnChange func(ChangeEvent)

	Logger *slog.Logger

	// Rendering options.
	ShowLineNums bool
	Style        Style
	KeyMap       KeyMap
}

func (c Config) normalize() (Config, error) {
	switch {
	case c.WrapWidth < 0:
		return c, fmt.Errorf("wrap width %d: %w", c.WrapWidth, ErrInvalidConfig)
	case c.TabSize < 0:
		return c, fmt.Errorf("tab size %d: %w", c.TabSize, ErrInvalidConfig)
	case c.RepeatDelay < 0 || c.RepeatInterval < 0:
		return c, fmt.Errorf("key repeat %v/%v: %w", c.RepeatDelay, c.RepeatInterval, ErrInvalidConfig)
	}
	if c.WrapWidth == 0 {
		c.WrapWidth = DefaultWrapWidth
	}
	if c.TabSize == 0 {
		c.TabSize = DefaultTabSize
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if len(c.KeyMap.Stop.Keys()) == 0 {
		c.KeyMap = DefaultKeyMap()
	}
	return c, nil
}
