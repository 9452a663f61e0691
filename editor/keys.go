package editor

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/vix597/jackit/buffer"
)

// Key identifies a physical key. Character keys use their unshifted rune;
// named keys live above the Unicode range so they never collide with one.
type Key rune

const (
	KeyUnknown Key = unicode.MaxRune + 1 + iota
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyTab
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyLeftShift
	KeyRightShift
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
)

var keyNames = map[Key]string{
	KeyUnknown:    "unknown",
	KeyEscape:     "escape",
	KeyBackspace:  "backspace",
	KeyDelete:     "delete",
	KeyTab:        "tab",
	KeyEnter:      "enter",
	KeyLeft:       "left",
	KeyRight:      "right",
	KeyUp:         "up",
	KeyDown:       "down",
	KeyLeftShift:  "left shift",
	KeyRightShift: "right shift",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k.keypad() {
		return fmt.Sprintf("keypad %d", int(k-KeyKP0))
	}
	if k >= 0 && k <= unicode.MaxRune {
		return fmt.Sprintf("%q", rune(k))
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

func (k Key) keypad() bool { return k >= KeyKP0 && k <= KeyKP9 }

// KeyEvent is a single key transition as delivered by the host.
type KeyEvent struct {
	Key   Key
	Shift bool
	// Up marks a release. Sessions ignore releases.
	Up bool
}

// ErrUnresolvableKey is returned by Resolve for keys that do not produce a
// character the buffer can hold.
var ErrUnresolvableKey = errors.New("editor: key does not resolve to a character")

// US layout shifted symbols.
var shiftedSymbols = map[rune]rune{
	'`':  '~',
	'1':  '!',
	'2':  '@',
	'3':  '#',
	'4':  '$',
	'5':  '%',
	'6':  '^',
	'7':  '&',
	'8':  '*',
	'9':  '(',
	'0':  ')',
	'-':  '_',
	'=':  '+',
	'[':  '{',
	']':  '}',
	'\\': '|',
	';':  ':',
	'\'': '"',
	',':  '<',
	'.':  '>',
	'/':  '?',
}

// Resolve maps a key event to the character it types.
//
// Keypad digits alias to the main row first, then Shift uppercases ASCII
// letters and applies the US symbol row. Named keys and runes the buffer
// cannot represent fail with ErrUnresolvableKey.
func Resolve(ev KeyEvent) (rune, error) {
	k := ev.Key
	if k.keypad() {
		k = Key('0' + rune(k-KeyKP0))
	}
	if k < 0 || k > unicode.MaxRune {
		return 0, fmt.Errorf("resolve %v: %w", ev.Key, ErrUnresolvableKey)
	}

	r := rune(k)
	if ev.Shift {
		switch {
		case r >= 'a' && r <= 'z':
			r += 'A' - 'a'
		default:
			if s, ok := shiftedSymbols[r]; ok {
				r = s
			}
		}
	}

	// Line breaks only come from Enter.
	if r == '\n' || !buffer.Representable(r) {
		return 0, fmt.Errorf("resolve %v: %w", ev.Key, ErrUnresolvableKey)
	}
	return r, nil
}
