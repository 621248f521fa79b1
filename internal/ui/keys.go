package ui

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tiled/internal/input"
)

// TerminalKeys tracks which keys are held. Terminals only report presses
// and auto-repeats, so a key counts as down until a window has passed since
// its last event. A fresh press waits out delay for the first auto-repeat;
// once the key repeats the shorter hold applies.
type TerminalKeys struct {
	hold  time.Duration
	delay time.Duration
	keys  map[input.Key]heldKey
	now   func() time.Time
}

type heldKey struct {
	last      time.Time
	repeating bool
}

// NewTerminalKeys creates a key tracker. delay is raised to hold when it is
// shorter.
func NewTerminalKeys(hold, delay time.Duration) *TerminalKeys {
	return &TerminalKeys{
		hold:  hold,
		delay: max(hold, delay),
		keys:  make(map[input.Key]heldKey),
		now:   time.Now,
	}
}

// HandleEvent records a key event. It reports whether the key is one the
// game uses.
func (k *TerminalKeys) HandleEvent(ev *tcell.EventKey) bool {
	key, ok := keyFor(ev.Key(), ev.Rune())
	if !ok {
		return false
	}
	k.Press(key)
	return true
}

// Press records an event for key now. An event for a key that is still down
// is an auto-repeat.
func (k *TerminalKeys) Press(key input.Key) {
	k.keys[key] = heldKey{last: k.now(), repeating: k.IsDown(key)}
}

// IsDown implements input.KeyState.
func (k *TerminalKeys) IsDown(key input.Key) bool {
	h, ok := k.keys[key]
	if !ok {
		return false
	}
	window := k.delay
	if h.repeating {
		window = k.hold
	}
	if k.now().Sub(h.last) >= window {
		delete(k.keys, key)
		return false
	}
	return true
}

var specialKeys = map[tcell.Key]input.Key{
	tcell.KeyEscape: input.KeyEscape,
	tcell.KeyCtrlC:  input.KeyEscape,
	tcell.KeyUp:     input.KeyKP8,
	tcell.KeyDown:   input.KeyKP2,
	tcell.KeyLeft:   input.KeyKP4,
	tcell.KeyRight:  input.KeyKP6,
	tcell.KeyHome:   input.KeyKP7,
	tcell.KeyPgUp:   input.KeyKP9,
	tcell.KeyEnd:    input.KeyKP1,
	tcell.KeyPgDn:   input.KeyKP3,
}

var runeKeys = map[rune]input.Key{
	' ': input.KeySpace,
	'e': input.KeyE,
	'1': input.KeyKP1, '2': input.KeyKP2, '3': input.KeyKP3,
	'4': input.KeyKP4, '6': input.KeyKP6,
	'7': input.KeyKP7, '8': input.KeyKP8, '9': input.KeyKP9,
	'a': input.KeyA, 'b': input.KeyB, 'd': input.KeyD, 'n': input.KeyN,
	's': input.KeyS, 'u': input.KeyU, 'w': input.KeyW, 'y': input.KeyY,
}

// keyFor maps a tcell key to a game key. The numeric keypad arrives as
// digits, or as navigation keys when num lock is off.
func keyFor(key tcell.Key, r rune) (input.Key, bool) {
	if key == tcell.KeyRune {
		k, ok := runeKeys[unicode.ToLower(r)]
		return k, ok
	}
	k, ok := specialKeys[key]
	return k, ok
}
