// Package input provides key names, the directional key table and the key
// debouncer shared by every input state.
package input

// Key names a physical key independently of the frontend.
type Key string

const (
	KeyEscape Key = "esc"
	KeySpace  Key = "space"
	KeyE      Key = "e"

	KeyKP1 Key = "kp1"
	KeyKP2 Key = "kp2"
	KeyKP3 Key = "kp3"
	KeyKP4 Key = "kp4"
	KeyKP6 Key = "kp6"
	KeyKP7 Key = "kp7"
	KeyKP8 Key = "kp8"
	KeyKP9 Key = "kp9"

	KeyA Key = "a"
	KeyB Key = "b"
	KeyD Key = "d"
	KeyN Key = "n"
	KeyS Key = "s"
	KeyU Key = "u"
	KeyW Key = "w"
	KeyY Key = "y"
)

// Direction is one of the eight compass moves with its two key aliases.
type Direction struct {
	DX, DY int
	Keys   [2]Key
}

// Directions lists the eight moves. Each is reachable from the numeric keypad
// and from a letter key.
var Directions = []Direction{
	{DX: -1, DY: -1, Keys: [2]Key{KeyKP7, KeyY}},
	{DX: 1, DY: 1, Keys: [2]Key{KeyKP3, KeyN}},
	{DX: 1, DY: -1, Keys: [2]Key{KeyKP9, KeyU}},
	{DX: -1, DY: 1, Keys: [2]Key{KeyKP1, KeyB}},
	{DX: 0, DY: 1, Keys: [2]Key{KeyKP2, KeyS}},
	{DX: 0, DY: -1, Keys: [2]Key{KeyKP8, KeyW}},
	{DX: -1, DY: 0, Keys: [2]Key{KeyKP4, KeyA}},
	{DX: 1, DY: 0, Keys: [2]Key{KeyKP6, KeyD}},
}
