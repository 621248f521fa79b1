// Package game holds the play session, the input state machine driving it and
// the frame loop.
package game

// State is the input mode of the player.
type State int

const (
	// StateMovement moves the player with the direction keys.
	StateMovement State = iota
	// StateInteract waits for the direction of the tile to interact with.
	StateInteract
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateMovement:
		return "movement"
	case StateInteract:
		return "interact"
	default:
		return "unknown"
	}
}
