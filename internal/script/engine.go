// Package script binds tile events to an embedded scripting engine and
// exposes host commands to scripts.
package script

//go:generate mockgen -destination=mock/mock_engine.go -package=scriptmock github.com/samdwyer/tiled/internal/script Engine

// Args gives a host function access to the arguments of a script call.
// Positions start at 1. Accessors raise a script error on a type mismatch.
type Args interface {
	Int(n int) int
	String(n int) string
	// Text formats any argument the way print does.
	Text(n int) string
	Len() int
}

// HostFunc is a host command callable from scripts. Returned values are
// pushed back to the script in order; supported types are bool, int, string
// and nil.
type HostFunc func(args Args) []any

// Command is one named host function.
type Command struct {
	Name string
	Fn   HostFunc
}

// Engine is the scripting capability the game depends on.
type Engine interface {
	// LoadFile runs the script at path.
	LoadFile(path string) error
	// Call invokes the global zero-argument callable name. It fails with
	// CodeUndefinedCallable when name is not bound to a function.
	Call(name string) error
	// Register exposes fn to scripts under name.
	Register(name string, fn HostFunc) error
	// Close releases the engine.
	Close()
}
