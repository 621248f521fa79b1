package input

import "context"

// KeyState reports which keys are currently held.
type KeyState interface {
	IsDown(key Key) bool
}

// Action runs when its key fires.
type Action func(ctx context.Context) error

// Binding ties a key to an action.
type Binding struct {
	Key    Key
	Action Action
}

// Debouncer makes one press fire one action. A key that fired stays locked
// until it is seen released.
type Debouncer struct {
	locked map[Key]bool
}

// NewDebouncer creates a debouncer with every key unlocked.
func NewDebouncer() *Debouncer {
	return &Debouncer{locked: make(map[Key]bool)}
}

// Poll fires every binding whose key is down and unlocked, then locks that
// key. Bindings run in order; the first error stops the poll.
func (d *Debouncer) Poll(ctx context.Context, keys KeyState, bindings []Binding) error {
	for _, b := range bindings {
		if !keys.IsDown(b.Key) || d.locked[b.Key] {
			continue
		}
		if err := b.Action(ctx); err != nil {
			return err
		}
		d.locked[b.Key] = true
	}
	return nil
}

// Release unlocks every locked key that is no longer down.
func (d *Debouncer) Release(keys KeyState) {
	for k := range d.locked {
		if !keys.IsDown(k) {
			delete(d.locked, k)
		}
	}
}

// Locked reports whether key is waiting to be released.
func (d *Debouncer) Locked(key Key) bool {
	return d.locked[key]
}

// Pressed is a KeyState backed by a set, used by frontends that know the
// exact key state and by tests.
type Pressed map[Key]bool

// IsDown implements KeyState.
func (p Pressed) IsDown(key Key) bool {
	return p[key]
}
