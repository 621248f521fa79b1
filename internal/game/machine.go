package game

import (
	"context"
	"log/slog"

	"github.com/samdwyer/tiled/internal/input"
	"github.com/samdwyer/tiled/internal/world"
)

// Status line texts.
const (
	NothingToInteract = "Nothing to interact with"
	InteractPrompt    = "Interact in which direction? (space to cancel)"
)

// Machine turns key presses into session actions. It is either in Movement
// or in Interact; each state has its own key bindings over a shared
// debouncer.
type Machine struct {
	session    *Session
	debouncer  *input.Debouncer
	bindings   map[State][]input.Binding
	state      State
	candidates []Adjacent
	moved      bool
	running    bool
	logger     *slog.Logger
}

// NewMachine creates a machine in Movement driving session.
func NewMachine(session *Session, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Machine{
		session:   session,
		debouncer: input.NewDebouncer(),
		state:     StateMovement,
		running:   true,
		logger:    logger.With("component", "machine"),
	}
	m.bindings = map[State][]input.Binding{
		StateMovement: m.movementBindings(),
		StateInteract: m.interactBindings(),
	}
	return m
}

func (m *Machine) movementBindings() []input.Binding {
	bindings := []input.Binding{{Key: input.KeyEscape, Action: m.exit}}
	for _, dir := range input.Directions {
		action := m.move(dir.DX, dir.DY)
		for _, k := range dir.Keys {
			bindings = append(bindings, input.Binding{Key: k, Action: action})
		}
	}
	return append(bindings, input.Binding{Key: input.KeyE, Action: m.beginInteract})
}

func (m *Machine) interactBindings() []input.Binding {
	bindings := []input.Binding{
		{Key: input.KeySpace, Action: m.endInteract},
		{Key: input.KeyEscape, Action: m.endInteract},
	}
	for _, dir := range input.Directions {
		action := m.interact(dir.DX, dir.DY)
		for _, k := range dir.Keys {
			bindings = append(bindings, input.Binding{Key: k, Action: action})
		}
	}
	return bindings
}

// Update runs one frame. The bindings of the state the frame started in are
// polled; in Movement the session then runs its step logic. Keys seen up are
// released last. A returned error is fatal.
func (m *Machine) Update(ctx context.Context, keys input.KeyState) error {
	state := m.state
	if state == StateMovement {
		m.moved = false
	}
	if err := m.debouncer.Poll(ctx, keys, m.bindings[state]); err != nil {
		return err
	}
	if state == StateMovement {
		if err := m.session.Update(ctx, m.moved); err != nil {
			return err
		}
	}
	m.debouncer.Release(keys)
	return nil
}

// State returns the current input state.
func (m *Machine) State() State {
	return m.state
}

// Candidates returns the tiles selectable in Interact. It is empty in
// Movement.
func (m *Machine) Candidates() []Adjacent {
	return m.candidates
}

// Running reports whether the player has not asked to quit.
func (m *Machine) Running() bool {
	return m.running
}

// Moved reports whether the last Movement frame moved the player.
func (m *Machine) Moved() bool {
	return m.moved
}

func (m *Machine) exit(context.Context) error {
	m.running = false
	m.logger.Info("exit requested")
	return nil
}

func (m *Machine) move(dx, dy int) input.Action {
	return func(context.Context) error {
		if m.session.MovePlayer(dx, dy) {
			m.moved = true
			m.session.SetMessage("")
		}
		return nil
	}
}

func (m *Machine) beginInteract(context.Context) error {
	candidates := m.session.AdjacentTiles(HasEvent(world.EventInteract))
	if len(candidates) == 0 {
		m.session.SetMessage(NothingToInteract)
		return nil
	}
	m.candidates = candidates
	m.state = StateInteract
	m.session.SetMessage(InteractPrompt)
	m.logger.Debug("interact", "candidates", len(candidates))
	return nil
}

func (m *Machine) endInteract(context.Context) error {
	m.candidates = nil
	m.state = StateMovement
	if m.session.Message() == InteractPrompt {
		m.session.SetMessage("")
	}
	return nil
}

func (m *Machine) interact(dx, dy int) input.Action {
	return func(ctx context.Context) error {
		for _, c := range m.candidates {
			if c.DX != dx || c.DY != dy {
				continue
			}
			// scripts may set the status line, so clear the prompt first
			m.session.SetMessage("")
			if err := m.session.Interact(ctx, c); err != nil {
				return err
			}
			break
		}
		return m.endInteract(ctx)
	}
}
