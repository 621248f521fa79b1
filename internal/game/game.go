package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tiled/internal/assets"
	"github.com/samdwyer/tiled/internal/ui"
)

// Game runs a session in the terminal.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	keys     *ui.TerminalKeys
	session  *Session
	machine  *Machine
	interval time.Duration
	logger   *slog.Logger
}

// Settings are the frontend timings.
type Settings struct {
	FrameInterval  time.Duration
	KeyHold        time.Duration
	KeyRepeatDelay time.Duration
}

// New opens the terminal for session.
func New(session *Session, provider *assets.Provider, settings Settings, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.Default()
	}
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, provider),
		keys:     ui.NewTerminalKeys(settings.KeyHold, settings.KeyRepeatDelay),
		session:  session,
		machine:  NewMachine(session, logger),
		interval: settings.FrameInterval,
		logger:   logger.With("component", "game"),
	}, nil
}

// Run executes the main game loop until the player quits, ctx ends or a
// script fails. Each tick updates the machine with the held keys and
// redraws.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go g.pump(events, done)

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	g.render()
	for g.machine.Running() {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			g.handleEvent(ev)

		case <-ticker.C:
			if err := g.machine.Update(ctx, g.keys); err != nil {
				g.logger.Error("frame update failed", "error", err)
				return err
			}
			g.render()
		}
	}
	g.logger.Info("game ended")
	return nil
}

// pump forwards terminal events until the screen closes or done is closed.
func (g *Game) pump(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if g.keys.HandleEvent(ev) {
			g.logger.Debug("key", "key", ev.Name())
		}
	case *tcell.EventResize:
		w, h := g.screen.Size()
		g.logger.Debug("resize", "width", w, "height", h)
		g.screen.Sync()
	}
}

func (g *Game) render() {
	f := ui.Frame{
		Title:   g.session.Title(),
		View:    g.session.Viewport(),
		Samples: g.session.VisibleTiles(),
		Message: g.session.Message(),
		Mode:    g.machine.State().String(),
	}
	if room := g.session.CurrentRoom(); room != nil {
		f.Room = room.Name
	}
	for _, c := range g.machine.Candidates() {
		f.Highlights = append(f.Highlights, [2]int{c.DX, c.DY})
	}
	g.renderer.Render(f)
}

// Close restores the terminal. Run does this itself on return.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
