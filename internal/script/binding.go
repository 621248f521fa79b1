package script

import (
	"context"
	"log/slog"
	"path"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/tiled/internal/errors"
	"github.com/samdwyer/tiled/internal/telemetry"
	"github.com/samdwyer/tiled/internal/world"
)

// Binding connects tiles to an Engine. It loads each script file once and
// dispatches tile events to the callables they name.
type Binding struct {
	engine Engine
	loaded map[string]struct{}
	logger *slog.Logger
}

// NewBinding wraps engine. A nil logger uses slog.Default().
func NewBinding(engine Engine, logger *slog.Logger) *Binding {
	if logger == nil {
		logger = slog.Default()
	}
	return &Binding{
		engine: engine,
		loaded: make(map[string]struct{}),
		logger: logger.With("component", "script"),
	}
}

// RegisterAll exposes every command to the engine, in order.
func (b *Binding) RegisterAll(commands []Command) error {
	for _, c := range commands {
		if err := b.engine.Register(c.Name, c.Fn); err != nil {
			return errors.Wrapf(err, "registering %s", c.Name)
		}
		b.logger.Debug("registered host command", "command", c.Name)
	}
	return nil
}

// Load runs the script at p unless it has already been loaded.
func (b *Binding) Load(ctx context.Context, p string) error {
	p = path.Clean(p)
	if _, ok := b.loaded[p]; ok {
		return nil
	}

	_, span := telemetry.Tracer("script").Start(ctx, "script.load")
	defer span.End()
	span.SetAttributes(attribute.String("script.path", p))

	if err := b.engine.LoadFile(p); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return errors.Wrapf(err, "loading script %s", p)
	}
	b.loaded[p] = struct{}{}
	b.logger.Info("loaded script", "path", p)
	return nil
}

// Loaded reports whether the script at p has been run.
func (b *Binding) Loaded(p string) bool {
	_, ok := b.loaded[path.Clean(p)]
	return ok
}

// Execute calls the callable bound to ev on tile. It is a no-op when the tile
// has none. An error here is an authoring bug and should end the game.
func (b *Binding) Execute(ctx context.Context, tile *world.Tile, ev world.Event) error {
	name := tile.Event(ev)
	if name == "" {
		return nil
	}

	_, span := telemetry.Tracer("script").Start(ctx, "script.execute")
	defer span.End()
	span.SetAttributes(
		attribute.String("tile", tile.Name),
		attribute.String("event", ev.String()),
		attribute.String("callable", name),
	)

	if err := b.engine.Call(name); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "call failed")
		return errors.Wrapf(err, "%s event of tile %s", ev, tile.Name).
			WithMeta("callable", name)
	}
	b.logger.Debug("executed tile event", "tile", tile.Name, "event", ev.String(), "callable", name)
	return nil
}

// Close releases the engine.
func (b *Binding) Close() {
	b.engine.Close()
}
