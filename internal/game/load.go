package game

import (
	"context"
	"io/fs"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/tiled/internal/content"
	"github.com/samdwyer/tiled/internal/errors"
	"github.com/samdwyer/tiled/internal/fov"
	"github.com/samdwyer/tiled/internal/script"
	"github.com/samdwyer/tiled/internal/telemetry"
)

// Options configures Load.
type Options struct {
	Rays         int
	VisibleRange int
	Viewport     fov.Viewport
	Logger       *slog.Logger
}

// Load builds a session from the game in fsys. Host commands are registered
// with engine before any script runs; every script is loaded once. On error
// the engine is closed and no session is returned.
func Load(ctx context.Context, fsys fs.FS, engine script.Engine, opts Options) (s *Session, err error) {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.load")
	defer span.End()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Rays <= 0 {
		opts.Rays = fov.DefaultRays
	}
	if opts.VisibleRange <= 0 {
		opts.VisibleRange = fov.DefaultRange
	}

	binding := script.NewBinding(engine, logger)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "load failed")
			binding.Close()
		}
	}()

	caster := fov.NewCaster(opts.Rays, opts.VisibleRange)
	s = NewSession(binding, caster, opts.Viewport, logger)
	s.closer = binding.Close
	if err := binding.RegisterAll(s.Commands()); err != nil {
		return nil, err
	}

	g, err := content.Load(ctx, fsys, binding, logger)
	if err != nil {
		return nil, err
	}
	for _, room := range g.Rooms {
		s.AddRoom(room)
	}
	s.title = g.Name
	if err := s.Spawn(g.Spawn.RoomName, g.Spawn.X, g.Spawn.Y); err != nil {
		return nil, errors.Wrapf(err, "game %s", g.Name)
	}

	span.SetAttributes(
		attribute.String("game.name", g.Name),
		attribute.Int("game.rooms", len(g.Rooms)),
		attribute.String("spawn.room", g.Spawn.RoomName),
		attribute.Int("spawn.x", g.Spawn.X),
		attribute.Int("spawn.y", g.Spawn.Y),
		attribute.Int("fov.rays", caster.Rays()),
		attribute.Int("fov.range", caster.Range()),
	)
	logger.Info("game loaded", "game", g.Name, "rooms", len(g.Rooms), "spawn", g.Spawn.RoomName)
	return s, nil
}
