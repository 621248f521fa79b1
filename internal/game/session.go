package game

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/samdwyer/tiled/internal/errors"
	"github.com/samdwyer/tiled/internal/fov"
	"github.com/samdwyer/tiled/internal/script"
	"github.com/samdwyer/tiled/internal/world"
)

// Dispatcher runs the script bound to a tile event.
type Dispatcher interface {
	Execute(ctx context.Context, tile *world.Tile, ev world.Event) error
}

// Adjacent is a neighbouring slot and its offset from the player.
type Adjacent struct {
	Slot   *world.TileSlot
	DX, DY int
}

// Session is the live game: every room, the current one, and the player in
// it.
type Session struct {
	rooms  map[string]*world.Room
	room   *world.Room
	x, y   int
	events Dispatcher
	caster *fov.Caster
	view   fov.Viewport

	title   string
	message string
	logger  *slog.Logger
	closer  func()
}

// NewSession creates a session without rooms. Rooms are added with AddRoom
// and the player placed with Spawn.
func NewSession(events Dispatcher, caster *fov.Caster, view fov.Viewport, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if caster == nil {
		caster = fov.NewCaster(fov.DefaultRays, fov.DefaultRange)
	}
	return &Session{
		rooms:  make(map[string]*world.Room),
		events: events,
		caster: caster,
		view:   view,
		logger: logger.With("component", "session"),
	}
}

// AddRoom registers a room under its name, replacing any previous one.
func (s *Session) AddRoom(r *world.Room) {
	s.rooms[r.Name] = r
}

// Room returns the room called name.
func (s *Session) Room(name string) (*world.Room, bool) {
	r, ok := s.rooms[name]
	return r, ok
}

// RoomNames returns every room name, sorted.
func (s *Session) RoomNames() []string {
	names := make([]string, 0, len(s.rooms))
	for name := range s.rooms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Spawn makes name the current room and puts the player at (x, y). The cell
// must exist; passability is not checked.
func (s *Session) Spawn(name string, x, y int) error {
	r, ok := s.rooms[name]
	if !ok {
		return errors.InvalidContentf("spawn room %s does not exist", name)
	}
	if r.Slot(x, y) == nil {
		return errors.InvalidContentf("spawn (%d, %d) is outside room %s", x, y, name)
	}
	s.room = r
	s.x, s.y = x, y
	return nil
}

// CurrentRoom returns the room the player is in, or nil before Spawn.
func (s *Session) CurrentRoom() *world.Room {
	return s.room
}

// Player returns the player position in the current room.
func (s *Session) Player() (int, int) {
	return s.x, s.y
}

// MovePlayer moves the player by (dx, dy) when the target cell exists and is
// passable. It reports whether the player moved.
func (s *Session) MovePlayer(dx, dy int) bool {
	if s.room == nil {
		return false
	}
	nx, ny := s.x+dx, s.y+dy
	slot := s.room.Slot(nx, ny)
	if slot == nil || !slot.Tile().Passable {
		return false
	}
	s.x, s.y = nx, ny
	return true
}

// AdjacentTiles returns the neighbours of the player matching pred, row by
// row from the top left. Cells outside the room are skipped. A nil pred
// matches every neighbour.
func (s *Session) AdjacentTiles(pred func(*world.TileSlot) bool) []Adjacent {
	if s.room == nil {
		return nil
	}
	var out []Adjacent
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			slot := s.room.Slot(s.x+dx, s.y+dy)
			if slot == nil {
				continue
			}
			if pred == nil || pred(slot) {
				out = append(out, Adjacent{Slot: slot, DX: dx, DY: dy})
			}
		}
	}
	return out
}

// HasEvent builds an AdjacentTiles predicate for tiles handling ev.
func HasEvent(ev world.Event) func(*world.TileSlot) bool {
	return func(slot *world.TileSlot) bool {
		return slot.Tile().HasEvent(ev)
	}
}

// Update runs the per-frame session logic. After a successful move the tile
// under the player receives its Step event.
func (s *Session) Update(ctx context.Context, moved bool) error {
	if !moved || s.room == nil {
		return nil
	}
	slot := s.room.Slot(s.x, s.y)
	if slot == nil {
		return nil
	}
	return s.events.Execute(ctx, slot.Tile(), world.EventStep)
}

// Interact sends the Interact event to the tile currently in adj's slot.
func (s *Session) Interact(ctx context.Context, adj Adjacent) error {
	return s.events.Execute(ctx, adj.Slot.Tile(), world.EventInteract)
}

// SetTile rebinds a cell of the current room to a tile of its tileset.
func (s *Session) SetTile(x, y int, name string) bool {
	if s.room == nil {
		return false
	}
	return s.room.SetTile(x, y, name)
}

// TileName returns the name of the tile at (x, y) in the current room.
func (s *Session) TileName(x, y int) (string, bool) {
	if s.room == nil {
		return "", false
	}
	slot := s.room.Slot(x, y)
	if slot == nil {
		return "", false
	}
	return slot.Tile().Name, true
}

// EnterRoom moves the player to (x, y) in the room called name. The target
// cell must exist and be passable.
func (s *Session) EnterRoom(name string, x, y int) bool {
	r, ok := s.rooms[name]
	if !ok {
		return false
	}
	slot := r.Slot(x, y)
	if slot == nil || !slot.Tile().Passable {
		return false
	}
	s.room = r
	s.x, s.y = x, y
	s.logger.Info("entered room", "room", name, "x", x, "y", y)
	return true
}

// SetViewport sets the window size in tiles.
func (s *Session) SetViewport(width, height int) {
	s.view = fov.Viewport{Width: width, Height: height}
}

// Viewport returns the window size in tiles.
func (s *Session) Viewport() fov.Viewport {
	return s.view
}

// VisibleTiles casts the visibility rays from the player.
func (s *Session) VisibleTiles() []fov.Sample {
	if s.room == nil {
		return nil
	}
	return s.caster.Cast(s.room, s.x, s.y, s.view)
}

// Title is the name of the loaded game.
func (s *Session) Title() string {
	return s.title
}

// Message is the status line.
func (s *Session) Message() string {
	return s.message
}

// SetMessage replaces the status line.
func (s *Session) SetMessage(msg string) {
	s.message = msg
}

// Close releases the script engine behind the session, if it owns one.
func (s *Session) Close() {
	if s.closer != nil {
		s.closer()
		s.closer = nil
	}
}

// Commands returns the host commands scripts may call.
func (s *Session) Commands() []script.Command {
	return []script.Command{
		{Name: "set_tile", Fn: func(args script.Args) []any {
			return []any{s.SetTile(args.Int(1), args.Int(2), args.String(3))}
		}},
		{Name: "get_tile", Fn: func(args script.Args) []any {
			name, ok := s.TileName(args.Int(1), args.Int(2))
			if !ok {
				return []any{nil}
			}
			return []any{name}
		}},
		{Name: "player_position", Fn: func(script.Args) []any {
			return []any{s.x, s.y}
		}},
		{Name: "enter_room", Fn: func(args script.Args) []any {
			return []any{s.EnterRoom(args.String(1), args.Int(2), args.Int(3))}
		}},
		{Name: "log", Fn: func(args script.Args) []any {
			parts := make([]string, 0, args.Len())
			for i := 1; i <= args.Len(); i++ {
				parts = append(parts, args.Text(i))
			}
			msg := strings.Join(parts, " ")
			s.logger.Info("script", "message", msg)
			s.message = msg
			return nil
		}},
	}
}
