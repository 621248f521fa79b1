package content

import (
	"context"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tiled/internal/errors"
	"github.com/samdwyer/tiled/internal/telemetry"
	"github.com/samdwyer/tiled/internal/world"
)

// ManifestFile is the name of the game manifest at the root of a game.
const ManifestFile = "manifest.json"

// scriptKey is the events entry naming the script file.
const scriptKey = "script"

// Manifest is the game manifest document.
type Manifest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Spawn       Spawn             `json:"spawn"`
	Rooms       map[string]string `json:"rooms"`
}

// Spawn is where the player starts.
type Spawn struct {
	RoomName string `json:"room_name"`
	X        int    `json:"x_loc"`
	Y        int    `json:"y_loc"`
}

// RoomFile is one room document.
type RoomFile struct {
	Tileset map[string]TileFile `json:"tileset"`
	Layout  string              `json:"layout"`
}

// TileFile is a tile declaration inside a room document.
type TileFile struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Passable    bool              `json:"passable"`
	Seethrough  bool              `json:"seethrough"`
	Events      map[string]string `json:"events"`
}

// ScriptLoader runs a script file once. Paths are relative to the game root.
type ScriptLoader interface {
	Load(ctx context.Context, path string) error
}

// Game is a fully loaded game: metadata plus every room.
type Game struct {
	Name        string
	Description string
	Spawn       Spawn
	Rooms       map[string]*world.Room
}

// Load reads the manifest at the root of fsys and every room it lists.
// Scripts referenced by tiles are loaded through scripts as they are met.
// Rooms are loaded in name order.
func Load(ctx context.Context, fsys fs.FS, scripts ScriptLoader, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m, err := Decode[Manifest](fsys, ManifestFile, SchemaManifest)
	if err != nil {
		return nil, err
	}

	g := &Game{
		Name:        m.Name,
		Description: m.Description,
		Spawn:       m.Spawn,
		Rooms:       make(map[string]*world.Room, len(m.Rooms)),
	}

	names := make([]string, 0, len(m.Rooms))
	for name := range m.Rooms {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		roomPath, err := resolve(".", m.Rooms[name])
		if err != nil {
			return nil, errors.Wrapf(err, "room %s", name)
		}
		room, err := LoadRoom(ctx, fsys, name, roomPath, scripts)
		if err != nil {
			return nil, err
		}
		g.Rooms[name] = room
		logger.Info("loaded room", "room", name, "path", roomPath,
			"width", room.Width(), "height", room.Height())
	}

	if _, ok := g.Rooms[m.Spawn.RoomName]; !ok {
		return nil, errors.InvalidContentf("spawn room %s does not exist", m.Spawn.RoomName)
	}
	return g, nil
}

// LoadRoom reads the room document at roomPath and builds the room.
func LoadRoom(ctx context.Context, fsys fs.FS, name, roomPath string, scripts ScriptLoader) (*world.Room, error) {
	ctx, span := telemetry.Tracer("content").Start(ctx, "content.load_room")
	defer span.End()
	span.SetAttributes(
		attribute.String("room.name", name),
		attribute.String("room.path", roomPath),
	)

	rf, err := Decode[RoomFile](fsys, roomPath, SchemaRoom)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrapf(err, "room %s", name)
	}

	chars := make([]string, 0, len(rf.Tileset))
	for ch := range rf.Tileset {
		chars = append(chars, ch)
	}
	slices.Sort(chars)

	dir := path.Dir(roomPath)
	tileset := make(map[rune]*world.TileDef, len(rf.Tileset))
	names := make(map[string]string, len(rf.Tileset))
	for _, ch := range chars {
		tf := rf.Tileset[ch]
		if other, ok := names[tf.Name]; ok {
			err := errors.InvalidContentf("room %s: tiles %q and %q are both named %q", name, other, ch, tf.Name)
			span.RecordError(err)
			return nil, err
		}
		names[tf.Name] = ch

		def, err := tileDef(ctx, dir, ch, tf, scripts)
		if err != nil {
			span.RecordError(err)
			return nil, errors.Wrapf(err, "room %s", name)
		}
		tileset[def.Glyph] = def
	}

	room, err := world.NewRoom(name, rf.Layout, tileset)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("room.width", room.Width()),
		attribute.Int("room.height", room.Height()),
	)
	return room, nil
}

func tileDef(ctx context.Context, dir, ch string, tf TileFile, scripts ScriptLoader) (*world.TileDef, error) {
	glyph := []rune(ch)
	if len(glyph) != 1 {
		return nil, errors.InvalidContentf("tileset key %q must be a single character", ch)
	}

	def := &world.TileDef{
		Name:        tf.Name,
		DisplayName: tf.DisplayName,
		Passable:    tf.Passable,
		Seethrough:  tf.Seethrough,
		Glyph:       glyph[0],
	}
	if tf.Events == nil {
		return def, nil
	}

	rel, ok := tf.Events[scriptKey]
	if !ok {
		return nil, errors.InvalidContentf("events of %s don't contain a script path", tf.Name)
	}
	scriptPath, err := resolve(dir, rel)
	if err != nil {
		return nil, errors.Wrapf(err, "tile %s", tf.Name)
	}
	if err := scripts.Load(ctx, scriptPath); err != nil {
		return nil, errors.Wrapf(err, "tile %s", tf.Name)
	}
	def.Script = scriptPath

	def.Events = make(map[world.Event]string, len(tf.Events)-1)
	for key, callable := range tf.Events {
		if key == scriptKey {
			continue
		}
		ev, ok := world.ParseEvent(key)
		if !ok {
			return nil, errors.InvalidContentf("tile %s: unknown event %q", tf.Name, key)
		}
		def.Events[ev] = callable
	}
	return def, nil
}

// resolve joins rel onto dir and rejects paths leaving the game root.
// Backslash separators from content authored on Windows are accepted.
func resolve(dir, rel string) (string, error) {
	rel = strings.ReplaceAll(rel, `\`, "/")
	p := path.Join(dir, rel)
	if path.IsAbs(rel) || !fs.ValidPath(p) {
		return "", errors.InvalidContentf("path %q escapes the game directory", rel)
	}
	return p, nil
}
