package content

import (
	"context"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/tiled/data"
	"github.com/samdwyer/tiled/internal/errors"
	"github.com/samdwyer/tiled/internal/world"
)

type recordingLoader struct {
	calls []string
	fail  error
}

func (r *recordingLoader) Load(_ context.Context, p string) error {
	r.calls = append(r.calls, p)
	return r.fail
}

const manifestJSON = `{
  "name": "test",
  "spawn": {"room_name": "hall", "x_loc": 1, "y_loc": 0},
  "rooms": {"hall": "rooms/hall.json"}
}`

const hallJSON = `{
  "tileset": {
    ".": {"name": "floor", "display_name": "Floor", "passable": true, "seethrough": true},
    "#": {"name": "wall", "display_name": "Wall", "passable": false, "seethrough": false},
    "+": {"name": "door", "display_name": "Door", "passable": false, "seethrough": false,
          "events": {"script": "scripts/door.lua", "interact": "open_door", "Step": "bump"}}
  },
  "layout": "..+\n.#."
}`

func gameFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, src := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(src)}
	}
	return fsys
}

func TestLoadGame(t *testing.T) {
	scripts := &recordingLoader{}
	fsys := gameFS(map[string]string{
		"manifest.json":   manifestJSON,
		"rooms/hall.json": hallJSON,
	})

	g, err := Load(context.Background(), fsys, scripts, nil)
	require.NoError(t, err)

	assert.Equal(t, "test", g.Name)
	assert.Equal(t, Spawn{RoomName: "hall", X: 1, Y: 0}, g.Spawn)
	require.Contains(t, g.Rooms, "hall")

	room := g.Rooms["hall"]
	assert.Equal(t, 3, room.Width())
	assert.Equal(t, 2, room.Height())
	assert.Equal(t, "wall", room.Slot(1, 1).Tile().Name)

	door := room.Slot(2, 0).Tile()
	assert.Equal(t, "door", door.Name)
	assert.Equal(t, "rooms/scripts/door.lua", door.Script)
	assert.Equal(t, "open_door", door.Event(world.EventInteract))
	assert.Equal(t, "bump", door.Event(world.EventStep))
	assert.False(t, room.Slot(0, 0).Tile().HasEvent(world.EventStep))

	assert.Equal(t, []string{"rooms/scripts/door.lua"}, scripts.calls)
}

func TestLoadGameErrors(t *testing.T) {
	room := func(tileset string) string {
		return fmt.Sprintf(`{"tileset": {%s}, "layout": ".."}`, tileset)
	}
	const floor = `".": {"name": "floor", "display_name": "Floor", "passable": true, "seethrough": true}`

	tests := []struct {
		name  string
		files map[string]string
		code  errors.Code
	}{
		{
			name:  "missing manifest",
			files: map[string]string{},
			code:  errors.CodeNotFound,
		},
		{
			name:  "malformed manifest",
			files: map[string]string{"manifest.json": `{"name": `},
			code:  errors.CodeInvalidContent,
		},
		{
			name: "manifest without rooms",
			files: map[string]string{"manifest.json": `{"name": "x",
				"spawn": {"room_name": "hall", "x_loc": 0, "y_loc": 0}, "rooms": {}}`},
			code: errors.CodeInvalidContent,
		},
		{
			name: "negative spawn",
			files: map[string]string{"manifest.json": `{"name": "x",
				"spawn": {"room_name": "hall", "x_loc": -1, "y_loc": 0}, "rooms": {"hall": "hall.json"}}`},
			code: errors.CodeInvalidContent,
		},
		{
			name:  "missing room file",
			files: map[string]string{"manifest.json": manifestJSON},
			code:  errors.CodeNotFound,
		},
		{
			name: "room without layout",
			files: map[string]string{
				"manifest.json":   manifestJSON,
				"rooms/hall.json": `{"tileset": {` + floor + `}}`,
			},
			code: errors.CodeInvalidContent,
		},
		{
			name: "multi character tileset key",
			files: map[string]string{
				"manifest.json": manifestJSON,
				"rooms/hall.json": `{"tileset": {"..": {"name": "floor", "display_name": "Floor",
					"passable": true, "seethrough": true}}, "layout": ".."}`,
			},
			code: errors.CodeInvalidContent,
		},
		{
			name: "events without script",
			files: map[string]string{
				"manifest.json": manifestJSON,
				"rooms/hall.json": room(`".": {"name": "floor", "display_name": "Floor",
					"passable": true, "seethrough": true, "events": {"step": "on_step"}}`),
			},
			code: errors.CodeInvalidContent,
		},
		{
			name: "unknown event",
			files: map[string]string{
				"manifest.json": manifestJSON,
				"rooms/hall.json": room(`".": {"name": "floor", "display_name": "Floor",
					"passable": true, "seethrough": true, "events": {"script": "a.lua", "touch": "on_touch"}}`),
			},
			code: errors.CodeInvalidContent,
		},
		{
			name: "unknown layout character",
			files: map[string]string{
				"manifest.json":   manifestJSON,
				"rooms/hall.json": `{"tileset": {` + floor + `}, "layout": ".x"}`,
			},
			code: errors.CodeInvalidContent,
		},
		{
			name: "script path escapes game",
			files: map[string]string{
				"manifest.json": manifestJSON,
				"rooms/hall.json": room(`".": {"name": "floor", "display_name": "Floor",
					"passable": true, "seethrough": true, "events": {"script": "../../evil.lua"}}`),
			},
			code: errors.CodeInvalidContent,
		},
		{
			name: "duplicate tile name",
			files: map[string]string{
				"manifest.json": manifestJSON,
				"rooms/hall.json": room(floor + `, ",": {"name": "floor", "display_name": "Other floor",
					"passable": true, "seethrough": true}`),
			},
			code: errors.CodeInvalidContent,
		},
		{
			name: "spawn room missing",
			files: map[string]string{
				"manifest.json": `{"name": "x",
					"spawn": {"room_name": "cellar", "x_loc": 0, "y_loc": 0}, "rooms": {"hall": "hall.json"}}`,
				"hall.json": room(floor),
			},
			code: errors.CodeInvalidContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), gameFS(tt.files), &recordingLoader{}, nil)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "error: %v", err)
		})
	}
}

func TestLoadGameScriptFailure(t *testing.T) {
	scripts := &recordingLoader{fail: errors.New(errors.CodeScript, "boom")}
	fsys := gameFS(map[string]string{
		"manifest.json":   manifestJSON,
		"rooms/hall.json": hallJSON,
	})

	_, err := Load(context.Background(), fsys, scripts, nil)

	require.Error(t, err)
	assert.Equal(t, errors.CodeScript, errors.GetCode(err))
}

func TestLoadGameSharedScriptAcrossRooms(t *testing.T) {
	const stairs = `{"tileset": {
		"<": {"name": "stairs", "display_name": "Stairs", "passable": true, "seethrough": true,
		      "events": {"script": "scripts/stairs.lua", "step": "climb"}}
	}, "layout": "<"}`
	scripts := &recordingLoader{}
	fsys := gameFS(map[string]string{
		"manifest.json": `{"name": "x", "spawn": {"room_name": "a", "x_loc": 0, "y_loc": 0},
			"rooms": {"a": "rooms/a.json", "b": "rooms/b.json"}}`,
		"rooms/a.json": stairs,
		"rooms/b.json": stairs,
	})

	g, err := Load(context.Background(), fsys, scripts, nil)
	require.NoError(t, err)

	// both rooms ask, the binding decides whether to run it again
	assert.Equal(t, []string{"rooms/scripts/stairs.lua", "rooms/scripts/stairs.lua"}, scripts.calls)
	assert.Len(t, g.Rooms, 2)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		dir, rel string
		want     string
		wantErr  bool
	}{
		{dir: ".", rel: "rooms/hall.json", want: "rooms/hall.json"},
		{dir: "rooms", rel: "scripts/door.lua", want: "rooms/scripts/door.lua"},
		{dir: "rooms", rel: `scripts\door.lua`, want: "rooms/scripts/door.lua"},
		{dir: "rooms", rel: "../shared/a.lua", want: "shared/a.lua"},
		{dir: "rooms", rel: "../../a.lua", wantErr: true},
		{dir: ".", rel: "/etc/passwd", wantErr: true},
	}

	for _, tt := range tests {
		got, err := resolve(tt.dir, tt.rel)
		if tt.wantErr {
			assert.Error(t, err, "resolve(%q, %q)", tt.dir, tt.rel)
			continue
		}
		require.NoError(t, err, "resolve(%q, %q)", tt.dir, tt.rel)
		assert.Equal(t, tt.want, got, "resolve(%q, %q)", tt.dir, tt.rel)
	}
}

func TestLoadDemo(t *testing.T) {
	scripts := &recordingLoader{}

	g, err := Load(context.Background(), data.Game(), scripts, nil)
	require.NoError(t, err)

	assert.Equal(t, "The Old Hall", g.Name)
	assert.Equal(t, "hall", g.Spawn.RoomName)
	require.Len(t, g.Rooms, 2)
	assert.Equal(t, 15, g.Rooms["hall"].Width())
	assert.Equal(t, 9, g.Rooms["hall"].Height())
	assert.Contains(t, scripts.calls, "rooms/scripts/stairs.lua")
	assert.Contains(t, scripts.calls, "rooms/scripts/hall.lua")
	assert.Contains(t, scripts.calls, "rooms/scripts/cellar.lua")
}
