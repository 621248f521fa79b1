package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/samdwyer/tiled/internal/errors"
	"github.com/samdwyer/tiled/internal/fov"
	"github.com/samdwyer/tiled/internal/world"
)

type dispatched struct {
	Tile  string
	Event world.Event
}

// recorder is a Dispatcher that remembers the events sent to bound tiles.
type recorder struct {
	calls []dispatched
	err   error
}

func (r *recorder) Execute(_ context.Context, tile *world.Tile, ev world.Event) error {
	if !tile.HasEvent(ev) {
		return nil
	}
	r.calls = append(r.calls, dispatched{Tile: tile.Name, Event: ev})
	return r.err
}

func tileset() map[rune]*world.TileDef {
	return map[rune]*world.TileDef{
		'.': {Name: "floor", DisplayName: "Floor", Passable: true, Seethrough: true, Glyph: '.'},
		'#': {Name: "wall", DisplayName: "Wall", Glyph: '#'},
		'+': {
			Name: "door", DisplayName: "Door", Glyph: '+',
			Script: "door.lua",
			Events: map[world.Event]string{world.EventInteract: "open_door"},
		},
		'/': {Name: "open_door", DisplayName: "Open door", Passable: true, Seethrough: true, Glyph: '/'},
		'_': {
			Name: "plate", DisplayName: "Pressure plate", Passable: true, Seethrough: true, Glyph: '_',
			Script: "plate.lua",
			Events: map[world.Event]string{world.EventStep: "press"},
		},
	}
}

func newRoom(t *testing.T, name, layout string) *world.Room {
	t.Helper()
	r, err := world.NewRoom(name, layout, tileset())
	require.NoError(t, err)
	return r
}

// newSession builds a session standing at (x, y) in a room called "main".
func newSession(t *testing.T, layout string, x, y int) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := NewSession(rec, nil, fov.Viewport{Width: 21, Height: 13}, nil)
	s.AddRoom(newRoom(t, "main", layout))
	require.NoError(t, s.Spawn("main", x, y))
	return s, rec
}

type SessionTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *SessionTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) TestTwoByTwoScenario() {
	sess, _ := newSession(s.T(), "..\n.#", 0, 0)

	s.True(sess.MovePlayer(1, 0))
	x, y := sess.Player()
	s.Equal([2]int{1, 0}, [2]int{x, y})

	s.False(sess.MovePlayer(0, 1), "wall below")
	x, y = sess.Player()
	s.Equal([2]int{1, 0}, [2]int{x, y})

	s.False(sess.MovePlayer(1, 0), "right edge")
	s.True(sess.MovePlayer(-1, 1))
	x, y = sess.Player()
	s.Equal([2]int{0, 1}, [2]int{x, y})
	s.False(sess.MovePlayer(1, 0), "wall to the right")
	s.False(sess.MovePlayer(-1, 0), "left edge")

	s.True(sess.MovePlayer(1, -1))
	s.True(sess.SetTile(1, 1, "floor"))
	s.True(sess.MovePlayer(0, 1), "wall replaced by floor")
	x, y = sess.Player()
	s.Equal([2]int{1, 1}, [2]int{x, y})
}

func (s *SessionTestSuite) TestMovePlayerEveryDirection() {
	rooms := map[string]struct {
		layout string
		want   bool
	}{
		"open":   {layout: "...\n...\n...", want: true},
		"walled": {layout: "###\n#.#\n###", want: false},
	}

	for name, tc := range rooms {
		for _, d := range [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}} {
			sess, _ := newSession(s.T(), tc.layout, 1, 1)
			got := sess.MovePlayer(d[0], d[1])
			s.Equal(tc.want, got, "%s room, move %v", name, d)

			x, y := sess.Player()
			if tc.want {
				s.Equal([2]int{1 + d[0], 1 + d[1]}, [2]int{x, y})
			} else {
				s.Equal([2]int{1, 1}, [2]int{x, y})
			}
		}
	}
}

func (s *SessionTestSuite) TestMovePlayerOutOfBounds() {
	sess, _ := newSession(s.T(), ".", 0, 0)
	for _, d := range [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}} {
		s.False(sess.MovePlayer(d[0], d[1]), "move %v", d)
	}
	x, y := sess.Player()
	s.Equal([2]int{0, 0}, [2]int{x, y})
}

func (s *SessionTestSuite) TestMovePlayerRaggedRow() {
	sess, _ := newSession(s.T(), "..\n.", 0, 1)
	s.False(sess.MovePlayer(1, 0), "missing cell of a short row")
}

func (s *SessionTestSuite) TestMovePlayerWithoutRoom() {
	sess := NewSession(&recorder{}, nil, fov.Viewport{}, nil)
	s.False(sess.MovePlayer(1, 0))
	s.Nil(sess.CurrentRoom())
	s.Nil(sess.VisibleTiles())
	s.Nil(sess.AdjacentTiles(nil))
	s.False(sess.SetTile(0, 0, "floor"))
	s.NoError(sess.Update(s.ctx, true))
}

func (s *SessionTestSuite) TestAdjacentTilesOrderAndBounds() {
	sess, _ := newSession(s.T(), "...\n...\n...", 1, 1)

	all := sess.AdjacentTiles(nil)
	s.Require().Len(all, 8)
	var offsets [][2]int
	for _, a := range all {
		offsets = append(offsets, [2]int{a.DX, a.DY})
	}
	s.Equal([][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}, offsets)

	sess, _ = newSession(s.T(), "...\n...\n...", 0, 0)
	corner := sess.AdjacentTiles(nil)
	s.Len(corner, 3, "off-grid neighbours are skipped")
}

func (s *SessionTestSuite) TestAdjacentTilesPredicate() {
	sess, _ := newSession(s.T(), "#+.\n...\n..+", 1, 1)

	doors := sess.AdjacentTiles(HasEvent(world.EventInteract))

	s.Require().Len(doors, 2)
	s.Equal(0, doors[0].DX)
	s.Equal(-1, doors[0].DY)
	s.Equal(1, doors[1].DX)
	s.Equal(1, doors[1].DY)
	s.Equal("door", doors[1].Slot.Tile().Name)
}

func (s *SessionTestSuite) TestUpdateFiresStepOnlyAfterMove() {
	sess, rec := newSession(s.T(), "._", 0, 0)

	s.NoError(sess.Update(s.ctx, false))
	s.Empty(rec.calls)

	s.True(sess.MovePlayer(1, 0))
	s.NoError(sess.Update(s.ctx, true))
	s.Equal([]dispatched{{Tile: "plate", Event: world.EventStep}}, rec.calls)
}

func (s *SessionTestSuite) TestUpdateReturnsScriptError() {
	sess, rec := newSession(s.T(), "_", 0, 0)
	rec.err = errors.UndefinedCallablef("press function was not declared")

	err := sess.Update(s.ctx, true)

	s.True(errors.IsUndefinedCallable(err))
}

func (s *SessionTestSuite) TestInteractUsesCurrentTile() {
	sess, rec := newSession(s.T(), ".+", 0, 0)
	doors := sess.AdjacentTiles(HasEvent(world.EventInteract))
	s.Require().Len(doors, 1)

	s.Require().NoError(sess.Interact(s.ctx, doors[0]))
	s.Equal([]dispatched{{Tile: "door", Event: world.EventInteract}}, rec.calls)

	s.True(sess.SetTile(1, 0, "open_door"))
	s.Require().NoError(sess.Interact(s.ctx, doors[0]))
	s.Len(rec.calls, 1, "the open door has no interact event")
}

func (s *SessionTestSuite) TestSetTileAndTileName() {
	sess, _ := newSession(s.T(), ".+", 0, 0)

	s.True(sess.SetTile(1, 0, "open_door"))
	name, ok := sess.TileName(1, 0)
	s.True(ok)
	s.Equal("open_door", name)

	s.False(sess.SetTile(2, 0, "floor"))
	s.False(sess.SetTile(0, 0, "lava"))
	name, _ = sess.TileName(0, 0)
	s.Equal("floor", name)

	_, ok = sess.TileName(-1, 0)
	s.False(ok)
}

func (s *SessionTestSuite) TestEnterRoom() {
	sess, _ := newSession(s.T(), "..", 0, 0)
	sess.AddRoom(newRoom(s.T(), "cellar", ".#\n.."))

	s.False(sess.EnterRoom("attic", 0, 0), "unknown room")
	s.False(sess.EnterRoom("cellar", 1, 0), "impassable target")
	s.False(sess.EnterRoom("cellar", 5, 5), "outside the room")
	s.Equal("main", sess.CurrentRoom().Name)

	s.True(sess.EnterRoom("cellar", 1, 1))
	s.Equal("cellar", sess.CurrentRoom().Name)
	x, y := sess.Player()
	s.Equal([2]int{1, 1}, [2]int{x, y})
	s.Equal([]string{"cellar", "main"}, sess.RoomNames())
}

func (s *SessionTestSuite) TestSpawnErrors() {
	sess := NewSession(&recorder{}, nil, fov.Viewport{}, nil)
	sess.AddRoom(newRoom(s.T(), "main", ".."))

	s.True(errors.IsInvalidContent(sess.Spawn("cellar", 0, 0)))
	s.True(errors.IsInvalidContent(sess.Spawn("main", 2, 0)))
	s.NoError(sess.Spawn("main", 1, 0))
}

func (s *SessionTestSuite) TestVisibleTilesFollowViewport() {
	sess, _ := newSession(s.T(), "...\n...\n...", 1, 1)

	samples := sess.VisibleTiles()
	s.NotEmpty(samples)
	for _, smp := range samples {
		s.LessOrEqual(smp.X, 21)
		s.LessOrEqual(smp.Y, 13)
	}

	sess.SetViewport(5, 5)
	s.Equal(fov.Viewport{Width: 5, Height: 5}, sess.Viewport())
	for _, smp := range sess.VisibleTiles() {
		s.LessOrEqual(smp.X, 5)
		s.LessOrEqual(smp.Y, 5)
	}
}

func TestSessionCloseOnce(t *testing.T) {
	closed := 0
	s := NewSession(&recorder{}, nil, fov.Viewport{}, nil)
	s.closer = func() { closed++ }

	s.Close()
	s.Close()

	assert.Equal(t, 1, closed)
}
