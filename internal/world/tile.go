// Package world provides the tile, tile slot and room model.
package world

import (
	"maps"
	"strings"
)

// Event is a hook on a tile that scripts can bind a callable to.
type Event int

const (
	// EventStep fires when the player enters the tile.
	EventStep Event = iota
	// EventInteract fires when the player interacts with the tile.
	EventInteract
)

// String returns the content-file name of the event.
func (e Event) String() string {
	switch e {
	case EventStep:
		return "step"
	case EventInteract:
		return "interact"
	default:
		return "unknown"
	}
}

// ParseEvent resolves an event name from a content file, ignoring case.
func ParseEvent(name string) (Event, bool) {
	switch strings.ToLower(name) {
	case "step":
		return EventStep, true
	case "interact":
		return EventInteract, true
	default:
		return 0, false
	}
}

// TileDef is the declaration of a tile kind as read from a room file.
type TileDef struct {
	Name        string
	DisplayName string
	Passable    bool
	Seethrough  bool
	// Script is the resolved path of the script the events live in.
	Script string
	Events map[Event]string
	Glyph  rune
}

// Tile is an immutable kind of cell.
type Tile struct {
	Name        string
	DisplayName string
	Passable    bool
	Seethrough  bool
	Script      string
	Glyph       rune
	events      map[Event]string
}

// NewTile materializes a fresh tile from its definition.
func NewTile(def *TileDef) *Tile {
	return &Tile{
		Name:        def.Name,
		DisplayName: def.DisplayName,
		Passable:    def.Passable,
		Seethrough:  def.Seethrough,
		Script:      def.Script,
		Glyph:       def.Glyph,
		events:      maps.Clone(def.Events),
	}
}

// Event returns the callable bound to e, or "" when there is none.
func (t *Tile) Event(e Event) string {
	return t.events[e]
}

// HasEvent reports whether a callable is bound to e.
func (t *Tile) HasEvent(e Event) bool {
	return t.events[e] != ""
}

// TileSlot is one grid cell. It always holds a tile.
type TileSlot struct {
	tile *Tile
}

// NewTileSlot creates a slot bound to tile.
func NewTileSlot(tile *Tile) *TileSlot {
	return &TileSlot{tile: tile}
}

// Tile returns the tile currently occupying the slot.
func (s *TileSlot) Tile() *Tile {
	return s.tile
}
