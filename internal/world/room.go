package world

import (
	"slices"
	"strings"

	"github.com/samdwyer/tiled/internal/errors"
)

// Room is a named grid of tile slots with its own tileset.
// Rows may have different lengths; Width is taken from the first row.
type Room struct {
	Name    string
	Layout  [][]*TileSlot
	tileset map[string]*Tile
}

// NewRoom parses layout against tileset. Each character of each
// newline-separated row becomes one slot holding a fresh tile. Rows are kept
// as they are: no padding, and a trailing newline yields an empty last row.
func NewRoom(name, layout string, tileset map[rune]*TileDef) (*Room, error) {
	lines := strings.Split(layout, "\n")
	grid := make([][]*TileSlot, len(lines))

	for y, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		row := make([]*TileSlot, 0, len(line))
		for x, ch := range []rune(line) {
			def, ok := tileset[ch]
			if !ok {
				return nil, errors.InvalidContentf("room %s: character %q at (%d,%d) is not in the tileset", name, ch, x, y)
			}
			row = append(row, NewTileSlot(NewTile(def)))
		}
		grid[y] = row
	}

	tiles := make(map[string]*Tile, len(tileset))
	for _, def := range tileset {
		tiles[def.Name] = NewTile(def)
	}

	return &Room{
		Name:    name,
		Layout:  grid,
		tileset: tiles,
	}, nil
}

// Width returns the length of the first row.
func (r *Room) Width() int {
	if len(r.Layout) == 0 {
		return 0
	}
	return len(r.Layout[0])
}

// Height returns the number of rows.
func (r *Room) Height() int {
	return len(r.Layout)
}

// Contains reports whether (x, y) is inside the room's bounds.
func (r *Room) Contains(x, y int) bool {
	return x >= 0 && x < r.Width() && y >= 0 && y < r.Height()
}

// Slot returns the slot at (x, y), or nil when out of range.
func (r *Room) Slot(x, y int) *TileSlot {
	if !r.Contains(x, y) {
		return nil
	}
	row := r.Layout[y]
	if x >= len(row) {
		// short ragged row
		return nil
	}
	return row[x]
}

// Tile returns the tileset entry with the given name.
func (r *Room) Tile(name string) (*Tile, bool) {
	t, ok := r.tileset[name]
	return t, ok
}

// TileNames returns the names in the tileset, sorted.
func (r *Room) TileNames() []string {
	names := make([]string, 0, len(r.tileset))
	for name := range r.tileset {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SetTile rebinds the slot at (x, y) to the tileset tile called name.
// It returns false and changes nothing if the cell or the name is unknown.
func (r *Room) SetTile(x, y int, name string) bool {
	slot := r.Slot(x, y)
	if slot == nil {
		return false
	}
	tile, ok := r.tileset[name]
	if !ok {
		return false
	}
	slot.tile = tile
	return true
}
