package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tiled/internal/assets"
	"github.com/samdwyer/tiled/internal/fov"
)

const (
	// cellWidth is the number of terminal columns per tile, so tiles look
	// roughly square.
	cellWidth = 2
	// mapTop is the first terminal row of the map; the title sits above it.
	mapTop = 1
)

// PlayerGlyph marks the player at the centre of the view.
const PlayerGlyph = '@'

// Key help per input mode.
var help = map[string]string{
	"movement": "move: numpad or y/w/u a/d b/s/n   e: interact   esc: quit",
	"interact": "direction: interact   space/esc: cancel",
}

// Frame is everything drawn in one frame.
type Frame struct {
	Title   string
	Room    string
	View    fov.Viewport
	Samples []fov.Sample
	// Highlights are offsets from the player of the tiles that can be
	// picked.
	Highlights [][2]int
	Message    string
	Mode       string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	canvas Canvas
	assets *assets.Provider
	styles map[assets.Handle]tcell.Style
}

// NewRenderer creates a renderer drawing to canvas with colours from
// provider.
func NewRenderer(canvas Canvas, provider *assets.Provider) *Renderer {
	return &Renderer{
		canvas: canvas,
		assets: provider,
		styles: make(map[assets.Handle]tcell.Style),
	}
}

// Render draws the visible tiles, the player, any highlights and the status
// lines.
func (r *Renderer) Render(f Frame) {
	r.canvas.Clear()

	title := f.Title
	if f.Room != "" {
		title += " / " + f.Room
	}
	r.RenderMessage(title, 0, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	glyphs := make(map[[2]int]rune, len(f.Samples))
	for _, s := range f.Samples {
		if s.Slot == nil {
			continue
		}
		tile := s.Slot.Tile()
		glyph := tile.Glyph
		if glyph == 0 {
			glyph = '?'
		}
		glyphs[[2]int{s.X, s.Y}] = glyph
		r.put(s.X, s.Y, glyph, r.style(r.assets.TileOrError(f.Room, tile.Name)))
	}

	cx, cy := f.View.Center()
	for _, h := range f.Highlights {
		x, y := cx+h[0], cy+h[1]
		glyph, ok := glyphs[[2]int{x, y}]
		if !ok {
			glyph = ' '
		}
		r.put(x, y, glyph, tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed))
	}
	r.put(cx, cy, PlayerGlyph, r.style(r.assets.Player()).Bold(true))

	row := mapTop + f.View.Height + 2
	r.RenderMessage(f.Message, row, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.RenderMessage(help[f.Mode], row+1, tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.canvas.Show()
}

// RenderMessage writes msg on terminal row y.
func (r *Renderer) RenderMessage(msg string, y int, style tcell.Style) {
	x := 0
	for _, ch := range msg {
		r.canvas.SetContent(x, y, ch, style)
		x++
	}
}

// put draws one tile cell in view coordinates.
func (r *Renderer) put(x, y int, ch rune, style tcell.Style) {
	r.canvas.SetContent(x*cellWidth, y+mapTop, ch, style)
}

// style maps an asset to a foreground colour. Assets that are not colours
// use the error asset, then magenta.
func (r *Renderer) style(h assets.Handle) tcell.Style {
	if st, ok := r.styles[h]; ok {
		return st
	}
	c, err := h.Color()
	if err != nil {
		if c, err = r.assets.Error().Color(); err != nil {
			c = tcell.ColorFuchsia
		}
	}
	st := tcell.StyleDefault.Foreground(c).Background(tcell.ColorBlack)
	r.styles[h] = st
	return st
}
