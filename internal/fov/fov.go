// Package fov computes the cells visible from the player with a fixed-ray
// raycast. It is not shadow casting: each ray samples integer offsets along a
// straight line and stops at the first opaque tile.
package fov

import (
	"math"

	"github.com/samdwyer/tiled/internal/world"
)

const (
	// DefaultRays is the number of rays cast per scan.
	DefaultRays = 200
	// DefaultRange is the visible range in tiles.
	DefaultRange = 10
)

// Viewport is the window size in tiles. The player is drawn at its center.
type Viewport struct {
	Width, Height int
}

// Center returns the viewport cell the player occupies.
func (v Viewport) Center() (int, int) {
	return v.Width / 2, v.Height / 2
}

// Sample is one visibility hit in screen coordinates. Slot is nil when the
// sampled cell lies outside the room.
type Sample struct {
	Slot *world.TileSlot
	X, Y int
}

// Caster holds the precomputed ray angles.
type Caster struct {
	angles       []float64
	visibleRange int
}

// NewCaster creates a caster with rays evenly spaced over [0, 2π).
func NewCaster(rays, visibleRange int) *Caster {
	angles := make([]float64, rays)
	for i := range angles {
		angles[i] = 2 * math.Pi * float64(i) / float64(rays)
	}
	return &Caster{angles: angles, visibleRange: visibleRange}
}

// Rays returns the number of rays.
func (c *Caster) Rays() int {
	return len(c.angles)
}

// Range returns the visible range.
func (c *Caster) Range() int {
	return c.visibleRange
}

// Cast scans room from the player at (px, py). Samples come out in ray order,
// then by increasing radius. The same cell may appear on several rays.
func (c *Caster) Cast(room *world.Room, px, py int, view Viewport) []Sample {
	cx, cy := view.Center()
	result := make([]Sample, 0, len(c.angles)*c.visibleRange)

	for _, a := range c.angles {
		cos, sin := math.Cos(a), math.Sin(a)
		for n := 0; n < c.visibleRange; n++ {
			dx := int(cos * float64(n))
			dy := int(sin * float64(n))
			sx, sy := cx+dx, cy+dy
			if sx > view.Width || sy > view.Height {
				break
			}
			if sx < 0 || sy < 0 {
				continue
			}

			slot := room.Slot(px+dx, py+dy)
			result = append(result, Sample{Slot: slot, X: sx, Y: sy})
			if slot != nil && !slot.Tile().Seethrough {
				break
			}
		}
	}
	return result
}
