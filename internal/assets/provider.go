// Package assets resolves the presentation of tiles. An asset manifest maps
// each room's tile names to a reference, which the terminal frontend reads as
// a colour and other frontends may read as an image path.
package assets

import (
	"io/fs"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tiled/internal/content"
	"github.com/samdwyer/tiled/internal/errors"
)

// ManifestFile is the asset manifest at the root of an asset directory.
const ManifestFile = "manifest.json"

// Manifest is the asset manifest document.
type Manifest struct {
	Error  string                       `json:"error"`
	Tiles  map[string]map[string]string `json:"tiles"`
	Player struct {
		Base string `json:"base"`
	} `json:"player"`
}

// Handle is a resolved asset reference.
type Handle string

// Color interprets the handle as a terminal colour.
func (h Handle) Color() (tcell.Color, error) {
	return ParseHexColor(string(h))
}

// Provider answers asset lookups from one manifest.
type Provider struct {
	manifest Manifest
}

// Load reads and validates the asset manifest at the root of fsys.
func Load(fsys fs.FS) (*Provider, error) {
	m, err := content.Decode[Manifest](fsys, ManifestFile, content.SchemaAssets)
	if err != nil {
		return nil, errors.Wrap(err, "asset manifest")
	}
	return NewProvider(m), nil
}

// NewProvider wraps an already decoded manifest.
func NewProvider(m Manifest) *Provider {
	if m.Tiles == nil {
		m.Tiles = make(map[string]map[string]string)
	}
	return &Provider{manifest: m}
}

// GetTile returns the asset of a tile in a room.
func (p *Provider) GetTile(room, tile string) (Handle, error) {
	tiles, ok := p.manifest.Tiles[room]
	if !ok {
		return "", errors.NotFoundf("no assets for room %s", room).WithMeta("room", room)
	}
	ref, ok := tiles[tile]
	if !ok {
		return "", errors.NotFoundf("no asset for tile %s in room %s", tile, room).
			WithMeta("room", room).
			WithMeta("tile", tile)
	}
	return Handle(ref), nil
}

// TileOrError is GetTile falling back to the error asset.
func (p *Provider) TileOrError(room, tile string) Handle {
	h, err := p.GetTile(room, tile)
	if err != nil {
		return p.Error()
	}
	return h
}

// Player returns the player's base asset.
func (p *Provider) Player() Handle {
	return Handle(p.manifest.Player.Base)
}

// Error returns the asset drawn for anything missing.
func (p *Provider) Error() Handle {
	return Handle(p.manifest.Error)
}

// Check reports every tile of every room that has no asset. Keys are room
// names; values are the tile names missing.
func (p *Provider) Check(rooms map[string][]string) map[string][]string {
	missing := make(map[string][]string)
	for room, names := range rooms {
		for _, name := range names {
			if _, err := p.GetTile(room, name); err != nil {
				missing[room] = append(missing[room], name)
			}
		}
	}
	return missing
}

// NonColors reports every tile of every room whose asset is not a terminal
// colour. The terminal draws those with the error asset.
func (p *Provider) NonColors(rooms map[string][]string) map[string][]string {
	found := make(map[string][]string)
	for room, names := range rooms {
		for _, name := range names {
			h, err := p.GetTile(room, name)
			if err == nil && !IsColor(string(h)) {
				found[room] = append(found[room], name)
			}
		}
	}
	return found
}
