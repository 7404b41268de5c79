// Package leveldata parses Tiled TMX maps into levels: tilesets, the tiles to
// draw, static collision rectangles, slopes and the player spawn point.
// It has no dependencies on ebitengine; textures are referenced by path.
package leveldata

import (
	"errors"
	"fmt"
	"sort"

	"github.com/automoto/cavestory/shared/gamemath"
)

var (
	ErrMissingAttr         = errors.New("missing attribute")
	ErrMalformedAttr       = errors.New("malformed attribute")
	ErrUnresolvedTileset   = errors.New("unresolved tileset")
	ErrUnsupportedEncoding = errors.New("unsupported layer encoding")
	ErrNoTileset           = errors.New("no tileset for gid")
	ErrGIDOutOfRange       = errors.New("gid out of range")
	ErrOutsideMap          = errors.New("tile outside map bounds")
)

// MapError is a fatal failure to load a map: the document is missing,
// unreadable, or lacks the grid attributes every placement depends on.
type MapError struct {
	Map string
	Err error
}

func (e *MapError) Error() string {
	return fmt.Sprintf("load map %q: %v", e.Map, e.Err)
}

func (e *MapError) Unwrap() error { return e.Err }

// Diagnostic records one map element that was skipped during loading.
type Diagnostic struct {
	Map   string
	Group string // "tileset", a layer name or an object group name
	Index int    // element index within the group
	Err   error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s[%d]: %v", d.Map, d.Group, d.Index, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// Tileset is an image sliced into equally sized tiles.
type Tileset struct {
	Name       string
	ImagePath  string // relative to the map file system root
	FirstGID   uint32
	TileWidth  int
	TileHeight int
	Columns    int // tiles per row
	TileCount  int // 0 when unknown
	Spacing    int
	Margin     int
}

// Source returns the pixel rectangle of a tile inside the tileset image.
func (t *Tileset) Source(gid uint32) gamemath.Rect {
	local := int(gid - t.FirstGID)
	col := local % t.Columns
	row := local / t.Columns
	return gamemath.NewRect(
		float64(t.Margin+col*(t.TileWidth+t.Spacing)),
		float64(t.Margin+row*(t.TileHeight+t.Spacing)),
		float64(t.TileWidth),
		float64(t.TileHeight),
	)
}

// Tile is a single placed map cell. Tiles are created by the loader and
// never modified.
type Tile struct {
	Tileset *Tileset
	GID     uint32
	Column  int
	Row     int
	Source  gamemath.Rect // tileset pixels
	Dest    gamemath.Rect // world pixels, already scaled
}

// Level is everything loaded from one map document.
type Level struct {
	Name        string
	Width       int // in tiles
	Height      int // in tiles
	TileWidth   int
	TileHeight  int
	Scale       float64
	Tilesets    []*Tileset // ascending by FirstGID
	Tiles       []Tile
	Collisions  []gamemath.Rect
	Slopes      []gamemath.Slope
	Spawn       gamemath.Vec2
	Diagnostics []Diagnostic
}

// PixelSize returns the scaled size of the map in world pixels.
func (l *Level) PixelSize() (w, h float64) {
	return float64(l.Width*l.TileWidth) * l.Scale, float64(l.Height*l.TileHeight) * l.Scale
}

// TilesetFor returns the tileset with the greatest FirstGID not exceeding
// gid. Tilesets must be sorted ascending by FirstGID.
func (l *Level) TilesetFor(gid uint32) (*Tileset, bool) {
	i := sort.Search(len(l.Tilesets), func(i int) bool {
		return l.Tilesets[i].FirstGID > gid
	})
	if i == 0 {
		return nil, false
	}
	return l.Tilesets[i-1], true
}

// DiagnosticsErr joins all diagnostics into one error, or nil if the map
// loaded cleanly.
func (l *Level) DiagnosticsErr() error {
	errs := make([]error, len(l.Diagnostics))
	for i, d := range l.Diagnostics {
		errs[i] = d
	}
	return errors.Join(errs...)
}
