package leveldata

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/automoto/cavestory/shared/gamemath"
	"github.com/lafriks/go-tiled"
	"github.com/rs/zerolog/log"
)

// Object group names recognised in map documents.
const (
	GroupCollisions  = "collisions"
	GroupSlopes      = "slopes"
	GroupSpawnPoints = "spawn points"

	playerSpawnName = "player"
	tilesetGroup    = "tileset"
)

// Tiled stores flip and rotation flags in the top bits of a gid.
const gidFlagMask uint32 = 0xE0000000

// Options controls how map coordinates are turned into world coordinates.
type Options struct {
	// Dir is the directory of map documents inside the file system. Image
	// and tileset paths come out relative to the file system root.
	Dir string
	// Scale multiplies every map pixel coordinate.
	Scale float64
	// DefaultSpawn is used when the map names no player spawn point.
	DefaultSpawn gamemath.Vec2
	// ImageSize reports the pixel size of a tileset image. It is only
	// consulted when the tileset document gives neither columns nor an
	// image width.
	ImageSize func(fsys fs.FS, path string) (w, h int, err error)
}

// Load reads <Dir>/<name>.tmx from fsys and builds a Level. Elements that
// cannot be parsed are skipped and recorded in Level.Diagnostics. A missing
// or unreadable document, or one without a usable grid, returns a *MapError.
func Load(fsys fs.FS, name string, opts Options) (*Level, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	mapPath := path.Join(opts.Dir, name+".tmx")
	data, err := fs.ReadFile(fsys, mapPath)
	if err != nil {
		return nil, &MapError{Map: name, Err: err}
	}

	var doc tmxMap
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &MapError{Map: name, Err: err}
	}

	l := &loader{
		fsys:  fsys,
		dir:   path.Dir(mapPath),
		opts:  opts,
		level: &Level{Name: name, Scale: opts.Scale, Spawn: opts.DefaultSpawn},
	}

	if err := l.readGrid(&doc); err != nil {
		return nil, &MapError{Map: name, Err: err}
	}
	l.readTilesets(doc.Tilesets)
	for _, layer := range doc.Layers {
		l.readLayer(layer)
	}
	for _, og := range doc.ObjectGroups {
		l.readObjectGroup(og)
	}

	lvl := l.level
	log.Info().
		Str("map", name).
		Int("tiles", len(lvl.Tiles)).
		Int("collisions", len(lvl.Collisions)).
		Int("slopes", len(lvl.Slopes)).
		Int("diagnostics", len(lvl.Diagnostics)).
		Msgf("loaded level %dx%d", lvl.Width, lvl.Height)

	return lvl, nil
}

// DiscoverMaps returns the names of every .tmx document in dir, sorted.
func DiscoverMaps(fsys fs.FS, dir string) ([]string, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.tmx"))
	if err != nil {
		return nil, fmt.Errorf("glob maps: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".tmx"))
	}
	sort.Strings(names)
	return names, nil
}

type loader struct {
	fsys  fs.FS
	dir   string
	opts  Options
	level *Level
}

func (l *loader) diag(group string, index int, err error) {
	d := Diagnostic{Map: l.level.Name, Group: group, Index: index, Err: err}
	l.level.Diagnostics = append(l.level.Diagnostics, d)
	log.Warn().
		Str("map", d.Map).
		Str("group", group).
		Int("index", index).
		Err(err).
		Msg("skipped map element")
}

func (l *loader) readGrid(doc *tmxMap) error {
	var err error
	lvl := l.level
	if lvl.Width, err = positiveInt("width", doc.Width); err != nil {
		return err
	}
	if lvl.Height, err = positiveInt("height", doc.Height); err != nil {
		return err
	}
	if lvl.TileWidth, err = positiveInt("tilewidth", doc.TileWidth); err != nil {
		return err
	}
	if lvl.TileHeight, err = positiveInt("tileheight", doc.TileHeight); err != nil {
		return err
	}
	return nil
}

func (l *loader) readTilesets(raw []tmxTileset) {
	type indexed struct {
		index   int // position in the document
		tileset *Tileset
	}

	var sets []indexed
	for i, ts := range raw {
		tileset, err := l.readTileset(ts)
		if err != nil {
			l.diag(tilesetGroup, i, err)
			continue
		}
		sets = append(sets, indexed{index: i, tileset: tileset})
	}

	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].tileset.FirstGID < sets[j].tileset.FirstGID
	})

	// Two tilesets claiming the same first gid cannot both be addressed.
	kept := make([]*Tileset, 0, len(sets))
	for _, s := range sets {
		ts := s.tileset
		if len(kept) > 0 && ts.FirstGID == kept[len(kept)-1].FirstGID {
			l.diag(tilesetGroup, s.index, fmt.Errorf("%w: duplicate firstgid %d", ErrUnresolvedTileset, ts.FirstGID))
			continue
		}
		kept = append(kept, ts)
	}
	l.level.Tilesets = kept
}

func (l *loader) readTileset(raw tmxTileset) (*Tileset, error) {
	if raw.FirstGID == "" {
		return nil, fmt.Errorf("%w: firstgid", ErrMissingAttr)
	}
	firstGID, err := strconv.ParseUint(strings.TrimSpace(raw.FirstGID), 10, 32)
	if err != nil || firstGID == 0 {
		return nil, fmt.Errorf("%w: firstgid=%q", ErrMalformedAttr, raw.FirstGID)
	}

	var ts *Tileset
	if raw.Source != "" {
		ts, err = l.readExternalTileset(raw.Source)
	} else {
		ts, err = l.readInlineTileset(raw)
	}
	if err != nil {
		return nil, err
	}
	ts.FirstGID = uint32(firstGID)

	if ts.TileWidth <= 0 {
		ts.TileWidth = l.level.TileWidth
	}
	if ts.TileHeight <= 0 {
		ts.TileHeight = l.level.TileHeight
	}
	if ts.Columns <= 0 {
		if ts.Columns, err = l.probeColumns(ts); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

// readExternalTileset decodes a .tsx document, resolved relative to the map.
func (l *loader) readExternalTileset(source string) (*Tileset, error) {
	tsxPath := path.Join(l.dir, source)
	data, err := fs.ReadFile(l.fsys, tsxPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnresolvedTileset, source, err)
	}

	var doc tiled.Tileset
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnresolvedTileset, source, err)
	}
	if doc.Image == nil || doc.Image.Source == "" {
		return nil, fmt.Errorf("%w: %s: image source", ErrMissingAttr, source)
	}

	ts := &Tileset{
		Name:       doc.Name,
		ImagePath:  path.Join(path.Dir(tsxPath), doc.Image.Source),
		TileWidth:  doc.TileWidth,
		TileHeight: doc.TileHeight,
		Columns:    doc.Columns,
		TileCount:  doc.TileCount,
		Spacing:    doc.Spacing,
		Margin:     doc.Margin,
	}
	if ts.Spacing < 0 || ts.Margin < 0 {
		return nil, fmt.Errorf("%w: %s: spacing=%d margin=%d", ErrMalformedAttr, source, ts.Spacing, ts.Margin)
	}
	if ts.Columns <= 0 && doc.Image.Width > 0 && ts.TileWidth > 0 {
		ts.Columns = columnsFor(doc.Image.Width, ts.TileWidth, ts.Spacing, ts.Margin)
	}
	return ts, nil
}

func (l *loader) readInlineTileset(raw tmxTileset) (*Tileset, error) {
	if raw.Image == nil || raw.Image.Source == "" {
		return nil, fmt.Errorf("%w: image source", ErrMissingAttr)
	}

	ts := &Tileset{
		Name:      raw.Name,
		ImagePath: path.Join(l.dir, raw.Image.Source),
	}

	var err error
	fields := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"tilewidth", raw.TileWidth, &ts.TileWidth},
		{"tileheight", raw.TileHeight, &ts.TileHeight},
		{"columns", raw.Columns, &ts.Columns},
		{"tilecount", raw.TileCount, &ts.TileCount},
		{"spacing", raw.Spacing, &ts.Spacing},
		{"margin", raw.Margin, &ts.Margin},
	}
	for _, f := range fields {
		if *f.dst, err = optionalInt(f.name, f.raw); err != nil {
			return nil, err
		}
		if *f.dst < 0 {
			return nil, fmt.Errorf("%w: %s=%d", ErrMalformedAttr, f.name, *f.dst)
		}
	}

	if ts.Columns <= 0 && raw.Image.Width != "" {
		imgW, err := optionalInt("image width", raw.Image.Width)
		if err != nil {
			return nil, err
		}
		tw := ts.TileWidth
		if tw <= 0 {
			tw = l.level.TileWidth
		}
		ts.Columns = columnsFor(imgW, tw, ts.Spacing, ts.Margin)
	}
	return ts, nil
}

// probeColumns asks the image collaborator for the tileset image width when
// the document does not say how many tiles fit in a row.
func (l *loader) probeColumns(ts *Tileset) (int, error) {
	if l.opts.ImageSize == nil {
		return 0, fmt.Errorf("%w: columns of %s", ErrMissingAttr, ts.ImagePath)
	}
	w, _, err := l.opts.ImageSize(l.fsys, ts.ImagePath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrUnresolvedTileset, ts.ImagePath, err)
	}
	cols := columnsFor(w, ts.TileWidth, ts.Spacing, ts.Margin)
	if cols <= 0 {
		return 0, fmt.Errorf("%w: image %s narrower than one tile", ErrMalformedAttr, ts.ImagePath)
	}
	return cols, nil
}

func columnsFor(imageWidth, tileWidth, spacing, margin int) int {
	if tileWidth <= 0 || tileWidth+spacing <= 0 {
		return 0
	}
	return (imageWidth - 2*margin + spacing) / (tileWidth + spacing)
}

// readLayer walks the layer's gids in row-major order. Every element,
// including empty and skipped ones, advances the cell counter.
func (l *loader) readLayer(layer tmxLayer) {
	lvl := l.level
	if layer.Data.Encoding != "" || layer.Data.Compression != "" {
		l.diag(layer.Name, 0, fmt.Errorf("%w: encoding=%q compression=%q",
			ErrUnsupportedEncoding, layer.Data.Encoding, layer.Data.Compression))
		return
	}

	cells := lvl.Width * lvl.Height
	for counter, cell := range layer.Data.Tiles {
		if cell.GID == "" {
			continue
		}
		raw, err := strconv.ParseUint(strings.TrimSpace(cell.GID), 10, 32)
		if err != nil {
			l.diag(layer.Name, counter, fmt.Errorf("%w: gid %q", ErrMalformedAttr, cell.GID))
			continue
		}
		gid := uint32(raw) &^ gidFlagMask
		if gid == 0 {
			continue
		}
		if counter >= cells {
			l.diag(layer.Name, counter, fmt.Errorf("%w: cell %d of %d", ErrOutsideMap, counter, cells))
			continue
		}

		ts, ok := lvl.TilesetFor(gid)
		if !ok {
			l.diag(layer.Name, counter, fmt.Errorf("%w: %d", ErrNoTileset, gid))
			continue
		}
		if ts.TileCount > 0 && int(gid-ts.FirstGID) >= ts.TileCount {
			l.diag(layer.Name, counter, fmt.Errorf("%w: %d beyond %q (%d tiles)", ErrGIDOutOfRange, gid, ts.Name, ts.TileCount))
			continue
		}

		col := counter % lvl.Width
		row := counter / lvl.Width
		src := ts.Source(gid)
		lvl.Tiles = append(lvl.Tiles, Tile{
			Tileset: ts,
			GID:     gid,
			Column:  col,
			Row:     row,
			Source:  src,
			Dest: gamemath.NewRect(
				float64(col*lvl.TileWidth)*lvl.Scale,
				float64(row*lvl.TileHeight)*lvl.Scale,
				src.W*lvl.Scale,
				src.H*lvl.Scale,
			),
		})
	}
}

func (l *loader) readObjectGroup(og tmxObjectGroup) {
	switch og.Name {
	case GroupCollisions:
		for i, o := range og.Objects {
			r, err := l.readRect(o)
			if err != nil {
				l.diag(og.Name, i, err)
				continue
			}
			l.level.Collisions = append(l.level.Collisions, r)
		}
	case GroupSlopes:
		for i, o := range og.Objects {
			if err := l.readSlopes(o); err != nil {
				l.diag(og.Name, i, err)
			}
		}
	case GroupSpawnPoints:
		for i, o := range og.Objects {
			if o.Name != playerSpawnName {
				continue
			}
			x, y, err := objectOrigin(o)
			if err != nil {
				l.diag(og.Name, i, err)
				continue
			}
			l.level.Spawn = gamemath.NewVec2(x*l.opts.Scale, y*l.opts.Scale)
		}
	}
}

func (l *loader) readRect(o tmxObject) (gamemath.Rect, error) {
	x, y, err := objectOrigin(o)
	if err != nil {
		return gamemath.Rect{}, err
	}
	w, err := requiredFloat("width", o.Width)
	if err != nil {
		return gamemath.Rect{}, err
	}
	h, err := requiredFloat("height", o.Height)
	if err != nil {
		return gamemath.Rect{}, err
	}
	if w < 0 || h < 0 {
		return gamemath.Rect{}, fmt.Errorf("%w: size %gx%g", ErrMalformedAttr, w, h)
	}

	s := l.opts.Scale
	return gamemath.NewRect(x*s, y*s, math.Ceil(w)*s, math.Ceil(h)*s), nil
}

// readSlopes turns a polyline into one slope per pair of consecutive
// points. A vertical pair is reported and skipped; the rest are kept.
func (l *loader) readSlopes(o tmxObject) error {
	x, y, err := objectOrigin(o)
	if err != nil {
		return err
	}
	if o.Polyline == nil {
		return fmt.Errorf("%w: polyline", ErrMissingAttr)
	}
	points, err := parsePoints(o.Polyline.Points)
	if err != nil {
		return err
	}
	if len(points) < 2 {
		return fmt.Errorf("%w: polyline needs two points, got %d", ErrMalformedAttr, len(points))
	}

	s := l.opts.Scale
	var errs []error
	for i := 0; i+1 < len(points); i++ {
		p1 := gamemath.NewVec2((x+points[i].X)*s, (y+points[i].Y)*s)
		p2 := gamemath.NewVec2((x+points[i+1].X)*s, (y+points[i+1].Y)*s)
		slope, err := gamemath.NewSlope(p1, p2)
		if err != nil {
			errs = append(errs, fmt.Errorf("segment %d: %w", i, err))
			continue
		}
		l.level.Slopes = append(l.level.Slopes, slope)
	}
	return errors.Join(errs...)
}

// parsePoints reads a Tiled points string: space separated "x,y" pairs.
// Every coordinate is rounded up to a whole pixel.
func parsePoints(s string) ([]gamemath.Vec2, error) {
	fields := strings.Fields(s)
	points := make([]gamemath.Vec2, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("%w: point %q", ErrMalformedAttr, f)
		}
		px, errX := strconv.ParseFloat(xs, 64)
		py, errY := strconv.ParseFloat(ys, 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("%w: point %q", ErrMalformedAttr, f)
		}
		points = append(points, gamemath.NewVec2(math.Ceil(px), math.Ceil(py)))
	}
	return points, nil
}

func objectOrigin(o tmxObject) (x, y float64, err error) {
	if x, err = requiredFloat("x", o.X); err != nil {
		return 0, 0, err
	}
	if y, err = requiredFloat("y", o.Y); err != nil {
		return 0, 0, err
	}
	return math.Ceil(x), math.Ceil(y), nil
}

func requiredFloat(name, raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingAttr, name)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s=%q", ErrMalformedAttr, name, raw)
	}
	return v, nil
}

func requiredInt(name, raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingAttr, name)
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrMalformedAttr, name, raw)
	}
	return v, nil
}

func optionalInt(name, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return requiredInt(name, raw)
}

func positiveInt(name, raw string) (int, error) {
	v, err := requiredInt(name, raw)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %s=%d", ErrMalformedAttr, name, v)
	}
	return v, nil
}
