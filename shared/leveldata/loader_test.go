package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/automoto/cavestory/shared/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTSX = `<?xml version="1.0" encoding="UTF-8"?>
<tileset version="1.10" name="PrtCave" tilewidth="16" tileheight="16" tilecount="80" columns="16">
 <image source="../tilesets/PrtCave.png" width="256" height="80"/>
</tileset>`

func tmxDoc(w, h int, body string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="%d" height="%d" tilewidth="16" tileheight="16">
%s
</map>`, w, h, body)
}

func tileData(gids ...string) string {
	var b strings.Builder
	b.WriteString(`<layer id="1" name="background"><data>`)
	for _, g := range gids {
		if g == "" {
			b.WriteString(`<tile/>`)
			continue
		}
		fmt.Fprintf(&b, `<tile gid="%s"/>`, g)
	}
	b.WriteString(`</data></layer>`)
	return b.String()
}

func mapFS(name, doc string) fstest.MapFS {
	return fstest.MapFS{
		name + ".tmx":          {Data: []byte(doc)},
		"tilesets/PrtCave.tsx": {Data: []byte(testTSX)},
	}
}

func testOptions() Options {
	return Options{Scale: 2, DefaultSpawn: gamemath.NewVec2(100, 100)}
}

func TestLoadScenarioTwoByTwo(t *testing.T) {
	doc := tmxDoc(2, 2, `<tileset firstgid="1" source="tilesets/PrtCave.tsx"/>`+tileData("0", "5", "0", "5"))

	lvl, err := Load(mapFS("Map 1", doc), "Map 1", testOptions())
	require.NoError(t, err)
	require.Empty(t, lvl.Diagnostics)
	require.Len(t, lvl.Tiles, 2)

	first, second := lvl.Tiles[0], lvl.Tiles[1]
	assert.Equal(t, 1, first.Column)
	assert.Equal(t, 0, first.Row)
	assert.Equal(t, 1, second.Column)
	assert.Equal(t, 1, second.Row)

	assert.Equal(t, gamemath.NewRect(32, 0, 32, 32), first.Dest)
	assert.Equal(t, gamemath.NewRect(32, 32, 32, 32), second.Dest)
	assert.Equal(t, gamemath.NewRect(64, 0, 16, 16), first.Source)
	assert.Equal(t, "tilesets/PrtCave.png", first.Tileset.ImagePath)
}

func TestLoadZeroGIDsAdvanceCounter(t *testing.T) {
	gids := []string{"0", "3", "", "0", "7", "0", "0", "2", "0"}
	doc := tmxDoc(3, 3, `<tileset firstgid="1" source="tilesets/PrtCave.tsx"/>`+tileData(gids...))

	lvl, err := Load(mapFS("m", doc), "m", testOptions())
	require.NoError(t, err)

	nonZero := 0
	for _, g := range gids {
		if g != "" && g != "0" {
			nonZero++
		}
	}
	require.Len(t, lvl.Tiles, nonZero)

	// gid 7 sits at counter 4: column 1, row 1
	assert.Equal(t, uint32(7), lvl.Tiles[1].GID)
	assert.Equal(t, 1, lvl.Tiles[1].Column)
	assert.Equal(t, 1, lvl.Tiles[1].Row)
	// gid 2 sits at counter 7: column 1, row 2
	assert.Equal(t, 1, lvl.Tiles[2].Column)
	assert.Equal(t, 2, lvl.Tiles[2].Row)
}

func TestTilesetSourceIsPeriodicInRows(t *testing.T) {
	ts := &Tileset{FirstGID: 1, TileWidth: 16, TileHeight: 16, Columns: 16}

	for g := uint32(1); g <= 48; g++ {
		a := ts.Source(g)
		b := ts.Source(g + uint32(ts.Columns))
		assert.Equal(t, a.X, b.X, "gid %d", g)
		assert.Equal(t, a.Y+16, b.Y, "gid %d", g)
	}
}

func TestTilesetForPicksGreatestFirstGID(t *testing.T) {
	lvl := &Level{Tilesets: []*Tileset{
		{Name: "a", FirstGID: 1},
		{Name: "b", FirstGID: 81},
		{Name: "c", FirstGID: 200},
	}}

	_, ok := lvl.TilesetFor(0)
	assert.False(t, ok)

	for gid, want := range map[uint32]string{1: "a", 80: "a", 81: "b", 199: "b", 200: "c", 5000: "c"} {
		ts, ok := lvl.TilesetFor(gid)
		require.True(t, ok, "gid %d", gid)
		assert.Equal(t, want, ts.Name, "gid %d", gid)
	}
}

func TestLoadSortsTilesetsByFirstGID(t *testing.T) {
	doc := tmxDoc(2, 1, `
<tileset firstgid="81" name="second" tilewidth="16" tileheight="16" columns="8">
 <image source="second.png" width="128" height="64"/>
</tileset>
<tileset firstgid="1" source="tilesets/PrtCave.tsx"/>`+tileData("2", "82"))

	lvl, err := Load(mapFS("m", doc), "m", testOptions())
	require.NoError(t, err)
	require.Empty(t, lvl.Diagnostics)

	require.Len(t, lvl.Tilesets, 2)
	assert.Equal(t, uint32(1), lvl.Tilesets[0].FirstGID)
	assert.Equal(t, uint32(81), lvl.Tilesets[1].FirstGID)

	require.Len(t, lvl.Tiles, 2)
	assert.Equal(t, "PrtCave", lvl.Tiles[0].Tileset.Name)
	assert.Equal(t, "second", lvl.Tiles[1].Tileset.Name)
	assert.Equal(t, gamemath.NewRect(16, 0, 16, 16), lvl.Tiles[1].Source)
}

func TestLoadRecoversFromBadTiles(t *testing.T) {
	doc := tmxDoc(4, 1, `<tileset firstgid="10" source="tilesets/PrtCave.tsx"/>`+tileData("abc", "3", "95", "12"))

	lvl, err := Load(mapFS("m", doc), "m", testOptions())
	require.NoError(t, err)

	require.Len(t, lvl.Tiles, 1)
	assert.Equal(t, 3, lvl.Tiles[0].Column)

	require.Len(t, lvl.Diagnostics, 3)
	assert.ErrorIs(t, lvl.Diagnostics[0], ErrMalformedAttr)
	assert.ErrorIs(t, lvl.Diagnostics[1], ErrNoTileset)
	assert.ErrorIs(t, lvl.Diagnostics[2], ErrGIDOutOfRange)
	assert.Equal(t, "background", lvl.Diagnostics[1].Group)
	assert.Equal(t, 1, lvl.Diagnostics[1].Index)
	assert.Equal(t, "m", lvl.Diagnostics[1].Map)
	assert.Error(t, lvl.DiagnosticsErr())
}

func TestLoadMasksFlipFlags(t *testing.T) {
	flipped := fmt.Sprint(uint32(0x80000000) | 5)
	doc := tmxDoc(1, 1, `<tileset firstgid="1" source="tilesets/PrtCave.tsx"/>`+tileData(flipped))

	lvl, err := Load(mapFS("m", doc), "m", testOptions())
	require.NoError(t, err)
	require.Len(t, lvl.Tiles, 1)
	assert.Equal(t, uint32(5), lvl.Tiles[0].GID)
}

func TestLoadRejectsEncodedLayer(t *testing.T) {
	doc := tmxDoc(2, 1, `<tileset firstgid="1" source="tilesets/PrtCave.tsx"/>
<layer id="1" name="encoded"><data encoding="base64" compression="zlib">eJxjYGBgAAAABAAB</data></layer>`+
		tileData("1", "2"))

	lvl, err := Load(mapFS("m", doc), "m", testOptions())
	require.NoError(t, err)

	require.Len(t, lvl.Diagnostics, 1)
	assert.ErrorIs(t, lvl.Diagnostics[0], ErrUnsupportedEncoding)
	assert.Equal(t, "encoded", lvl.Diagnostics[0].Group)
	assert.Len(t, lvl.Tiles, 2, "the plain layer still loads")
}

func TestLoadUnresolvedTileset(t *testing.T) {
	doc := tmxDoc(1, 1, `<tileset firstgid="1" source="missing.tsx"/>`+tileData("1"))

	lvl, err := Load(mapFS("m", doc), "m", testOptions())
	require.NoError(t, err)

	assert.Empty(t, lvl.Tilesets)
	assert.Empty(t, lvl.Tiles)
	require.Len(t, lvl.Diagnostics, 2)
	assert.ErrorIs(t, lvl.Diagnostics[0], ErrUnresolvedTileset)
	assert.ErrorIs(t, lvl.Diagnostics[1], ErrNoTileset)
}

func TestLoadProbesImageSize(t *testing.T) {
	doc := tmxDoc(1, 1, `
<tileset firstgid="1" name="bare" tilewidth="16" tileheight="16">
 <image source="bare.png"/>
</tileset>`+tileData("18"))

	probed := ""
	opts := testOptions()
	opts.ImageSize = func(_ fs.FS, path string) (int, int, error) {
		probed = path
		return 128, 64, nil
	}

	lvl, err := Load(mapFS("m", doc), "m", opts)
	require.NoError(t, err)
	require.Empty(t, lvl.Diagnostics)

	assert.Equal(t, "bare.png", probed)
	assert.Equal(t, 8, lvl.Tilesets[0].Columns)
	// local id 17 in an 8 wide sheet: column 1, row 2
	assert.Equal(t, gamemath.NewRect(16, 32, 16, 16), lvl.Tiles[0].Source)
}

func TestLoadObjectGroups(t *testing.T) {
	doc := tmxDoc(4, 4, `
<objectgroup id="2" name="collisions">
 <object id="1" x="0" y="48.2" width="63.5" height="16"/>
 <object id="2" x="16" y="oops" width="16" height="16"/>
 <object id="3" x="32" y="0" width="16"/>
 <object id="8" x="10" y="10" width="-20" height="5"/>
</objectgroup>
<objectgroup id="3" name="slopes">
 <object id="4" x="16" y="32">
  <polyline points="0,0 16,-16 16,-32 32,-40"/>
 </object>
 <object id="5" x="0" y="0"/>
</objectgroup>
<objectgroup id="4" name="spawn points">
 <object id="6" name="enemy" x="8" y="8"/>
 <object id="7" name="player" x="40.5" y="20"/>
</objectgroup>`)

	lvl, err := Load(mapFS("m", doc), "m", testOptions())
	require.NoError(t, err)

	require.Len(t, lvl.Collisions, 1)
	assert.Equal(t, gamemath.NewRect(0, 98, 128, 32), lvl.Collisions[0])

	// three consecutive pairs, the vertical middle one is rejected
	require.Len(t, lvl.Slopes, 2)
	assert.Equal(t, gamemath.NewVec2(32, 64), lvl.Slopes[0].P1)
	assert.Equal(t, gamemath.NewVec2(64, 32), lvl.Slopes[0].P2)
	assert.Equal(t, gamemath.NewVec2(64, 0), lvl.Slopes[1].P1)
	assert.Equal(t, gamemath.NewVec2(96, -16), lvl.Slopes[1].P2)

	assert.Equal(t, gamemath.NewVec2(82, 40), lvl.Spawn)

	var groups []string
	for _, d := range lvl.Diagnostics {
		groups = append(groups, d.Group)
	}
	assert.Equal(t, []string{"collisions", "collisions", "collisions", "slopes", "slopes"}, groups)
	assert.ErrorIs(t, lvl.Diagnostics[0], ErrMalformedAttr)
	assert.ErrorIs(t, lvl.Diagnostics[1], ErrMissingAttr)
	assert.ErrorIs(t, lvl.Diagnostics[2], ErrMalformedAttr, "negative width")
	assert.Equal(t, 3, lvl.Diagnostics[2].Index)
	assert.ErrorIs(t, lvl.Diagnostics[3], gamemath.ErrVerticalSlope)
	assert.ErrorIs(t, lvl.Diagnostics[4], ErrMissingAttr)
}

func TestLoadRejectsNegativeTilesetSpacing(t *testing.T) {
	const badTSX = `<tileset name="bad" tilewidth="16" tileheight="16" spacing="-16" tilecount="16">
 <image source="bad.png" width="256" height="16"/>
</tileset>`

	tests := []struct {
		name    string
		tileset string
	}{
		{"inline spacing", `<tileset firstgid="1" name="bad" tilewidth="16" tileheight="16" spacing="-16">
 <image source="bad.png" width="256" height="16"/>
</tileset>`},
		{"inline margin", `<tileset firstgid="1" name="bad" tilewidth="16" tileheight="16" margin="-4">
 <image source="bad.png" width="256" height="16"/>
</tileset>`},
		{"external spacing", `<tileset firstgid="1" source="tilesets/bad.tsx"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := mapFS("m", tmxDoc(1, 1, tt.tileset+tileData("1")))
			fsys["tilesets/bad.tsx"] = &fstest.MapFile{Data: []byte(badTSX)}

			var lvl *Level
			var err error
			require.NotPanics(t, func() { lvl, err = Load(fsys, "m", testOptions()) })
			require.NoError(t, err)

			assert.Empty(t, lvl.Tilesets)
			require.NotEmpty(t, lvl.Diagnostics)
			assert.ErrorIs(t, lvl.Diagnostics[0], ErrMalformedAttr)
			assert.Equal(t, "tileset", lvl.Diagnostics[0].Group)
		})
	}
}

func TestColumnsForDegenerateStride(t *testing.T) {
	assert.Zero(t, columnsFor(256, 16, -16, 0))
	assert.Zero(t, columnsFor(256, 16, -20, 0))
	assert.Zero(t, columnsFor(256, 0, 0, 0))
	assert.Equal(t, 16, columnsFor(256, 16, 0, 0))
	assert.Equal(t, 15, columnsFor(256, 16, 1, 0))
}

func TestLoadRejectsOverflowingFirstGID(t *testing.T) {
	doc := tmxDoc(1, 1, `<tileset firstgid="4294967297" source="tilesets/PrtCave.tsx"/>`+tileData("1"))

	lvl, err := Load(mapFS("m", doc), "m", testOptions())
	require.NoError(t, err)

	assert.Empty(t, lvl.Tilesets)
	require.Len(t, lvl.Diagnostics, 2)
	assert.ErrorIs(t, lvl.Diagnostics[0], ErrMalformedAttr)
	assert.ErrorIs(t, lvl.Diagnostics[1], ErrNoTileset)
}

func TestLoadDuplicateFirstGIDReportsDocumentIndex(t *testing.T) {
	doc := tmxDoc(1, 1, `
<tileset firstgid="81" name="a" tilewidth="16" tileheight="16" columns="8">
 <image source="a.png" width="128" height="64"/>
</tileset>
<tileset firstgid="81" name="b" tilewidth="16" tileheight="16" columns="8">
 <image source="b.png" width="128" height="64"/>
</tileset>
<tileset firstgid="1" source="tilesets/PrtCave.tsx"/>`)

	lvl, err := Load(mapFS("m", doc), "m", testOptions())
	require.NoError(t, err)

	require.Len(t, lvl.Tilesets, 2)
	assert.Equal(t, "PrtCave", lvl.Tilesets[0].Name)
	assert.Equal(t, "a", lvl.Tilesets[1].Name)

	require.Len(t, lvl.Diagnostics, 1)
	assert.ErrorIs(t, lvl.Diagnostics[0], ErrUnresolvedTileset)
	assert.Equal(t, "tileset", lvl.Diagnostics[0].Group)
	assert.Equal(t, 1, lvl.Diagnostics[0].Index, "b is the second tileset in the document")
}

func TestLoadDefaultSpawn(t *testing.T) {
	lvl, err := Load(mapFS("m", tmxDoc(1, 1, "")), "m", testOptions())
	require.NoError(t, err)
	assert.Equal(t, gamemath.NewVec2(100, 100), lvl.Spawn)
}

func TestLoadMissingMapIsFatal(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "Map 9", testOptions())
	require.Error(t, err)

	var mapErr *MapError
	require.True(t, errors.As(err, &mapErr))
	assert.Equal(t, "Map 9", mapErr.Map)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadMissingGridIsFatal(t *testing.T) {
	doc := `<map width="4" tilewidth="16" tileheight="16"></map>`
	_, err := Load(mapFS("m", doc), "m", testOptions())

	var mapErr *MapError
	require.ErrorAs(t, err, &mapErr)
	assert.ErrorIs(t, err, ErrMissingAttr)
}

func TestDiscoverMaps(t *testing.T) {
	fsys := fstest.MapFS{
		"Map 2.tmx":   {Data: []byte("x")},
		"Map 1.tmx":   {Data: []byte("x")},
		"PrtCave.tsx": {Data: []byte("x")},
	}
	names, err := DiscoverMaps(fsys, ".")
	require.NoError(t, err)
	assert.Equal(t, []string{"Map 1", "Map 2"}, names)
}

func TestLoadFromMapsDir(t *testing.T) {
	doc := tmxDoc(1, 1, `<tileset firstgid="1" source="../tilesets/PrtCave.tsx"/>`+tileData("1"))
	fsys := fstest.MapFS{
		"maps/Map 1.tmx":       {Data: []byte(doc)},
		"tilesets/PrtCave.tsx": {Data: []byte(testTSX)},
	}

	opts := testOptions()
	opts.Dir = "maps"
	lvl, err := Load(fsys, "Map 1", opts)
	require.NoError(t, err)
	require.Empty(t, lvl.Diagnostics)

	assert.Equal(t, "Map 1", lvl.Name)
	assert.Equal(t, "tilesets/PrtCave.png", lvl.Tilesets[0].ImagePath)

	names, err := DiscoverMaps(fsys, "maps")
	require.NoError(t, err)
	assert.Equal(t, []string{"Map 1"}, names)
}
