package systems

import (
	"testing"

	"github.com/automoto/cavestory/components"
	cfg "github.com/automoto/cavestory/config"
	"github.com/automoto/cavestory/shared/gamemath"
	"github.com/automoto/cavestory/shared/leveldata"
	"github.com/automoto/cavestory/systems/factory"
	"github.com/yohamta/donburi"
)

var floor = gamemath.NewRect(0, 400, 640, 32)

func newTestWorld(t *testing.T, lvl *leveldata.Level) (donburi.World, *donburi.Entry) {
	t.Helper()
	w := donburi.NewWorld()
	if lvl != nil {
		factory.CreateLevel(w, lvl)
	}
	player := factory.CreatePlayer(w, cfg.Default(), gamemath.NewVec2(100, 100))
	return w, player
}

func testLevel(collisions []gamemath.Rect, slopes []gamemath.Slope) *leveldata.Level {
	return &leveldata.Level{
		Name:       "test",
		Width:      20,
		Height:     15,
		TileWidth:  16,
		TileHeight: 16,
		Scale:      2,
		Collisions: collisions,
		Slopes:     slopes,
	}
}

func body(x, y, w, h float64) *components.ObjectData {
	return &components.ObjectData{X: x, Y: y, W: w, H: h}
}
