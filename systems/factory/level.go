package factory

import (
	"github.com/automoto/cavestory/archetypes"
	"github.com/automoto/cavestory/components"
	"github.com/automoto/cavestory/shared/collision"
	"github.com/automoto/cavestory/shared/leveldata"
	"github.com/yohamta/donburi"
)

// CreateLevel spawns the entity owning lvl and its collision world.
func CreateLevel(w donburi.World, lvl *leveldata.Level) *donburi.Entry {
	level := archetypes.Level.Spawn(w)

	components.Level.Set(level, &components.LevelData{
		CurrentLevel: lvl,
		World:        collision.NewWorld(lvl),
	})

	return level
}
