package components

import (
	"github.com/automoto/cavestory/shared/collision"
	"github.com/automoto/cavestory/shared/leveldata"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	CurrentLevel *leveldata.Level
	World        *collision.World
}

var Level = donburi.NewComponentType[LevelData]()
