package scenes

import (
	cfg "github.com/automoto/cavestory/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// Bindings maps each action to the keys that trigger it.
var Bindings = map[cfg.ActionID][]ebiten.Key{
	cfg.ActionQuit:      {ebiten.KeyEscape},
	cfg.ActionMoveLeft:  {ebiten.KeyArrowLeft},
	cfg.ActionMoveRight: {ebiten.KeyArrowRight},
	cfg.ActionJump:      {ebiten.KeyZ},
	cfg.ActionLevel1:    {ebiten.KeyDigit1},
	cfg.ActionLevel2:    {ebiten.KeyDigit2},
}
