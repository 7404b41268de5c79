package factory

import (
	"github.com/automoto/cavestory/assets/animations"
	"github.com/automoto/cavestory/components"
	cfg "github.com/automoto/cavestory/config"
)

// GenerateAnimations creates an AnimationData component for a sprite sheet
// laid out as described by defs.
func GenerateAnimations(p cfg.PlayerConfig, defs map[cfg.AnimationID]cfg.AnimationDef) *components.AnimationData {
	return &components.AnimationData{
		Controller:  animations.NewController(animations.NewTable(defs), p.FrameDuration),
		SpriteSheet: p.SpriteSheet,
	}
}
