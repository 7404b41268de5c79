package components

import (
	"github.com/automoto/cavestory/assets/animations"
	"github.com/yohamta/donburi"
)

type AnimationData struct {
	Controller *animations.Controller
	// SpriteSheet is the texture path the controller's frames are cut from.
	SpriteSheet string
}

var Animation = donburi.NewComponentType[AnimationData]()
