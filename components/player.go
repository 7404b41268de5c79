package components

import (
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Direction Vector // X is -1 facing left, 1 facing right
}

func (p *PlayerData) FacingRight() bool { return p.Direction.X >= 0 }

var Player = donburi.NewComponentType[PlayerData]()
