package tags

import "github.com/yohamta/donburi"

var (
	Player = donburi.NewTag().SetName("Player")
	Level  = donburi.NewTag().SetName("Level")
)

// Resolv tags for the collision broad phase
const (
	ResolvSolid = "solid"
	ResolvSlope = "slope"
	ResolvProbe = "probe"
)
