package factory

import (
	"github.com/automoto/cavestory/archetypes"
	"github.com/automoto/cavestory/components"
	cfg "github.com/automoto/cavestory/config"
	"github.com/automoto/cavestory/shared/gamemath"
	"github.com/yohamta/donburi"
)

// CreatePlayer spawns the player at spawn, running right and airborne.
func CreatePlayer(w donburi.World, c cfg.Config, spawn gamemath.Vec2) *donburi.Entry {
	player := archetypes.Player.Spawn(w)

	width, height := c.PlayerSize()
	components.Object.SetValue(player, components.ObjectData{
		X: spawn.X,
		Y: spawn.Y,
		W: width,
		H: height,
	})
	components.Player.SetValue(player, components.PlayerData{
		Direction: components.Vector{X: 1, Y: 0},
	})
	components.Physics.SetValue(player, components.PhysicsData{})

	animData := GenerateAnimations(c.Player, cfg.PlayerAnimations)
	animData.Controller.Play(cfg.RunRight, false)
	components.Animation.Set(player, animData)

	return player
}
