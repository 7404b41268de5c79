package systems

import (
	"github.com/automoto/cavestory/components"
	cfg "github.com/automoto/cavestory/config"
	"github.com/automoto/cavestory/shared/gamemath"
	"github.com/yohamta/donburi"
)

// UpdatePhysics integrates every body over dt milliseconds: gravity first,
// then position from the new velocity.
func UpdatePhysics(w donburi.World, c cfg.Config, dt float64) {
	components.Physics.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(components.Object) {
			return
		}
		integrate(components.Object.Get(e), components.Physics.Get(e), c.Player, dt)
	})
}

func integrate(obj *components.ObjectData, physics *components.PhysicsData, p cfg.PlayerConfig, dt float64) {
	physics.SpeedY = gamemath.ApplyGravity(physics.SpeedY, p.Gravity, p.GravityCap, dt)
	obj.X += physics.SpeedX * dt
	obj.Y += physics.SpeedY * dt
}
