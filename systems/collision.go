package systems

import (
	"github.com/automoto/cavestory/components"
	cfg "github.com/automoto/cavestory/config"
	"github.com/automoto/cavestory/shared/gamemath"
	"github.com/automoto/cavestory/tags"
	"github.com/yohamta/donburi"
)

// UpdateCollisions pushes the player out of the level's rectangles, then
// settles it on any slope it stands over.
func UpdateCollisions(w donburi.World, c cfg.Config) {
	levelEntry, ok := components.Level.First(w)
	if !ok {
		return
	}
	world := components.Level.Get(levelEntry).World
	if world == nil {
		return
	}

	tags.Player.Each(w, func(e *donburi.Entry) {
		obj := components.Object.Get(e)
		physics := components.Physics.Get(e)

		for _, r := range world.RectanglesOverlapping(obj.BoundingBox()) {
			resolveRect(obj, physics, r)
		}
		for _, s := range world.SlopesOverlapping(obj.BoundingBox()) {
			resolveSlope(obj, physics, s, c.Level.SlopeBias)
		}
	})
}

// resolveRect moves the body out of r through the side it penetrates the
// least. Landing on r grounds the body; hitting r from below only stops the
// vertical motion.
func resolveRect(obj *components.ObjectData, physics *components.PhysicsData, r gamemath.Rect) {
	switch gamemath.CollisionSide(obj.BoundingBox(), r) {
	case gamemath.SideRight:
		obj.X = r.Left() - obj.W - 1
	case gamemath.SideLeft:
		obj.X = r.Right() + 1
	case gamemath.SideTop:
		obj.Y = r.Bottom() + 1
		physics.SpeedY = 0
	case gamemath.SideBottom:
		obj.Y = r.Top() - obj.H - 1
		physics.SpeedY = 0
		physics.Grounded = true
	}
}

// resolveSlope rests a grounded body's bottom on the slope line below its
// horizontal center, lifted by bias.
func resolveSlope(obj *components.ObjectData, physics *components.PhysicsData, s gamemath.Slope, bias float64) {
	if !physics.Grounded {
		return
	}
	y := s.YAt(obj.BoundingBox().CenterX()) - bias
	obj.Y = y - obj.H
}
