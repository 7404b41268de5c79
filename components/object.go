package components

import (
	"github.com/automoto/cavestory/shared/gamemath"
	"github.com/yohamta/donburi"
)

// ObjectData places an entity in the world. The size is fixed when the
// entity is created; the bounding box always follows the position.
type ObjectData struct {
	X, Y float64
	W, H float64
}

func (o *ObjectData) BoundingBox() gamemath.Rect {
	return gamemath.NewRect(o.X, o.Y, o.W, o.H)
}

func (o *ObjectData) Position() gamemath.Vec2 {
	return gamemath.NewVec2(o.X, o.Y)
}

var Object = donburi.NewComponentType[ObjectData]()
