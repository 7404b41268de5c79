package components

import (
	"github.com/yohamta/donburi"
)

// Vector represents a 2D vector.
type Vector struct {
	X, Y float64
}

// PhysicsData is the velocity half of a body. Speeds are in pixels per
// millisecond.
type PhysicsData struct {
	SpeedX   float64
	SpeedY   float64
	Grounded bool
}

var Physics = donburi.NewComponentType[PhysicsData]()
