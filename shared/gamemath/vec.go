// Package gamemath holds the geometry shared by the level loader, the
// collision world and the physics systems. It has no dependency on
// ebitengine so it can be used by headless code and tests.
package gamemath

import dmath "github.com/yohamta/donburi/features/math"

// Vec2 is a position, size or offset in world pixels.
type Vec2 = dmath.Vec2

// NewVec2 returns the vector (x, y).
func NewVec2(x, y float64) Vec2 {
	return dmath.NewVec2(x, y)
}
