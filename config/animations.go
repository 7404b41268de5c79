package config

import "github.com/yohamta/donburi/features/math"

// AnimationID names one of the animations an entity was set up with.
type AnimationID int

const (
	AnimationNone AnimationID = iota
	IdleLeft
	IdleRight
	RunLeft
	RunRight
)

func (a AnimationID) String() string {
	switch a {
	case IdleLeft:
		return "IdleLeft"
	case IdleRight:
		return "IdleRight"
	case RunLeft:
		return "RunLeft"
	case RunRight:
		return "RunRight"
	default:
		return "None"
	}
}

// AnimationDef describes a strip of frames on a sprite sheet. Frame i is
// read from ((First+i)*Width, Y).
type AnimationDef struct {
	Frames int
	First  int
	Y      int
	Width  int
	Height int
	Offset math.Vec2
}

// PlayerAnimations is the animation table of the player's sprite sheet.
var PlayerAnimations = map[AnimationID]AnimationDef{
	IdleLeft:  {Frames: 1, First: 0, Y: 0, Width: 16, Height: 16},
	IdleRight: {Frames: 1, First: 0, Y: 16, Width: 16, Height: 16},
	RunLeft:   {Frames: 3, First: 0, Y: 0, Width: 16, Height: 16},
	RunRight:  {Frames: 3, First: 0, Y: 16, Width: 16, Height: 16},
}
