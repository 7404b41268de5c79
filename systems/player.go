package systems

import (
	"github.com/automoto/cavestory/components"
	cfg "github.com/automoto/cavestory/config"
	"github.com/automoto/cavestory/tags"
	"github.com/yohamta/donburi"
)

// UpdatePlayerInput turns the held movement keys and the jump key into
// player commands.
func UpdatePlayerInput(w donburi.World, c cfg.Config, in *components.InputData) {
	e, ok := tags.Player.First(w)
	if !ok {
		return
	}

	switch {
	case in.IsHeld(cfg.ActionMoveLeft):
		MoveLeft(e, c.Player)
	case in.IsHeld(cfg.ActionMoveRight):
		MoveRight(e, c.Player)
	default:
		StopMoving(e)
	}

	if in.IsHeld(cfg.ActionJump) {
		Jump(e, c.Player)
	}
}

func MoveLeft(e *donburi.Entry, p cfg.PlayerConfig) {
	components.Physics.Get(e).SpeedX = -p.WalkSpeed
	components.Player.Get(e).Direction = components.Vector{X: -1}
	playAnimation(e, cfg.RunLeft)
}

func MoveRight(e *donburi.Entry, p cfg.PlayerConfig) {
	components.Physics.Get(e).SpeedX = p.WalkSpeed
	components.Player.Get(e).Direction = components.Vector{X: 1}
	playAnimation(e, cfg.RunRight)
}

// StopMoving halts horizontal motion and shows the idle pose for the
// current facing.
func StopMoving(e *donburi.Entry) {
	components.Physics.Get(e).SpeedX = 0
	if components.Player.Get(e).FacingRight() {
		playAnimation(e, cfg.IdleRight)
	} else {
		playAnimation(e, cfg.IdleLeft)
	}
}

// Jump launches a grounded body. There is no jumping in mid air.
func Jump(e *donburi.Entry, p cfg.PlayerConfig) {
	physics := components.Physics.Get(e)
	if !physics.Grounded {
		return
	}
	physics.SpeedY = -p.JumpSpeed
	physics.Grounded = false
}

func playAnimation(e *donburi.Entry, id cfg.AnimationID) {
	if !e.HasComponent(components.Animation) {
		return
	}
	if anim := components.Animation.Get(e); anim.Controller != nil {
		anim.Controller.Play(id, false)
	}
}
