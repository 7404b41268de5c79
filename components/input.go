package components

import (
	cfg "github.com/automoto/cavestory/config"
)

// InputData stores the current and previous frame's held state for all
// actions. Pressed and released edges are computed by comparing frames.
type InputData struct {
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool
}

// BeginFrame swaps buffers: current becomes previous, then current is
// cleared. It must be called before the frame's key states are applied.
func (i *InputData) BeginFrame() {
	i.Previous = i.Current
	i.Current = [cfg.ActionCount]bool{}
}

// Set records whether the key bound to action is down this frame.
func (i *InputData) Set(action cfg.ActionID, down bool) {
	if !valid(action) {
		return
	}
	i.Current[action] = down
}

func (i *InputData) IsHeld(action cfg.ActionID) bool {
	return valid(action) && i.Current[action]
}

func (i *InputData) WasPressed(action cfg.ActionID) bool {
	return valid(action) && i.Current[action] && !i.Previous[action]
}

func (i *InputData) WasReleased(action cfg.ActionID) bool {
	return valid(action) && !i.Current[action] && i.Previous[action]
}

func valid(action cfg.ActionID) bool {
	return action > cfg.ActionNone && action < cfg.ActionCount
}
