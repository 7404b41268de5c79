package config

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionQuit
	ActionLevel1
	ActionLevel2
	ActionCount // Must be last - used for array sizing
)

// LevelActions are the level switch actions, in the order of Level.Maps.
var LevelActions = []ActionID{ActionLevel1, ActionLevel2}
