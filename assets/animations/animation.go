package animations

import (
	"github.com/automoto/cavestory/config"
	"github.com/automoto/cavestory/shared/gamemath"
)

// Animation is an ordered strip of sprite sheet frames sharing one draw
// offset.
type Animation struct {
	Frames []gamemath.Rect
	Offset gamemath.Vec2
}

// NewAnimation slices the strip described by def. Frame i is read from
// ((First+i)*Width, Y).
func NewAnimation(def config.AnimationDef) Animation {
	frames := make([]gamemath.Rect, def.Frames)
	for i := range frames {
		frames[i] = gamemath.NewRect(
			float64((def.First+i)*def.Width),
			float64(def.Y),
			float64(def.Width),
			float64(def.Height),
		)
	}
	return Animation{Frames: frames, Offset: def.Offset}
}

// Table maps every animation an entity can play to its frames. It is built
// once when the entity is set up.
type Table map[config.AnimationID]Animation

// NewTable builds a Table from animation definitions.
func NewTable(defs map[config.AnimationID]config.AnimationDef) Table {
	t := make(Table, len(defs))
	for id, def := range defs {
		t[id] = NewAnimation(def)
	}
	return t
}

// Finished is returned by Update when the current animation ran past its
// last frame.
type Finished struct {
	Animation config.AnimationID
	Done      bool
}

// Controller selects one animation out of a Table and advances it on
// elapsed time.
type Controller struct {
	table         Table
	frameDuration float64 // ms

	current config.AnimationID
	frame   int
	elapsed float64
	once    bool
	visible bool

	// OnFinished, if set, is called each time the current animation wraps.
	OnFinished func(id config.AnimationID)
}

func NewController(table Table, frameDuration float64) *Controller {
	return &Controller{
		table:         table,
		frameDuration: frameDuration,
		visible:       true,
	}
}

// Play selects an animation. Selecting a different one starts it from its
// first frame; selecting the current one only updates the once flag.
// An animation played once hides the sprite when it finishes.
func (c *Controller) Play(id config.AnimationID, once bool) {
	c.once = once
	if c.current == id {
		return
	}
	c.current = id
	c.frame = 0
}

// Update accumulates dt milliseconds and advances at most one frame.
func (c *Controller) Update(dt float64) Finished {
	anim, ok := c.table[c.current]
	if !ok || len(anim.Frames) == 0 {
		return Finished{}
	}

	c.elapsed += dt
	if c.elapsed <= c.frameDuration {
		return Finished{}
	}
	c.elapsed -= c.frameDuration

	if c.frame < len(anim.Frames)-1 {
		c.frame++
		return Finished{}
	}

	if c.once {
		c.visible = false
	}
	c.frame = 0
	return c.finish()
}

// Stop rewinds the current animation and reports it as finished.
func (c *Controller) Stop() Finished {
	c.frame = 0
	return c.finish()
}

func (c *Controller) finish() Finished {
	if c.OnFinished != nil {
		c.OnFinished(c.current)
	}
	return Finished{Animation: c.current, Done: true}
}

func (c *Controller) SetVisible(visible bool) { c.visible = visible }

func (c *Controller) Visible() bool { return c.visible }

func (c *Controller) Current() config.AnimationID { return c.current }

func (c *Controller) FrameIndex() int { return c.frame }

// Frame returns the source rectangle and draw offset of the frame to show.
// ok is false when nothing is playing.
func (c *Controller) Frame() (src gamemath.Rect, offset gamemath.Vec2, ok bool) {
	anim, found := c.table[c.current]
	if !found || c.frame >= len(anim.Frames) {
		return gamemath.Rect{}, gamemath.Vec2{}, false
	}
	return anim.Frames[c.frame], anim.Offset, true
}
