package gamemath

import "math"

// Side names an edge of a rectangle.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Opposite returns the facing edge: top for bottom, left for right.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideNone
	}
}

// CollisionSide returns the side of box that penetrates other the least.
//
// The four depths are measured from box's point of view:
//
//	right  = box.right  - other.left
//	left   = other.right - box.left
//	top    = other.bottom - box.top
//	bottom = box.bottom - other.top
//
// Ties are broken in the order right, left, top, bottom.
func CollisionSide(box, other Rect) Side {
	depths := [...]struct {
		side  Side
		depth float64
	}{
		{SideRight, math.Abs(box.Right() - other.Left())},
		{SideLeft, math.Abs(other.Right() - box.Left())},
		{SideTop, math.Abs(other.Bottom() - box.Top())},
		{SideBottom, math.Abs(box.Bottom() - other.Top())},
	}

	best := SideNone
	lowest := math.Inf(1)
	for _, d := range depths {
		if d.depth < lowest {
			lowest = d.depth
			best = d.side
		}
	}
	return best
}
