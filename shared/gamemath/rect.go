package gamemath

// Rect is an axis-aligned bounding box. It is used both for the moving
// body and for static collision geometry.
type Rect struct {
	X, Y, W, H float64
}

// NewRect returns a rectangle with its top-left corner at (x, y).
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Edge returns the coordinate of the given side, or 0 for SideNone.
func (r Rect) Edge(side Side) float64 {
	switch side {
	case SideLeft:
		return r.Left()
	case SideRight:
		return r.Right()
	case SideTop:
		return r.Top()
	case SideBottom:
		return r.Bottom()
	default:
		return 0
	}
}

// Overlaps reports whether r and other touch or intersect. Edges are
// inclusive, so two rectangles sharing a border overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.Right() >= other.Left() &&
		r.Left() <= other.Right() &&
		r.Top() <= other.Bottom() &&
		r.Bottom() >= other.Top()
}

// IsValid reports whether the rectangle lies in positive space with a
// non-negative size.
func (r Rect) IsValid() bool {
	return r.X >= 0 && r.Y >= 0 && r.W >= 0 && r.H >= 0
}
