package gamemath

import (
	"errors"
	"fmt"
	"math"
)

// ErrVerticalSlope is returned when both endpoints share an x coordinate.
var ErrVerticalSlope = errors.New("vertical slope segment")

// Slope is a line segment the body can walk along. P1 is always the
// left-most endpoint.
type Slope struct {
	P1, P2 Vec2

	m, b float64
}

// NewSlope builds a slope between two points. The endpoints may be given in
// either order. A vertical segment has no defined gradient and is rejected.
func NewSlope(p1, p2 Vec2) (Slope, error) {
	if p1.X > p2.X {
		p1, p2 = p2, p1
	}

	run := math.Abs(p2.X) - math.Abs(p1.X)
	if p1.X == p2.X || run == 0 {
		return Slope{}, fmt.Errorf("slope (%g,%g)-(%g,%g): %w", p1.X, p1.Y, p2.X, p2.Y, ErrVerticalSlope)
	}

	m := (math.Abs(p2.Y) - math.Abs(p1.Y)) / run
	return Slope{
		P1: p1,
		P2: p2,
		m:  m,
		b:  p1.Y - m*math.Abs(p1.X),
	}, nil
}

// Gradient returns the rise over run of the segment.
func (s Slope) Gradient() float64 { return s.m }

// Intercept returns the y value of the segment's line at x = 0.
func (s Slope) Intercept() float64 { return s.b }

// YAt evaluates the segment's line at x.
func (s Slope) YAt(x float64) float64 {
	return s.m*x + s.b
}

// Bounds returns the bounding box of the two endpoints.
func (s Slope) Bounds() Rect {
	minY := math.Min(s.P1.Y, s.P2.Y)
	maxY := math.Max(s.P1.Y, s.P2.Y)
	return Rect{X: s.P1.X, Y: minY, W: s.P2.X - s.P1.X, H: maxY - minY}
}

// Overlaps reports whether box reaches the slope's endpoint bounding box.
// Four containment tests are tried, one for each way the endpoints can sit
// against the box, so the result does not depend on which way the segment
// leans.
func (s Slope) Overlaps(box Rect) bool {
	p1, p2 := s.P1, s.P2
	return (box.Right() >= p2.X && box.Left() <= p1.X && box.Top() <= p2.Y && box.Bottom() >= p1.Y) ||
		(box.Right() >= p1.X && box.Left() <= p2.X && box.Top() <= p1.Y && box.Bottom() >= p2.Y) ||
		(box.Left() <= p1.X && box.Right() >= p2.X && box.Top() <= p1.Y && box.Bottom() >= p2.Y) ||
		(box.Left() <= p2.X && box.Right() >= p1.X && box.Top() <= p2.Y && box.Bottom() >= p1.Y)
}
