// Package collision answers which pieces of static level geometry a box
// touches. A resolv space narrows the search to nearby cells, then the
// inclusive rectangle and slope tests decide the result.
package collision

import (
	"math"
	"sort"

	"github.com/automoto/cavestory/shared/gamemath"
	"github.com/automoto/cavestory/shared/leveldata"
	"github.com/automoto/cavestory/tags"
	"github.com/solarlune/resolv"
)

const (
	defaultCellSize = 32
	spacePadding    = 4 * defaultCellSize
)

// Cell lookups drop the last pixel of an object and touching edges count as
// overlapping, so every probe is grown by this much on each side.
const probeMargin = 2

// World holds a level's collision rectangles and slopes. Queries return
// results in the order the level listed them. A World is not safe for
// concurrent use.
type World struct {
	rects  []gamemath.Rect
	slopes []gamemath.Slope

	space   *resolv.Space
	probe   *resolv.Object
	originX float64
	originY float64
}

// NewWorld indexes the collision geometry of lvl.
func NewWorld(lvl *leveldata.Level) *World {
	w := &World{
		rects:  lvl.Collisions,
		slopes: lvl.Slopes,
	}

	cell := int(math.Ceil(float64(lvl.TileWidth) * lvl.Scale))
	if cell <= 0 {
		cell = defaultCellSize
	}

	pw, ph := lvl.PixelSize()
	bounds := gamemath.NewRect(0, 0, pw, ph)
	for _, r := range w.rects {
		bounds = union(bounds, r)
	}
	for _, s := range w.slopes {
		bounds = union(bounds, s.Bounds())
	}

	w.originX = bounds.X - spacePadding
	w.originY = bounds.Y - spacePadding
	spaceW := roundUp(bounds.W+2*spacePadding, cell)
	spaceH := roundUp(bounds.H+2*spacePadding, cell)
	w.space = resolv.NewSpace(spaceW, spaceH, cell, cell)

	for i, r := range w.rects {
		w.add(r, i, tags.ResolvSolid)
	}
	for i, s := range w.slopes {
		w.add(s.Bounds(), i, tags.ResolvSlope)
	}

	w.probe = resolv.NewObject(0, 0, 1, 1, tags.ResolvProbe)
	w.space.Add(w.probe)
	return w
}

func (w *World) add(r gamemath.Rect, index int, tag string) {
	obj := resolv.NewObject(
		r.X-w.originX,
		r.Y-w.originY,
		math.Max(r.W, 1),
		math.Max(r.H, 1),
		tag,
	)
	obj.Data = index
	w.space.Add(obj)
}

// Rectangles returns every collision rectangle in level order.
func (w *World) Rectangles() []gamemath.Rect { return w.rects }

// Slopes returns every slope in level order.
func (w *World) Slopes() []gamemath.Slope { return w.slopes }

// RectanglesOverlapping returns the rectangles box touches or intersects.
func (w *World) RectanglesOverlapping(box gamemath.Rect) []gamemath.Rect {
	var out []gamemath.Rect
	for _, i := range w.candidates(box, tags.ResolvSolid) {
		if box.Overlaps(w.rects[i]) {
			out = append(out, w.rects[i])
		}
	}
	return out
}

// SlopesOverlapping returns the slopes whose endpoints box reaches.
func (w *World) SlopesOverlapping(box gamemath.Rect) []gamemath.Slope {
	var out []gamemath.Slope
	for _, i := range w.candidates(box, tags.ResolvSlope) {
		if w.slopes[i].Overlaps(box) {
			out = append(out, w.slopes[i])
		}
	}
	return out
}

// candidates returns the sorted indices of tagged objects sharing a cell
// with box.
func (w *World) candidates(box gamemath.Rect, tag string) []int {
	w.probe.X = box.X - w.originX - probeMargin
	w.probe.Y = box.Y - w.originY - probeMargin
	w.probe.W = math.Max(box.W, 0) + 2*probeMargin
	w.probe.H = math.Max(box.H, 0) + 2*probeMargin
	w.probe.Update()

	check := w.probe.Check(0, 0, tag)
	if check == nil {
		return nil
	}

	objs := check.ObjectsByTags(tag)
	indices := make([]int, 0, len(objs))
	seen := make(map[int]struct{}, len(objs))
	for _, obj := range objs {
		i, ok := obj.Data.(int)
		if !ok {
			continue
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

func union(a, b gamemath.Rect) gamemath.Rect {
	left := math.Min(a.Left(), b.Left())
	top := math.Min(a.Top(), b.Top())
	right := math.Max(a.Right(), b.Right())
	bottom := math.Max(a.Bottom(), b.Bottom())
	return gamemath.NewRect(left, top, right-left, bottom-top)
}

func roundUp(v float64, cell int) int {
	n := int(math.Ceil(v / float64(cell)))
	if n < 1 {
		n = 1
	}
	return n * cell
}
