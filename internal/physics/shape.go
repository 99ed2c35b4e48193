// Package physics is a contact-only collision detector. Bodies carry convex
// polygons and category bitmasks; the detector reports when two bodies whose
// masks match begin touching. There is no collision response.
package physics

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Polygon is a convex polygon in local coordinates. Two vertices make an edge.
type Polygon []core.Vec2

// PlayerHull is the player's collision outline in sprite pixels, origin at
// the bottom-left corner of a 39x27 sprite.
var PlayerHull = Polygon{
	{X: 17, Y: 23}, {X: 39, Y: 22}, {X: 38, Y: 10},
	{X: 21, Y: 0}, {X: 4, Y: 1}, {X: 3, Y: 15},
}

// CactusHull is the obstacle outline in sprite pixels, origin at the
// bottom-left corner of a 54x315 sprite.
var CactusHull = Polygon{
	{X: 3, Y: 0}, {X: 5, Y: 309}, {X: 16, Y: 315},
	{X: 39, Y: 315}, {X: 51, Y: 306}, {X: 49, Y: 1},
}

// Centered shifts a sprite-space outline so the sprite's center is the origin.
func (p Polygon) Centered(w, h float64) Polygon {
	offset := core.V(w/2, h/2)
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = v.Sub(offset)
	}
	return out
}

// Scaled stretches the polygon by sx and sy around the origin.
func (p Polygon) Scaled(sx, sy float64) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = core.V(v.X*sx, v.Y*sy)
	}
	return out
}

// Transform rotates the polygon by angle around the origin, then moves it to
// pos.
func (p Polygon) Transform(pos core.Vec2, angle float64) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = v.Rotate(angle).Add(pos)
	}
	return out
}

// Bounds returns the axis-aligned box around the polygon.
func (p Polygon) Bounds() core.Box {
	if len(p) == 0 {
		return core.Box{}
	}
	b := core.Box{Min: p[0], Max: p[0]}
	for _, v := range p[1:] {
		b.Min.X = min(b.Min.X, v.X)
		b.Min.Y = min(b.Min.Y, v.Y)
		b.Max.X = max(b.Max.X, v.X)
		b.Max.Y = max(b.Max.Y, v.Y)
	}
	return b
}

// axes returns the edge normals used as separating axis candidates.
func (p Polygon) axes() []core.Vec2 {
	n := len(p)
	switch {
	case n < 2:
		return nil
	case n == 2:
		edge := p[1].Sub(p[0])
		return []core.Vec2{edge.Perp(), edge}
	}
	out := make([]core.Vec2, 0, n)
	for i := range p {
		edge := p[(i+1)%n].Sub(p[i])
		out = append(out, edge.Perp())
	}
	return out
}

func (p Polygon) project(axis core.Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range p {
		d := v.Dot(axis)
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo, hi
}

// Overlaps reports whether two convex polygons intersect. Touching counts.
func Overlaps(a, b Polygon) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for _, axes := range [][]core.Vec2{a.axes(), b.axes()} {
		for _, axis := range axes {
			if axis == (core.Vec2{}) {
				continue
			}
			aLo, aHi := a.project(axis)
			bLo, bHi := b.project(axis)
			if aHi < bLo || bHi < aLo {
				return false
			}
		}
	}
	return true
}
