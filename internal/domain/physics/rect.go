// Package physics provides the axis-aligned collision primitives shared by
// every moving entity: rects, the two-pass resolver and floor probes.
package physics

import "math"

// Vec is a 2D vector in world units.
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v*s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rect is an axis-aligned box. X/Y is the top-left corner; Y grows downward.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Overlaps reports whether a and b intersect. Touching edges do not overlap.
func Overlaps(a, b Rect) bool {
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// OverlapsAny reports whether r intersects any of solids.
func OverlapsAny(r Rect, solids []Rect) bool {
	for _, s := range solids {
		if Overlaps(r, s) {
			return true
		}
	}
	return false
}

// OverlapsCircle reports whether r intersects the circle at c with radius
// radius. Contact at exactly radius counts as overlap.
func OverlapsCircle(r Rect, c Vec, radius float64) bool {
	closestX := math.Max(r.X, math.Min(c.X, r.Right()))
	closestY := math.Max(r.Y, math.Min(c.Y, r.Bottom()))
	dx := c.X - closestX
	dy := c.Y - closestY
	return dx*dx+dy*dy <= radius*radius
}
