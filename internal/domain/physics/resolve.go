package physics

// DefaultDelta is substituted for a non-positive tick delta.
const DefaultDelta = 1.0 / 60.0

// SafeDelta returns dt, or DefaultDelta when dt is zero or negative.
func SafeDelta(dt float64) float64 {
	if dt <= 0 {
		return DefaultDelta
	}
	return dt
}

// Result is the outcome of Resolve. VX/VY are the displacement actually
// applied on each axis; a blocked axis reports 0.
type Result struct {
	X, Y     float64
	VX, VY   float64
	Grounded bool
}

// Resolve moves rect by (dx, dy) against solids. The horizontal axis is
// applied and corrected first, then the vertical axis. Solids are visited in
// slice order and every overlapping solid clamps the box to its near edge, so
// the last overlapping solid wins. Large displacements can tunnel through
// thin solids.
func Resolve(rect Rect, dx, dy float64, solids []Rect) Result {
	res := Result{X: rect.X, Y: rect.Y, VX: dx, VY: dy}

	res.X += dx
	for _, s := range solids {
		box := Rect{X: res.X, Y: res.Y, W: rect.W, H: rect.H}
		if !Overlaps(box, s) {
			continue
		}
		if dx > 0 {
			res.X = s.X - rect.W
		} else if dx < 0 {
			res.X = s.X + s.W
		}
		res.VX = 0
	}

	res.Y += dy
	for _, s := range solids {
		box := Rect{X: res.X, Y: res.Y, W: rect.W, H: rect.H}
		if !Overlaps(box, s) {
			continue
		}
		if dy > 0 {
			res.Y = s.Y - rect.H
			res.VY = 0
			res.Grounded = true
		} else if dy < 0 {
			res.Y = s.Y + s.H
			res.VY = 0
		}
	}

	return res
}
