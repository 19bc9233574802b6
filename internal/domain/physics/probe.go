package physics

import "sort"

// FloorBelow returns the highest solid top at or below y among solids that
// horizontally overlap [x0, x1). Solids whose top lies above y-tolerance are
// ignored.
func FloorBelow(x0, x1, y, tolerance float64, solids []Rect) (float64, bool) {
	best := 0.0
	found := false
	for _, s := range solids {
		if s.X >= x1 || s.Right() <= x0 {
			continue
		}
		if s.Y < y-tolerance {
			continue
		}
		if !found || s.Y < best {
			best = s.Y
			found = true
		}
	}
	return best, found
}

// FloorCovers reports whether [x0, x1) is fully covered by solid tops whose
// height is within tolerance of y. Gaps narrower than 1e-6 are ignored.
func FloorCovers(x0, x1, y, tolerance float64, solids []Rect) bool {
	if x1 <= x0 {
		return true
	}

	spans := make([][2]float64, 0, 4)
	for _, s := range solids {
		if s.X >= x1 || s.Right() <= x0 {
			continue
		}
		if s.Y < y-tolerance || s.Y > y+tolerance {
			continue
		}
		spans = append(spans, [2]float64{s.X, s.Right()})
	}
	if len(spans) == 0 {
		return false
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })

	const eps = 1e-6
	covered := x0
	for _, sp := range spans {
		if sp[0] > covered+eps {
			return false
		}
		if sp[1] > covered {
			covered = sp[1]
		}
		if covered >= x1-eps {
			return true
		}
	}
	return covered >= x1-eps
}
