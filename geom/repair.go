package geom

// Repair resolves self-touching rings, the lattice equivalent of a
// zero-width buffer fixup. Boundary tracing over pixels can only
// self-touch at a repeated vertex (a pinch), so the ring is split at
// each pinch into independent sub-rings. Zero-area parts are dropped.
// An empty result means the candidate is unusable and should be
// discarded by the caller.
func Repair(p Polygon) Geometry {
	if len(p.Ring) < 4 || !p.IsClosed() {
		return Geometry{}
	}
	open := append([]Point(nil), p.Ring[:len(p.Ring)-1]...)
	var parts []Polygon
	for _, part := range splitPinches(open) {
		poly := closeRing(part)
		if len(poly.Ring) >= 4 && poly.SignedArea() != 0 {
			parts = append(parts, poly)
		}
	}
	return Many(parts)
}

// splitPinches recursively cuts an open ring at its first repeated
// vertex until every part is free of duplicates.
func splitPinches(open []Point) [][]Point {
	index := make(map[Point]int, len(open))
	for i, pt := range open {
		if j, dup := index[pt]; dup {
			// One lobe is open[j:i], the rest wraps around the pinch.
			lobe := append([]Point(nil), open[j:i]...)
			rest := append(append([]Point(nil), open[:j]...), open[i:]...)
			out := splitPinches(lobe)
			return append(out, splitPinches(rest)...)
		}
		index[pt] = i
	}
	return [][]Point{open}
}

func closeRing(open []Point) Polygon {
	if len(open) == 0 {
		return Polygon{}
	}
	ring := make([]Point, 0, len(open)+1)
	ring = append(ring, open...)
	ring = append(ring, open[0])
	return Polygon{Ring: ring}
}
