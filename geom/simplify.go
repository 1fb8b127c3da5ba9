package geom

import "math"

// Simplify reduces stairstep vertices with Douglas-Peucker at the
// given tolerance (same units as the coordinates) while preserving
// topology: the result stays closed, keeps at least 4 vertices, and
// is never self-intersecting. If simplification degenerates the ring
// the original polygon is returned unchanged; if it self-touches, the
// pinch repair runs and the result may be Multi (the caller keeps the
// largest part).
func Simplify(p Polygon, tolerance float64) Geometry {
	ring := p.Ring
	if len(ring) <= 5 || !p.IsClosed() {
		return One(p)
	}
	open := ring[:len(ring)-1]

	// Anchor the closed ring at vertex 0 and the vertex farthest from
	// it, then simplify the two chains independently.
	far := 1
	farDist := 0.0
	for i := 1; i < len(open); i++ {
		d := dist2(open[0], open[i])
		if d > farDist {
			farDist = d
			far = i
		}
	}

	first := douglasPeucker(open[:far+1], tolerance)
	second := append(append([]Point(nil), open[far:]...), open[0])
	second = douglasPeucker(second, tolerance)

	combined := make([]Point, 0, len(first)+len(second)-1)
	combined = append(combined, first[:len(first)-1]...)
	combined = append(combined, second[:len(second)-1]...)
	if len(combined) < 3 {
		return One(p)
	}
	out := closeRing(combined)
	if len(out.Ring) < 4 || out.SignedArea() == 0 {
		return One(p)
	}
	if out.IsValid() {
		return One(out)
	}
	fixed := Repair(out)
	if fixed.Empty() {
		return One(p)
	}
	return fixed
}

// douglasPeucker simplifies an open chain, always keeping both ends.
func douglasPeucker(chain []Point, tolerance float64) []Point {
	if len(chain) <= 2 {
		return chain
	}
	end := len(chain) - 1
	maxDist := 0.0
	index := 0
	for i := 1; i < end; i++ {
		d := perpendicularDistance(chain[i], chain[0], chain[end])
		if d > maxDist {
			maxDist = d
			index = i
		}
	}
	if maxDist > tolerance {
		left := douglasPeucker(chain[:index+1], tolerance)
		right := douglasPeucker(chain[index:], tolerance)
		out := make([]Point, 0, len(left)+len(right)-1)
		out = append(out, left[:len(left)-1]...)
		out = append(out, right...)
		return out
	}
	return []Point{chain[0], chain[end]}
}

func perpendicularDistance(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 && dy == 0 {
		return math.Sqrt(dist2(p, a))
	}
	num := math.Abs(dy*p.X - dx*p.Y + b.X*a.Y - b.Y*a.X)
	return num / math.Sqrt(dx*dx+dy*dy)
}

func dist2(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
