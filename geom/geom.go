// Package geom provides the small set of pure vector-geometry
// functions the patch extractor needs: ring validity, zero-width
// pinch repair, lattice polygon union, topology-preserving
// simplification, and curved-earth-aware area estimation.
package geom

import "math"

// Point is a 2-D coordinate. In grid space X is the column and Y the
// row of a pixel corner; in geographic space X is longitude and Y is
// latitude.
type Point struct {
	X float64
	Y float64
}

// Polygon is a single closed exterior ring: first and last vertex
// coincide and the ring has at least 4 vertices. Holes are not
// modeled; raster-sourced regions have none after union.
type Polygon struct {
	Ring []Point
}

// Kind discriminates the Geometry variant.
type Kind int

const (
	// Single is one simple polygon.
	Single Kind = iota
	// Multi is a collection of simple polygons.
	Multi
)

// Geometry is the tagged "one polygon or several" variant produced by
// repair and simplification. Polygons is never empty for a valid value;
// an empty Geometry (no polygons) signals a dropped candidate.
type Geometry struct {
	Kind     Kind
	Polygons []Polygon
}

// One wraps a single polygon.
func One(p Polygon) Geometry {
	return Geometry{Kind: Single, Polygons: []Polygon{p}}
}

// Many wraps a polygon list, collapsing to Single when there is one.
func Many(ps []Polygon) Geometry {
	if len(ps) == 1 {
		return Geometry{Kind: Single, Polygons: ps}
	}
	return Geometry{Kind: Multi, Polygons: ps}
}

// Empty reports whether the geometry carries no polygons.
func (g Geometry) Empty() bool {
	return len(g.Polygons) == 0
}

// Largest returns the constituent polygon with the greatest absolute
// area. Only meaningful for non-empty geometries.
func (g Geometry) Largest() Polygon {
	best := 0
	bestArea := -1.0
	for i, p := range g.Polygons {
		if a := math.Abs(p.SignedArea()); a > bestArea {
			bestArea = a
			best = i
		}
	}
	return g.Polygons[best]
}

// SignedArea is the shoelace sum over the raw ring coordinates.
// The sign encodes winding; callers that need a magnitude take Abs.
func (p Polygon) SignedArea() float64 {
	ring := p.Ring
	if len(ring) < 4 {
		return 0
	}
	var sum float64
	for i := 0; i+1 < len(ring); i++ {
		sum += ring[i].X*ring[i+1].Y - ring[i+1].X*ring[i].Y
	}
	return sum / 2
}

// Centroid is the area-weighted ring centroid, falling back to the
// vertex mean for degenerate (zero-area) rings.
func (p Polygon) Centroid() Point {
	ring := p.Ring
	a := p.SignedArea()
	if a == 0 || len(ring) < 4 {
		var m Point
		n := len(ring)
		if n > 1 {
			n-- // skip the closing duplicate
		}
		if n == 0 {
			return m
		}
		for _, pt := range ring[:n] {
			m.X += pt.X
			m.Y += pt.Y
		}
		m.X /= float64(n)
		m.Y /= float64(n)
		return m
	}
	var cx, cy float64
	for i := 0; i+1 < len(ring); i++ {
		cross := ring[i].X*ring[i+1].Y - ring[i+1].X*ring[i].Y
		cx += (ring[i].X + ring[i+1].X) * cross
		cy += (ring[i].Y + ring[i+1].Y) * cross
	}
	return Point{X: cx / (6 * a), Y: cy / (6 * a)}
}

// IsClosed reports whether the first and last ring vertices coincide.
func (p Polygon) IsClosed() bool {
	n := len(p.Ring)
	return n >= 4 && p.Ring[0] == p.Ring[n-1]
}

// IsValid reports whether the ring is closed, has at least 4 vertices,
// encloses area, and is simple (no repeated vertices, no segment
// crossings).
func (p Polygon) IsValid() bool {
	if !p.IsClosed() {
		return false
	}
	if p.SignedArea() == 0 {
		return false
	}
	open := p.Ring[:len(p.Ring)-1]
	seen := make(map[Point]struct{}, len(open))
	for _, pt := range open {
		if _, dup := seen[pt]; dup {
			return false
		}
		seen[pt] = struct{}{}
	}
	return !p.selfIntersects()
}

// selfIntersects tests every non-adjacent segment pair for a proper
// crossing. Quadratic, but rings here stay small after collinear
// collapse and simplification.
func (p Polygon) selfIntersects() bool {
	ring := p.Ring
	n := len(ring) - 1 // segment count
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // adjacent through the closure
			}
			if segmentsCross(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return true
			}
		}
	}
	return false
}

func segmentsCross(a, b, c, d Point) bool {
	d1 := orient(c, d, a)
	d2 := orient(c, d, b)
	d3 := orient(a, b, c)
	d4 := orient(a, b, d)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
