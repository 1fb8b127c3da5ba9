package geom

import (
	"math"
	"sort"
)

type gridPoint struct {
	X, Y int
}

type gridEdge struct {
	From, To gridPoint
}

// Union dissolves shared boundaries among axis-aligned rings whose
// vertices lie on the integer lattice (pixel grid space). Every ring
// is decomposed into directed unit edges; an edge and its reverse
// cancel, so boundaries shared by touching polygons vanish and the
// remaining edges re-link into the union's outer rings. Hole rings
// (opposite winding) are dropped: holes are not modeled for
// raster-sourced regions. Self-touching results are resolved through
// the pinch repair fixup.
//
// Inputs must wind in pixel orientation (positive shoelace sum with
// Y as the row axis); the polygonizer and this function both emit
// that winding, so unions compose.
func Union(polys []Polygon) Geometry {
	edges := make(map[gridEdge]struct{})
	for _, p := range polys {
		ring := p.Ring
		for i := 0; i+1 < len(ring); i++ {
			for _, e := range unitSteps(ring[i], ring[i+1]) {
				rev := gridEdge{From: e.To, To: e.From}
				if _, ok := edges[rev]; ok {
					delete(edges, rev)
				} else {
					edges[e] = struct{}{}
				}
			}
		}
	}

	var outers []Polygon
	for _, ring := range linkEdges(edges) {
		if ring.SignedArea() <= 0 {
			continue
		}
		for _, part := range Repair(ring).Polygons {
			if part.SignedArea() > 0 {
				outers = append(outers, part)
			}
		}
	}
	return Many(outers)
}

// UnitSquare is the pixel-orientation ring of the cell whose top-left
// corner is grid point (col, row).
func UnitSquare(col, row int) Polygon {
	x, y := float64(col), float64(row)
	return Polygon{Ring: []Point{
		{X: x, Y: y},
		{X: x + 1, Y: y},
		{X: x + 1, Y: y + 1},
		{X: x, Y: y + 1},
		{X: x, Y: y},
	}}
}

// unitSteps splits an axis-aligned lattice segment into directed unit
// edges. Non-lattice or diagonal segments yield nothing; union inputs
// are always traced lattice rings.
func unitSteps(a, b Point) []gridEdge {
	ax, ay := int(math.Round(a.X)), int(math.Round(a.Y))
	bx, by := int(math.Round(b.X)), int(math.Round(b.Y))
	dx, dy := sign(bx-ax), sign(by-ay)
	if (dx != 0 && dy != 0) || (dx == 0 && dy == 0) {
		return nil
	}
	var steps []gridEdge
	for x, y := ax, ay; x != bx || y != by; x, y = x+dx, y+dy {
		steps = append(steps, gridEdge{
			From: gridPoint{X: x, Y: y},
			To:   gridPoint{X: x + dx, Y: y + dy},
		})
	}
	return steps
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// linkEdges chains the surviving directed edges into closed rings.
// Edge order is fixed by sorting, so the output is deterministic for
// a given input regardless of map iteration order. At a vertex with
// two departures (a pinch between diagonal lobes) the sharpest right
// turn is taken, which keeps each lobe's ring simple.
func linkEdges(edges map[gridEdge]struct{}) []Polygon {
	all := make([]gridEdge, 0, len(edges))
	for e := range edges {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.From.Y != b.From.Y {
			return a.From.Y < b.From.Y
		}
		if a.From.X != b.From.X {
			return a.From.X < b.From.X
		}
		if a.To.Y != b.To.Y {
			return a.To.Y < b.To.Y
		}
		return a.To.X < b.To.X
	})

	outgoing := make(map[gridPoint][]int)
	for i, e := range all {
		outgoing[e.From] = append(outgoing[e.From], i)
	}
	used := make([]bool, len(all))

	var rings []Polygon
	for i := range all {
		if used[i] {
			continue
		}
		start := all[i].From
		cur := all[i]
		used[i] = true
		pts := []gridPoint{cur.From, cur.To}

		for cur.To != start {
			next, ok := pickNext(cur, outgoing[cur.To], all, used)
			if !ok {
				pts = nil // unbalanced vertex, abandon the walk
				break
			}
			used[next] = true
			cur = all[next]
			pts = append(pts, cur.To)
		}
		if ring, ok := ringFromWalk(pts); ok {
			rings = append(rings, ring)
		}
	}
	return rings
}

// pickNext chooses the unused departure with the sharpest right turn
// relative to the incoming heading, never reversing.
func pickNext(in gridEdge, candidates []int, all []gridEdge, used []bool) (int, bool) {
	dx := in.To.X - in.From.X
	dy := in.To.Y - in.From.Y
	best := -1
	bestScore := -3
	for _, idx := range candidates {
		if used[idx] {
			continue
		}
		e := all[idx]
		cx := e.To.X - e.From.X
		cy := e.To.Y - e.From.Y
		if cx == -dx && cy == -dy {
			continue // reversal would trace a zero-width spike
		}
		cross := dx*cy - dy*cx
		score := cross // +1 right, 0 straight, -1 left in row-down axes
		if score > bestScore {
			bestScore = score
			best = idx
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// ringFromWalk collapses collinear runs and closes the ring. Walks
// with fewer than three corners are degenerate and dropped.
func ringFromWalk(pts []gridPoint) (Polygon, bool) {
	if len(pts) < 4 {
		return Polygon{}, false
	}
	open := pts[:len(pts)-1] // the walk ends back at its start
	var corners []Point
	n := len(open)
	for i := 0; i < n; i++ {
		prev := open[(i-1+n)%n]
		cur := open[i]
		next := open[(i+1)%n]
		turn := (cur.X-prev.X)*(next.Y-cur.Y) - (cur.Y-prev.Y)*(next.X-cur.X)
		if turn != 0 {
			corners = append(corners, Point{X: float64(cur.X), Y: float64(cur.Y)})
		}
	}
	if len(corners) < 3 {
		return Polygon{}, false
	}
	return closeRing(corners), true
}
