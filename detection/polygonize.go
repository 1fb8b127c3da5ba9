package detection

import (
	"go-canopy/geom"
	"go-canopy/raster"
)

// blobPolygons traces one 4-connected blob into its boundary ring(s)
// in grid space by unioning the unit squares of its cells: every edge
// shared by two cells cancels, leaving exactly the pixel-boundary
// outline. Holes and zero-area artifacts are discarded inside the
// union; a self-touching outline comes back already split.
func blobPolygons(cells []int, width int) []geom.Polygon {
	squares := make([]geom.Polygon, 0, len(cells))
	for _, idx := range cells {
		squares = append(squares, geom.UnitSquare(idx%width, idx/width))
	}
	return geom.Union(squares).Polygons
}

// project maps a grid-space ring through the affine geotransform into
// geographic coordinates.
func project(p geom.Polygon, gt raster.Geotransform) geom.Polygon {
	ring := make([]geom.Point, len(p.Ring))
	for i, pt := range p.Ring {
		x, y := gt.Apply(pt.X, pt.Y)
		ring[i] = geom.Point{X: x, Y: y}
	}
	return geom.Polygon{Ring: ring}
}
