package geom

import "math"

// Meters per degree of latitude (and of longitude at the equator).
const metersPerDegree = 111320.0

// AreaHectares estimates a geographic polygon's area by locally
// flattening the ring: coordinates are translated to their mean, then
// scaled to meters with longitude corrected by cos(centroid latitude),
// and the shoelace formula is applied. An equirectangular
// approximation, adequate for patches small relative to Earth's
// radius; not valid for polygons spanning many degrees.
func AreaHectares(p Polygon) float64 {
	ring := p.Ring
	if len(ring) < 4 {
		return 0
	}
	lngScale := metersPerDegree * math.Cos(p.Centroid().Y*math.Pi/180)
	latScale := metersPerDegree

	var meanX, meanY float64
	for _, pt := range ring {
		meanX += pt.X
		meanY += pt.Y
	}
	meanX /= float64(len(ring))
	meanY /= float64(len(ring))

	var sum float64
	for i := 0; i+1 < len(ring); i++ {
		x0 := (ring[i].X - meanX) * lngScale
		y0 := (ring[i].Y - meanY) * latScale
		x1 := (ring[i+1].X - meanX) * lngScale
		y1 := (ring[i+1].Y - meanY) * latScale
		sum += x0*y1 - x1*y0
	}
	areaM2 := math.Abs(sum) / 2
	return areaM2 / 10000
}
