// Package detection turns a classified severity raster into
// geolocated deforestation patches: sieve, polygonize, merge,
// simplify, estimate area, and score.
package detection

import (
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"go-canopy/geom"
	"go-canopy/raster"
	"go-canopy/types"
)

const (
	// Simplification tolerance in degrees, roughly 10 m at the equator.
	simplifyTolerance = 10.0 / 111320.0

	confidenceBoostCap  = 0.12
	confidenceBoostRate = 0.1
)

// confidenceBase by severity code. Higher severity starts higher, so
// confidence is non-decreasing in severity for the same drop.
var confidenceBase = map[uint8]float64{1: 0.55, 2: 0.72, 3: 0.88}

// Config are the externally supplied extraction options.
type Config struct {
	// MinSizePixels is the sieve threshold: 4-connected components
	// smaller than this are treated as noise. Must be >= 1.
	MinSizePixels int
	// MinPatchHectares filters scored patches by estimated area.
	// Must be >= 0.
	MinPatchHectares float64
}

// ExtractPatches converts a severity raster into an ordered patch
// list: HIGH patches first, then MEDIUM, then LOW, preserving
// insertion order within each tier. The three tiers touch disjoint
// masks of the read-only inputs, so they are fanned out to one
// goroutine each and joined in tier order.
//
// Invalid inputs are rejected before any computation. Per-polygon
// geometric artifacts are repaired or dropped silently and never
// abort the run; an empty severity raster yields an empty list.
func ExtractPatches(sev *raster.SeverityGrid, diff *raster.Grid, gt raster.Geotransform, cfg Config) ([]types.PatchInfo, error) {
	if sev == nil || diff == nil {
		return nil, fmt.Errorf("extract: nil raster")
	}
	if sev.Height != diff.Height || sev.Width != diff.Width {
		return nil, fmt.Errorf("extract: shape mismatch %dx%d vs %dx%d",
			sev.Height, sev.Width, diff.Height, diff.Width)
	}
	if cfg.MinSizePixels < 1 {
		return nil, fmt.Errorf("extract: min_size_pixels must be >= 1, got %d", cfg.MinSizePixels)
	}
	if cfg.MinPatchHectares < 0 {
		return nil, fmt.Errorf("extract: min_patch_hectares must be >= 0, got %g", cfg.MinPatchHectares)
	}

	tiers := []uint8{3, 2, 1} // HIGH first: drawing priority downstream
	results := make([][]types.PatchInfo, len(tiers))
	var wg sync.WaitGroup
	for i, value := range tiers {
		wg.Add(1)
		go func(slot int, value uint8) {
			defer wg.Done()
			results[slot] = extractTier(sev, diff, gt, cfg, value)
		}(i, value)
	}
	wg.Wait()

	patches := []types.PatchInfo{}
	for _, tier := range results {
		patches = append(patches, tier...)
	}
	return patches, nil
}

// extractTier runs the per-tier chain: components, sieve, polygonize,
// union, simplify, area filter, score.
func extractTier(sev *raster.SeverityGrid, diff *raster.Grid, gt raster.Geotransform, cfg Config, value uint8) []types.PatchInfo {
	comps := sieve(components(sev, value), cfg.MinSizePixels)
	if len(comps) == 0 {
		return nil
	}

	var gridPolys []geom.Polygon
	for _, cells := range comps {
		gridPolys = append(gridPolys, blobPolygons(cells, sev.Width)...)
	}
	merged := geom.Union(gridPolys)
	if merged.Empty() {
		return nil
	}

	drop := tierMeanDrop(sev, diff, value)
	label := types.SeverityFromCode(value)
	conf := confidence(value, drop)

	var out []types.PatchInfo
	for _, gp := range merged.Polygons {
		final, ok := finalizePolygon(project(gp, gt))
		if !ok {
			continue
		}
		area := geom.AreaHectares(final)
		if area < cfg.MinPatchHectares {
			continue
		}
		centroid := final.Centroid()
		out = append(out, types.PatchInfo{
			ID:           uuid.NewString()[:8],
			Coordinates:  [][][]float64{ringCoords(final)},
			Centroid:     []float64{round(centroid.Y, 6), round(centroid.X, 6)},
			AreaHectares: round(area, 2),
			Confidence:   conf,
			Severity:     label,
			NdviDrop:     round(drop, 3),
		})
	}
	return out
}

// finalizePolygon simplifies a projected ring and resolves geometry
// artifacts: a multi-part simplification keeps only its largest part,
// anything unrepairable is dropped.
func finalizePolygon(p geom.Polygon) (geom.Polygon, bool) {
	simplified := geom.Simplify(p, simplifyTolerance)
	if simplified.Empty() {
		return geom.Polygon{}, false
	}
	final := simplified.Largest()
	if !final.IsValid() {
		fixed := geom.Repair(final)
		if fixed.Empty() {
			return geom.Polygon{}, false
		}
		final = fixed.Largest()
		if !final.IsValid() {
			return geom.Polygon{}, false
		}
	}
	return final, true
}

// tierMeanDrop is the mean NDVI change over the tier's own cells,
// skipping NaN. The tier-wide cell mean is used instead of a
// per-polygon mean deliberately: polygon boundaries postdate the
// union and simplify steps, while the cell mean stays stable and
// reproducible regardless of simplification.
func tierMeanDrop(sev *raster.SeverityGrid, diff *raster.Grid, value uint8) float64 {
	var cells []float64
	for i, v := range sev.Data {
		if v != value {
			continue
		}
		d := float64(diff.Data[i])
		if !math.IsNaN(d) {
			cells = append(cells, d)
		}
	}
	if len(cells) == 0 {
		return 0
	}
	return stat.Mean(cells, nil)
}

// confidence blends the severity prior with the drop magnitude,
// capped at 1.0.
func confidence(value uint8, drop float64) float64 {
	base, ok := confidenceBase[value]
	if !ok {
		base = 0.5
	}
	boost := math.Min(confidenceBoostCap, math.Abs(drop)*confidenceBoostRate)
	return round(math.Min(1.0, base+boost), 2)
}

func ringCoords(p geom.Polygon) [][]float64 {
	ring := make([][]float64, len(p.Ring))
	for i, pt := range p.Ring {
		ring[i] = []float64{round(pt.X, 6), round(pt.Y, 6)}
	}
	return ring
}

func round(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
