package raster

import (
	"fmt"
	"math"
)

var nan32 = float32(math.NaN())

// Thresholds are the ascending NDVI-drop magnitudes separating the
// severity tiers. Comparisons are strict: a drop exactly at a
// threshold does not escalate.
type Thresholds struct {
	Low    float64
	Medium float64
	High   float64
}

// Validate rejects non-ascending threshold triples.
func (t Thresholds) Validate() error {
	if !(t.Low < t.Medium && t.Medium < t.High) {
		return fmt.Errorf("thresholds must be ascending, got low=%g medium=%g high=%g",
			t.Low, t.Medium, t.High)
	}
	return nil
}

// ComputeNDVI computes (nir - red) / (nir + red) per cell. Where the
// band sum is not positive the cell is NaN: a division by zero must
// stay "undefined", never a synthetic zero.
func ComputeNDVI(red, nir *Grid) (*Grid, error) {
	if err := checkShapes(red, nir, "ComputeNDVI"); err != nil {
		return nil, err
	}
	out := NewGrid(red.Height, red.Width)
	for i := range red.Data {
		r := float64(red.Data[i])
		n := float64(nir.Data[i])
		sum := n + r
		if sum > 0 {
			out.Data[i] = float32((n - r) / sum)
		} else {
			out.Data[i] = nan32
		}
	}
	return out, nil
}

// Diff computes after - before elementwise. NaN in either input
// propagates to the output cell. Negative values denote vegetation loss.
func Diff(before, after *Grid) (*Grid, error) {
	if err := checkShapes(before, after, "Diff"); err != nil {
		return nil, err
	}
	out := NewGrid(before.Height, before.Width)
	for i := range before.Data {
		out.Data[i] = after.Data[i] - before.Data[i]
	}
	return out, nil
}

// Classify maps per-cell NDVI change to severity codes. The drop is
// -diff, positive where vegetation was lost. NaN cells classify to 0.
func Classify(diff *Grid, t Thresholds) (*SeverityGrid, error) {
	if diff == nil {
		return nil, fmt.Errorf("Classify: nil grid")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	sev := NewSeverityGrid(diff.Height, diff.Width)
	for i, d := range diff.Data {
		drop := -float64(d)
		if math.IsNaN(drop) {
			continue
		}
		switch {
		case drop > t.High:
			sev.Data[i] = 3
		case drop > t.Medium:
			sev.Data[i] = 2
		case drop > t.Low:
			sev.Data[i] = 1
		}
	}
	return sev, nil
}
