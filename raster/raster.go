package raster

import "fmt"

// Grid is a row-major float32 raster. Cells with no data hold NaN.
// The detection pipeline only ever reads input grids; every transform
// allocates a new one.
type Grid struct {
	Height int
	Width  int
	Data   []float32
}

// NewGrid allocates a zeroed height x width grid.
func NewGrid(height, width int) *Grid {
	return &Grid{
		Height: height,
		Width:  width,
		Data:   make([]float32, height*width),
	}
}

// At returns the cell value at (row, col).
func (g *Grid) At(row, col int) float32 {
	return g.Data[row*g.Width+col]
}

// Set writes the cell value at (row, col).
func (g *Grid) Set(row, col int, v float32) {
	g.Data[row*g.Width+col] = v
}

// SameShape reports whether two grids have identical dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return g.Height == o.Height && g.Width == o.Width
}

func checkShapes(a, b *Grid, what string) error {
	if a == nil || b == nil {
		return fmt.Errorf("%s: nil grid", what)
	}
	if !a.SameShape(b) {
		return fmt.Errorf("%s: shape mismatch %dx%d vs %dx%d",
			what, a.Height, a.Width, b.Height, b.Width)
	}
	return nil
}

// SeverityGrid holds per-cell severity codes: 0 none, 1 low, 2 medium, 3 high.
type SeverityGrid struct {
	Height int
	Width  int
	Data   []uint8
}

// NewSeverityGrid allocates a zeroed severity grid.
func NewSeverityGrid(height, width int) *SeverityGrid {
	return &SeverityGrid{
		Height: height,
		Width:  width,
		Data:   make([]uint8, height*width),
	}
}

// At returns the severity code at (row, col).
func (s *SeverityGrid) At(row, col int) uint8 {
	return s.Data[row*s.Width+col]
}

// Geotransform is the affine mapping from pixel (col, row) to
// geographic (x, y):
//
//	x = A*col + B*row + C
//	y = D*col + E*row + F
type Geotransform struct {
	A, B, C float64
	D, E, F float64
}

// FromBounds builds the north-up geotransform for a bbox
// [west, south, east, north] covering a width x height grid.
func FromBounds(west, south, east, north float64, width, height int) Geotransform {
	return Geotransform{
		A: (east - west) / float64(width),
		B: 0,
		C: west,
		D: 0,
		E: -(north - south) / float64(height),
		F: north,
	}
}

// Apply maps fractional pixel coordinates to geographic coordinates.
// Grid-point (0,0) is the outer corner of the top-left pixel.
func (t Geotransform) Apply(col, row float64) (x, y float64) {
	x = t.A*col + t.B*row + t.C
	y = t.D*col + t.E*row + t.F
	return x, y
}
