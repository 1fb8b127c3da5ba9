package raster

import (
	"math"
	"testing"
)

func TestComputeNDVIValues(t *testing.T) {
	red := NewGrid(1, 4)
	nir := NewGrid(1, 4)

	// Equal bands: index is 0.
	red.Set(0, 0, 0.2)
	nir.Set(0, 0, 0.2)
	// NIR dominates: index approaches 1.
	red.Set(0, 1, 0.01)
	nir.Set(0, 1, 0.99)
	// Red dominates: negative index.
	red.Set(0, 2, 0.8)
	nir.Set(0, 2, 0.2)
	// Zero sum: undefined, must be NaN.
	red.Set(0, 3, 0)
	nir.Set(0, 3, 0)

	out, err := ComputeNDVI(red, nir)
	if err != nil {
		t.Fatalf("ComputeNDVI: %v", err)
	}

	if v := out.At(0, 0); v != 0 {
		t.Errorf("equal bands: got %g, want 0", v)
	}
	if v := out.At(0, 1); v < 0.97 {
		t.Errorf("nir-dominated: got %g, want near 1", v)
	}
	if v := out.At(0, 2); v >= 0 {
		t.Errorf("red-dominated: got %g, want negative", v)
	}
	if v := out.At(0, 3); !math.IsNaN(float64(v)) {
		t.Errorf("zero sum: got %g, want NaN", v)
	}
}

func TestComputeNDVIShapeMismatch(t *testing.T) {
	if _, err := ComputeNDVI(NewGrid(2, 2), NewGrid(2, 3)); err == nil {
		t.Fatal("expected shape mismatch error")
	}
	if _, err := ComputeNDVI(nil, NewGrid(2, 2)); err == nil {
		t.Fatal("expected nil grid error")
	}
}

func TestDiffAntisymmetry(t *testing.T) {
	a := NewGrid(2, 2)
	b := NewGrid(2, 2)
	vals := []float32{0.8, 0.6, 0.3, 0.9}
	for i, v := range vals {
		a.Data[i] = v
		b.Data[i] = vals[len(vals)-1-i]
	}

	ab, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	ba, err := Diff(b, a)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	for i := range ab.Data {
		if ab.Data[i] != -ba.Data[i] {
			t.Errorf("cell %d: diff(a,b)=%g, diff(b,a)=%g, not antisymmetric",
				i, ab.Data[i], ba.Data[i])
		}
	}
}

func TestDiffPropagatesNaN(t *testing.T) {
	a := NewGrid(1, 1)
	b := NewGrid(1, 1)
	a.Set(0, 0, nan32)
	b.Set(0, 0, 0.5)

	out, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !math.IsNaN(float64(out.At(0, 0))) {
		t.Errorf("got %g, want NaN", out.At(0, 0))
	}
}

func TestClassifyTiers(t *testing.T) {
	th := Thresholds{Low: 0.3, Medium: 0.4, High: 0.5}

	cases := []struct {
		name string
		diff float32
		want uint8
	}{
		{"no change", 0, 0},
		{"gain", 0.2, 0},
		{"below low", -0.25, 0},
		{"low", -0.35, 1},
		{"medium", -0.45, 2},
		{"high", -0.60, 3},
		{"deep drop", -0.95, 3},
	}
	for _, tc := range cases {
		g := NewGrid(1, 1)
		g.Set(0, 0, tc.diff)
		sev, err := Classify(g, th)
		if err != nil {
			t.Fatalf("%s: Classify: %v", tc.name, err)
		}
		if got := sev.At(0, 0); got != tc.want {
			t.Errorf("%s: diff=%g got code %d, want %d", tc.name, tc.diff, got, tc.want)
		}
	}
}

func TestClassifyExactThresholdDoesNotEscalate(t *testing.T) {
	th := Thresholds{Low: 0.3, Medium: 0.4, High: 0.5}
	g := NewGrid(1, 3)
	g.Set(0, 0, -0.3) // drop exactly at Low
	g.Set(0, 1, -0.4) // exactly at Medium
	g.Set(0, 2, -0.5) // exactly at High

	sev, err := Classify(g, th)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	want := []uint8{0, 1, 2}
	for i, w := range want {
		if got := sev.Data[i]; got != w {
			t.Errorf("cell %d: got code %d, want %d (strict comparison)", i, got, w)
		}
	}
}

func TestClassifyNaNIsBackground(t *testing.T) {
	g := NewGrid(1, 1)
	g.Set(0, 0, nan32)
	sev, err := Classify(g, Thresholds{Low: 0.3, Medium: 0.4, High: 0.5})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got := sev.At(0, 0); got != 0 {
		t.Errorf("NaN cell: got code %d, want 0", got)
	}
}

func TestClassifyRejectsBadThresholds(t *testing.T) {
	g := NewGrid(1, 1)
	if _, err := Classify(g, Thresholds{Low: 0.5, Medium: 0.4, High: 0.3}); err == nil {
		t.Fatal("expected error for descending thresholds")
	}
	if _, err := Classify(g, Thresholds{Low: 0.4, Medium: 0.4, High: 0.5}); err == nil {
		t.Fatal("expected error for equal thresholds")
	}
}

func TestFromBoundsRoundTrip(t *testing.T) {
	gt := FromBounds(-63.0, -10.5, -62.0, -10.0, 256, 256)

	x, y := gt.Apply(0, 0)
	if x != -63.0 || y != -10.0 {
		t.Errorf("top-left corner: got (%g, %g), want (-63, -10)", x, y)
	}
	x, y = gt.Apply(256, 256)
	if x != -62.0 || y != -10.5 {
		t.Errorf("bottom-right corner: got (%g, %g), want (-62, -10.5)", x, y)
	}
	if gt.E >= 0 {
		t.Errorf("north-up transform must have negative row step, got %g", gt.E)
	}
}
