package demo

import (
	"math"
	"testing"
)

func TestGenerateSceneDeterministic(t *testing.T) {
	a := GenerateScene(nil)
	b := GenerateScene(nil)

	for i := range a.BeforeNDVI.Data {
		if a.BeforeNDVI.Data[i] != b.BeforeNDVI.Data[i] {
			t.Fatalf("before layer differs at %d: %g vs %g", i, a.BeforeNDVI.Data[i], b.BeforeNDVI.Data[i])
		}
		if a.AfterNDVI.Data[i] != b.AfterNDVI.Data[i] {
			t.Fatalf("after layer differs at %d: %g vs %g", i, a.AfterNDVI.Data[i], b.AfterNDVI.Data[i])
		}
	}
}

func TestGenerateSceneRanges(t *testing.T) {
	s := GenerateScene(nil)

	for i, v := range s.BeforeNDVI.Data {
		if v < 0.4 || v > 0.95 {
			t.Fatalf("before cell %d out of range: %g", i, v)
		}
	}
	for i, v := range s.AfterNDVI.Data {
		if v < 0.05 || v > 0.95 {
			t.Fatalf("after cell %d out of range: %g", i, v)
		}
	}
}

func TestGenerateSceneClearingsLowerNDVI(t *testing.T) {
	s := GenerateScene(nil)

	var beforeSum, afterSum float64
	for i := range s.BeforeNDVI.Data {
		beforeSum += float64(s.BeforeNDVI.Data[i])
		afterSum += float64(s.AfterNDVI.Data[i])
	}
	if afterSum >= beforeSum {
		t.Errorf("clearings should lower total NDVI: before %g, after %g", beforeSum, afterSum)
	}

	// The center of the largest clearing drops hard.
	c := clearings[0]
	drop := float64(s.BeforeNDVI.At(c.row, c.col) - s.AfterNDVI.At(c.row, c.col))
	if drop < 0.3 {
		t.Errorf("clearing center drop: got %g, want >= 0.3", drop)
	}
	// Far from every clearing nothing changes.
	if s.BeforeNDVI.At(0, 0) != s.AfterNDVI.At(0, 0) {
		t.Error("untouched forest cell changed")
	}
}

func TestGenerateSceneGeoreferencing(t *testing.T) {
	s := GenerateScene(nil)
	if s.CRS != "EPSG:4326" {
		t.Errorf("CRS: got %s", s.CRS)
	}

	x, y := s.Transform.Apply(0, 0)
	if x != DemoBBox[0] || y != DemoBBox[3] {
		t.Errorf("origin: got (%g, %g), want (%g, %g)", x, y, DemoBBox[0], DemoBBox[3])
	}
	x, y = s.Transform.Apply(float64(gridW), float64(gridH))
	if math.Abs(x-DemoBBox[2]) > 1e-9 || math.Abs(y-DemoBBox[1]) > 1e-9 {
		t.Errorf("far corner: got (%g, %g), want (%g, %g)", x, y, DemoBBox[2], DemoBBox[1])
	}

	custom := []float64{10, 20, 11, 21}
	s2 := GenerateScene(custom)
	if x, y := s2.Transform.Apply(0, 0); x != 10 || y != 21 {
		t.Errorf("custom bbox origin: got (%g, %g), want (10, 21)", x, y)
	}
}
