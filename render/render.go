// Package render turns NDVI rasters into shareable images using a
// brown-to-green colormap. No-data cells render transparent.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"go-canopy/raster"
)

// Output width for served images; small demo grids get upscaled.
const targetWidth = 512

// Colormap stops from bare soil to dense canopy, blended in Lab space.
var rampStops = []struct {
	pos float64
	c   colorful.Color
}{
	{0.0, colorful.Color{R: 0.6, G: 0.3, B: 0.1}},
	{0.33, colorful.Color{R: 0.9, G: 0.9, B: 0.3}},
	{0.66, colorful.Color{R: 0.1, G: 0.6, B: 0.1}},
	{1.0, colorful.Color{R: 0.0, G: 0.3, B: 0.0}},
}

// rampColor interpolates the NDVI colormap at t in [0,1].
func rampColor(t float64) colorful.Color {
	t = math.Max(0, math.Min(1, t))
	for i := 0; i+1 < len(rampStops); i++ {
		lo, hi := rampStops[i], rampStops[i+1]
		if t <= hi.pos {
			span := hi.pos - lo.pos
			frac := 0.0
			if span > 0 {
				frac = (t - lo.pos) / span
			}
			return lo.c.BlendLab(hi.c, frac).Clamped()
		}
	}
	return rampStops[len(rampStops)-1].c
}

// NDVIImage maps the grid to colors, treating values as NDVI in [0,1]
// (negative values clamp to bare soil) and NaN as transparent, then
// upscales with nearest-neighbor so pixel boundaries stay crisp.
func NDVIImage(g *raster.Grid) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			v := float64(g.At(row, col))
			if math.IsNaN(v) {
				img.SetNRGBA(col, row, color.NRGBA{})
				continue
			}
			c := rampColor(v)
			r, gg, b := c.RGB255()
			img.SetNRGBA(col, row, color.NRGBA{R: r, G: gg, B: b, A: 255})
		}
	}
	if g.Width >= targetWidth {
		return img
	}
	return imaging.Resize(img, targetWidth, 0, imaging.NearestNeighbor)
}

// EncodePNG serializes the image as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeWebP serializes the image as lossless WebP.
func EncodeWebP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: true}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}
