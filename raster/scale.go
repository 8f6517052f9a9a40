package raster

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Scale returns img resampled by factor with Catmull-Rom filtering. A factor
// of 1 returns img unchanged. The result is at least one pixel in each
// dimension.
func Scale(img image.Image, factor float64) image.Image {
	if factor == 1 || factor <= 0 {
		return img
	}
	b := img.Bounds()
	w := max(1, int(math.Round(float64(b.Dx())*factor)))
	h := max(1, int(math.Round(float64(b.Dy())*factor)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
