package textmation

import "image"

// Rasterizer is the raster collaborator the renderer draws through. The
// raster sub-package provides an implementation backed by gogpu/gg.
type Rasterizer interface {
	// NewImage creates an image of the given size filled with background.
	// The caller owns the image and releases any resources it holds.
	NewImage(size Size, background Color) (Image, error)

	// LoadFont returns the font family at the given size. Caching is up to
	// the implementation.
	LoadFont(family string, size float64) (Font, error)
}

// Image is one rendered frame. Positions are in image pixels.
type Image interface {
	DrawRect(bounds Bounds, fill, outline Color, outlineWidth float64) error
	DrawCircle(center Point, radius float64, fill, outline Color, outlineWidth float64) error
	DrawEllipse(center Point, radiusX, radiusY float64, fill, outline Color, outlineWidth float64) error
	DrawLine(start, end Point, c Color, width float64) error
	DrawText(text string, position Point, c Color, font Font, anchor, alignment string) error

	// Image returns the pixels drawn so far.
	Image() image.Image
}

// Font is a font face loaded by a Rasterizer.
type Font interface {
	Family() string
	Size() float64
}
